package diff

import (
	"strings"
	"testing"
)

func TestIndexPositions_ContiguousRange(t *testing.T) {
	files := Parse(sampleDiff, nil)
	h := files[0].Hunks[0]

	idx := IndexPositions(h)
	if len(idx) != len(h.Lines) {
		t.Fatalf("index has %d entries, want %d", len(idx), len(h.Lines))
	}

	// Positions must be exactly 1..N.
	seen := make(map[Position]bool)
	for _, pos := range idx {
		if pos < 1 || pos > Position(len(h.Lines)) {
			t.Errorf("position %d out of range 1..%d", pos, len(h.Lines))
		}
		if seen[pos] {
			t.Errorf("position %d assigned twice", pos)
		}
		seen[pos] = true
	}
}

func TestIndexPositions_CountsEveryLineKind(t *testing.T) {
	files := Parse(sampleDiff, nil)
	idx := IndexPositions(files[0].Hunks[0])

	// 2 leading context lines, then additions at new-file lines 10 and 11.
	if got := idx[10]; got != 3 {
		t.Errorf("position of line 10 = %d, want 3", got)
	}
	if got := idx[11]; got != 4 {
		t.Errorf("position of line 11 = %d, want 4", got)
	}
	if got := idx[8]; got != 1 {
		t.Errorf("position of line 8 = %d, want 1", got)
	}
}

func TestIndexPositions_Empty(t *testing.T) {
	if idx := IndexPositions(Hunk{Header: "@@ -1 +1 @@"}); len(idx) != 0 {
		t.Errorf("empty hunk index has %d entries, want 0", len(idx))
	}
}

func TestIndexPositions_DuplicateLineLastWins(t *testing.T) {
	// A removed line at old line 5 and a context line at new line 5 collide
	// in the index; the forward pass means the later position wins.
	h := Hunk{
		Header: "@@ -5,2 +5,2 @@",
		Lines: []Line{
			{Kind: LineRemoved, Number: 5, Content: "-x"},
			{Kind: LineAdded, Number: 5, Content: "+y"},
			{Kind: LineContext, Number: 6, Content: " z"},
		},
	}
	idx := IndexPositions(h)
	if got := idx[5]; got != 2 {
		t.Errorf("position of duplicated line 5 = %d, want 2 (last occurrence)", got)
	}
	if len(idx) != 2 {
		t.Errorf("index has %d entries, want 2", len(idx))
	}
}

func TestAnnotate(t *testing.T) {
	files := Parse(sampleDiff, nil)
	h := files[0].Hunks[0]

	got := Annotate(h)
	if !strings.HasPrefix(got, "@@ -8,4 +8,5 @@ func main() {") {
		t.Errorf("annotation does not start with verbatim header: %q", got)
	}
	if !strings.Contains(got, "\n10 +\tc := a + b") {
		t.Errorf("annotation missing numbered addition: %q", got)
	}
	if !strings.Contains(got, "\n8  \ta := 1") {
		t.Errorf("annotation missing numbered context line: %q", got)
	}
	if lines := strings.Split(got, "\n"); len(lines) != len(h.Lines)+1 {
		t.Errorf("annotation has %d lines, want %d", len(lines), len(h.Lines)+1)
	}
}

package diff

import (
	"fmt"
	"strings"
)

// LineNumber is a source line number as assigned by a diff's @@ directives.
type LineNumber int

// Position is the 1-based offset of a line within one hunk's patch text,
// counting every line regardless of kind. Review APIs address inline comments
// by Position, not by LineNumber.
type Position int

// PositionIndex maps each relevant source line number in a hunk to its
// position. Built by a single forward pass, so if a line number repeats
// within the hunk the later occurrence wins.
type PositionIndex map[LineNumber]Position

// IndexPositions walks the hunk's lines once, in order, assigning positions
// 1..N. An empty hunk yields an empty index.
func IndexPositions(h Hunk) PositionIndex {
	idx := make(PositionIndex, len(h.Lines))
	pos := Position(0)
	for _, ln := range h.Lines {
		pos++
		idx[ln.Number] = pos
	}
	return idx
}

// Annotate renders a hunk as its verbatim header followed by each patch line
// prefixed with the same line number IndexPositions records for it, so a
// reply that cites one of these numbers is addressable.
func Annotate(h Hunk) string {
	var b strings.Builder
	b.WriteString(h.Header)
	for _, ln := range h.Lines {
		fmt.Fprintf(&b, "\n%d %s", ln.Number, ln.Content)
	}
	return b.String()
}

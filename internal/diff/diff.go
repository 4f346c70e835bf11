package diff

import (
	"log"
	"regexp"
	"strconv"
	"strings"
)

// DeletedFile is the path sentinel unified diffs use for a missing side of a
// file (the old side of a creation, the new side of a deletion).
const DeletedFile = "/dev/null"

// LineKind tags a single diff line.
type LineKind int

const (
	LineContext LineKind = iota
	LineAdded
	LineRemoved
)

// Line is one line of a hunk's patch text. Number is the source line the
// change is about: the new-file line for added and context lines, the
// old-file line for removed lines. Content is the raw diff line including its
// leading marker character.
type Line struct {
	Kind    LineKind
	Number  LineNumber
	Content string
}

// Hunk is one contiguous @@-delimited block of a file's diff. Lines are in
// patch-text order; positions are derived solely from that order.
type Hunk struct {
	Header string
	Lines  []Line
}

// File is one changed file in a diff. A DeletedFile sentinel in NewPath marks
// a deletion, in OldPath a creation.
type File struct {
	OldPath string
	NewPath string
	Hunks   []Hunk
}

// hunkHeaderRe matches "@@ -oldStart[,oldCount] +newStart[,newCount] @@ ...".
var hunkHeaderRe = regexp.MustCompile(`^@@ -(\d+)(?:,\d+)? \+(\d+)(?:,\d+)? @@`)

// Parse converts unified-diff text into an ordered file list. Line numbers
// come from the @@ directives and are advanced per line, never recomputed. A
// hunk header that fails to parse yields an empty hunk and a logged anomaly;
// the remaining files and hunks are unaffected.
func Parse(text string, logger *log.Logger) []File {
	var files []File
	var current *File
	var hunk *Hunk

	// Line counters for the hunk in progress. skipping marks a hunk whose
	// header did not parse; its body lines are discarded.
	var oldLine, newLine LineNumber
	skipping := false

	flushHunk := func() {
		if current != nil && hunk != nil {
			current.Hunks = append(current.Hunks, *hunk)
		}
		hunk = nil
	}
	flushFile := func() {
		flushHunk()
		if current != nil {
			files = append(files, *current)
		}
		current = nil
	}

	for _, raw := range strings.Split(strings.TrimSuffix(text, "\n"), "\n") {
		switch {
		case strings.HasPrefix(raw, "diff --git"):
			flushFile()
			current = &File{}
			skipping = false

		// Path headers only appear between the file header and the first
		// hunk. Inside a hunk a line starting "--- " is a removed "-- " line
		// (Lua, SQL) and "+++ " an added "++ " line.
		case hunk == nil && !skipping && strings.HasPrefix(raw, "--- "):
			if current != nil {
				current.OldPath = trimPathPrefix(strings.TrimPrefix(raw, "--- "), "a/")
			}

		case hunk == nil && !skipping && strings.HasPrefix(raw, "+++ "):
			if current != nil {
				current.NewPath = trimPathPrefix(strings.TrimPrefix(raw, "+++ "), "b/")
			}

		case strings.HasPrefix(raw, "@@"):
			if current == nil {
				// Hunk outside any file section; diff text is not ours to fix.
				logf(logger, "diff: hunk header before any file header, ignoring: %s", raw)
				skipping = true
				continue
			}
			flushHunk()
			m := hunkHeaderRe.FindStringSubmatch(raw)
			if m == nil {
				logf(logger, "diff: unparsable hunk header in %s, treating hunk as empty: %s", current.NewPath, raw)
				current.Hunks = append(current.Hunks, Hunk{Header: raw})
				skipping = true
				continue
			}
			o, _ := strconv.Atoi(m[1])
			n, _ := strconv.Atoi(m[2])
			oldLine = LineNumber(o)
			newLine = LineNumber(n)
			skipping = false
			hunk = &Hunk{Header: raw}

		case hunk != nil && !skipping && strings.HasPrefix(raw, "+"):
			hunk.Lines = append(hunk.Lines, Line{Kind: LineAdded, Number: newLine, Content: raw})
			newLine++

		case hunk != nil && !skipping && strings.HasPrefix(raw, "-"):
			hunk.Lines = append(hunk.Lines, Line{Kind: LineRemoved, Number: oldLine, Content: raw})
			oldLine++

		case hunk != nil && !skipping && strings.HasPrefix(raw, `\`):
			// "\ No newline at end of file" carries no line number.

		case hunk != nil && !skipping && (strings.HasPrefix(raw, " ") || raw == ""):
			// Context line: same line in both files; record the new-file
			// number, which is what the PR view shows. GitHub diffs omit the
			// leading space on blank context lines.
			hunk.Lines = append(hunk.Lines, Line{Kind: LineContext, Number: newLine, Content: raw})
			oldLine++
			newLine++
		}
	}
	flushFile()

	return files
}

func trimPathPrefix(path, prefix string) string {
	if path == DeletedFile {
		return path
	}
	return strings.TrimPrefix(path, prefix)
}

func logf(logger *log.Logger, format string, args ...interface{}) {
	if logger != nil {
		logger.Printf(format, args...)
	}
}

package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/prcritic/prcritic/internal/review"
)

// TextWriter outputs a human-readable text report.
type TextWriter struct{}

func (t *TextWriter) Write(w io.Writer, report *Report) error {
	ew := &errWriter{w: w}

	ew.printf("Review for %s/%s#%d", report.Owner, report.Repo, report.Number)
	if report.Title != "" {
		ew.printf(" — %s", report.Title)
	}
	ew.println("")
	if report.CommitID != "" {
		ew.printf("Commit: %s\n", report.CommitID)
	}
	ew.println(strings.Repeat("─", 60))
	ew.printf("Comments: %d\n", len(report.Comments))
	ew.println(strings.Repeat("─", 60))

	if len(report.Comments) == 0 {
		ew.println("\nNo issues found. Looks good!")
		return ew.err
	}

	paths, grouped := groupByFile(report.Comments)
	for _, path := range paths {
		ew.printf("\n%s\n", path)
		ew.println(strings.Repeat("─", 40))
		for _, c := range grouped[path] {
			ew.printf("\n  position %d:\n", c.Position)
			for _, line := range wrapText(c.Body, 70) {
				ew.printf("    %s\n", line)
			}
		}
	}

	return ew.err
}

// errWriter wraps an io.Writer and captures the first error.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

func (ew *errWriter) println(s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintln(ew.w, s)
}

// groupByFile buckets comments per path, preserving per-file comment order.
// The returned slice lists paths in first-appearance order.
func groupByFile(comments []review.Comment) ([]string, map[string][]review.Comment) {
	var paths []string
	m := make(map[string][]review.Comment)
	for _, c := range comments {
		if _, seen := m[c.Path]; !seen {
			paths = append(paths, c.Path)
		}
		m[c.Path] = append(m[c.Path], c)
	}
	return paths, m
}

func wrapText(text string, width int) []string {
	if len(text) <= width {
		return []string{text}
	}
	var lines []string
	words := strings.Fields(text)
	var current strings.Builder
	for _, word := range words {
		if current.Len()+len(word)+1 > width && current.Len() > 0 {
			lines = append(lines, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteString(" ")
		}
		current.WriteString(word)
	}
	if current.Len() > 0 {
		lines = append(lines, current.String())
	}
	return lines
}

package output

import (
	"fmt"
	"io"
)

// MarkdownWriter outputs a PR-comment-friendly markdown report.
type MarkdownWriter struct{}

func (m *MarkdownWriter) Write(w io.Writer, report *Report) error {
	fmt.Fprintf(w, "## Review for %s/%s#%d\n\n", report.Owner, report.Repo, report.Number)
	if report.Title != "" {
		fmt.Fprintf(w, "**%s**\n\n", report.Title)
	}

	if len(report.Comments) == 0 {
		fmt.Fprintln(w, "No issues found. :white_check_mark:")
		return nil
	}

	fmt.Fprintf(w, "%d comment(s)\n\n", len(report.Comments))

	paths, grouped := groupByFile(report.Comments)
	for _, path := range paths {
		comments := grouped[path]
		fmt.Fprintf(w, "<details>\n<summary><code>%s</code> (%d)</summary>\n\n", path, len(comments))
		for _, c := range comments {
			fmt.Fprintf(w, "**Position %d**\n\n", c.Position)
			fmt.Fprintf(w, "%s\n\n", c.Body)
			fmt.Fprintf(w, "---\n\n")
		}
		fmt.Fprintf(w, "</details>\n\n")
	}

	return nil
}

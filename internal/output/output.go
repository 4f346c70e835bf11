package output

import (
	"fmt"
	"io"
	"os"

	"github.com/prcritic/prcritic/internal/review"
)

// Report is what a dry run produces: the PR under review and the comments
// that would have been posted.
type Report struct {
	Owner    string           `json:"owner"`
	Repo     string           `json:"repo"`
	Number   int              `json:"number"`
	Title    string           `json:"title"`
	CommitID string           `json:"commitId,omitempty"`
	Comments []review.Comment `json:"comments"`
}

// NewReport builds a report from PR context and assembled comments.
func NewReport(pr review.PRContext, comments []review.Comment) *Report {
	return &Report{
		Owner:    pr.Owner,
		Repo:     pr.Repo,
		Number:   pr.Number,
		Title:    pr.Title,
		CommitID: pr.CommitID,
		Comments: comments,
	}
}

// Writer writes a report in a specific format.
type Writer interface {
	Write(w io.Writer, report *Report) error
}

// GetWriter returns a writer for the specified format.
func GetWriter(format string) (Writer, error) {
	switch format {
	case "text":
		return &TextWriter{}, nil
	case "json":
		return &JSONWriter{}, nil
	case "markdown":
		return &MarkdownWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// WriteReport writes the report to the specified output (file path or stdout).
func WriteReport(report *Report, format, outPath string) error {
	writer, err := GetWriter(format)
	if err != nil {
		return err
	}

	var w io.Writer
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		w = f
	} else {
		w = os.Stdout
	}

	return writer.Write(w, report)
}

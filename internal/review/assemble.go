package review

import (
	"log"
	"strconv"
	"strings"

	"github.com/prcritic/prcritic/internal/diff"
)

// AssembleComments joins findings for one hunk against that hunk's position
// index. A finding whose line number does not coerce to an integer, or does
// not appear in the index, is dropped and logged; a drop affects only that
// finding. Output order follows input order.
func AssembleComments(path string, findings []Finding, idx diff.PositionIndex, logger *log.Logger) []Comment {
	var comments []Comment
	for _, f := range findings {
		n, err := strconv.Atoi(strings.TrimSpace(f.LineNumber))
		if err != nil {
			logf(logger, "review: dropping finding for %s: line number %q is not an integer", path, f.LineNumber)
			continue
		}
		pos, ok := idx[diff.LineNumber(n)]
		if !ok {
			logf(logger, "review: dropping finding for %s:%d: line is not part of the current hunk", path, n)
			continue
		}
		comments = append(comments, Comment{
			Path:     path,
			Position: pos,
			Body:     f.ReviewComment,
		})
	}
	return comments
}

func logf(logger *log.Logger, format string, args ...interface{}) {
	if logger != nil {
		logger.Printf(format, args...)
	}
}

package review

import (
	"github.com/prcritic/prcritic/internal/diff"
)

// Finding is one model-reported candidate before validation. LineNumber is
// untyped text straight from the model; it only becomes a diff.LineNumber if
// it survives coercion and a position lookup.
type Finding struct {
	LineNumber    string `json:"lineNumber"`
	ReviewComment string `json:"reviewComment"`
}

// Comment is a validated, position-addressed inline review comment ready to
// be posted. Position always references a real line inside the hunk that
// produced the comment.
type Comment struct {
	Path     string        `json:"path"`
	Position diff.Position `json:"position"`
	Body     string        `json:"body"`
}

// PRContext carries the pull-request coordinates and description text through
// the pipeline. It is built once by the caller and never mutated.
type PRContext struct {
	Owner       string
	Repo        string
	Number      int
	Title       string
	Description string
	CommitID    string
}

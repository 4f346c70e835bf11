package event

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Actions the pipeline responds to. Anything else is ignored.
const (
	ActionOpened      = "opened"
	ActionSynchronize = "synchronize"
)

// Event is the subset of a GitHub Actions pull_request payload the
// pipeline needs.
type Event struct {
	Action string
	Owner  string
	Repo   string
	Number int
	Before string
	After  string
}

// Supported reports whether the event action triggers a review.
func (e Event) Supported() bool {
	return e.Action == ActionOpened || e.Action == ActionSynchronize
}

type payload struct {
	Action string `json:"action"`
	Number int    `json:"number"`
	Before string `json:"before"`
	After  string `json:"after"`
	Repo   struct {
		FullName string `json:"full_name"`
	} `json:"repository"`
	PullRequest struct {
		Number int `json:"number"`
	} `json:"pull_request"`
}

// Load reads the Actions event payload from GITHUB_EVENT_PATH.
func Load() (Event, error) {
	path := os.Getenv("GITHUB_EVENT_PATH")
	if path == "" {
		return Event{}, fmt.Errorf("GITHUB_EVENT_PATH environment variable is not set")
	}
	return LoadFile(path)
}

// LoadFile decodes a pull_request event payload from the given file.
func LoadFile(path string) (Event, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Event{}, fmt.Errorf("reading event payload: %w", err)
	}

	var p payload
	if err := json.Unmarshal(data, &p); err != nil {
		return Event{}, fmt.Errorf("parsing event payload: %w", err)
	}

	owner, repo, err := splitFullName(p.Repo.FullName)
	if err != nil {
		return Event{}, err
	}

	number := p.Number
	if number == 0 {
		number = p.PullRequest.Number
	}
	if number == 0 {
		return Event{}, fmt.Errorf("event payload has no pull request number")
	}

	return Event{
		Action: p.Action,
		Owner:  owner,
		Repo:   repo,
		Number: number,
		Before: p.Before,
		After:  p.After,
	}, nil
}

func splitFullName(full string) (string, string, error) {
	parts := strings.SplitN(full, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid repository full_name: %q", full)
	}
	return parts[0], parts[1], nil
}

package github

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"regexp"
	"strings"
	"time"

	"github.com/prcritic/prcritic/internal/diff"
	"github.com/prcritic/prcritic/internal/review"
)

const defaultAPIURL = "https://api.github.com"

// Client provides access to the GitHub REST API.
type Client struct {
	token   string
	apiURL  string
	httpCli *http.Client
}

// NewClient creates a new GitHub client. Requires GITHUB_TOKEN (or the
// Actions-style INPUT_GITHUB_TOKEN) to be set.
func NewClient() (*Client, error) {
	token := os.Getenv("GITHUB_TOKEN")
	if token == "" {
		token = os.Getenv("INPUT_GITHUB_TOKEN")
	}
	if token == "" {
		return nil, fmt.Errorf("GITHUB_TOKEN environment variable is not set")
	}

	apiURL := os.Getenv("GITHUB_API_URL")
	if apiURL == "" {
		apiURL = defaultAPIURL
	}
	apiURL = strings.TrimRight(apiURL, "/")

	return &Client{
		token:   token,
		apiURL:  apiURL,
		httpCli: &http.Client{Timeout: 60 * time.Second},
	}, nil
}

func (c *Client) get(ctx context.Context, url, accept string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return 0, nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", accept)

	resp, err := c.httpCli.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("reading response: %w", err)
	}
	return resp.StatusCode, body, nil
}

// PullRequest carries the PR metadata fed into review prompts.
type PullRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Head  struct {
		SHA string `json:"sha"`
	} `json:"head"`
}

// GetPR fetches title, description and head commit for a pull request.
func (c *Client) GetPR(ctx context.Context, owner, repo string, prNumber int) (PullRequest, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/pulls/%d", c.apiURL, owner, repo, prNumber)

	status, body, err := c.get(ctx, url, "application/vnd.github.v3+json")
	if err != nil {
		return PullRequest{}, fmt.Errorf("fetching PR: %w", err)
	}
	if status == 404 {
		return PullRequest{}, fmt.Errorf("PR #%d not found in %s/%s", prNumber, owner, repo)
	}
	if status == 401 || status == 403 {
		return PullRequest{}, fmt.Errorf("authentication failed: %s", string(body))
	}
	if status != 200 {
		return PullRequest{}, fmt.Errorf("GitHub API error (status %d): %s", status, string(body))
	}

	var pr PullRequest
	if err := json.Unmarshal(body, &pr); err != nil {
		return PullRequest{}, fmt.Errorf("parsing response: %w", err)
	}
	return pr, nil
}

// GetPRDiff fetches the unified diff for a pull request.
func (c *Client) GetPRDiff(ctx context.Context, owner, repo string, prNumber int) (string, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/pulls/%d", c.apiURL, owner, repo, prNumber)

	status, body, err := c.get(ctx, url, "application/vnd.github.v3.diff")
	if err != nil {
		return "", fmt.Errorf("fetching PR diff: %w", err)
	}
	if status == 404 {
		return "", fmt.Errorf("PR #%d not found in %s/%s", prNumber, owner, repo)
	}
	if status == 401 || status == 403 {
		return "", fmt.Errorf("authentication failed: %s", string(body))
	}
	if status != 200 {
		return "", fmt.Errorf("GitHub API error (status %d): %s", status, string(body))
	}

	return string(body), nil
}

// CompareDiff fetches the unified diff between two commits. Used on
// synchronize events to review only the newly pushed range.
func (c *Client) CompareDiff(ctx context.Context, owner, repo, base, head string) (string, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/compare/%s...%s", c.apiURL, owner, repo, base, head)

	status, body, err := c.get(ctx, url, "application/vnd.github.v3.diff")
	if err != nil {
		return "", fmt.Errorf("comparing commits: %w", err)
	}
	if status == 404 {
		return "", fmt.Errorf("compare %s...%s not found in %s/%s", base, head, owner, repo)
	}
	if status != 200 {
		return "", fmt.Errorf("GitHub API error (status %d): %s", status, string(body))
	}

	return string(body), nil
}

// ReviewComment is an inline comment addressed by diff position.
type ReviewComment struct {
	Path     string        `json:"path"`
	Position diff.Position `json:"position"`
	Body     string        `json:"body"`
}

// ReviewRequest is a PR review to post.
type ReviewRequest struct {
	CommitID string          `json:"commit_id,omitempty"`
	Body     string          `json:"body,omitempty"`
	Event    string          `json:"event"`
	Comments []ReviewComment `json:"comments"`
}

// PositionRejectedError marks a 422 response, which GitHub returns when a
// comment's position does not address a line in the current diff.
type PositionRejectedError struct {
	Body string
}

func (e *PositionRejectedError) Error() string {
	return fmt.Sprintf("GitHub rejected review positions (422): %s", e.Body)
}

// IsPositionRejected reports whether err is a 422 position rejection.
func IsPositionRejected(err error) bool {
	var pre *PositionRejectedError
	return errors.As(err, &pre)
}

// BuildReview converts assembled comments into a review request posting them
// as COMMENT events against the given commit.
func BuildReview(commitID string, comments []review.Comment) ReviewRequest {
	rcs := make([]ReviewComment, len(comments))
	for i, c := range comments {
		rcs[i] = ReviewComment{Path: c.Path, Position: c.Position, Body: c.Body}
	}
	return ReviewRequest{
		CommitID: commitID,
		Event:    "COMMENT",
		Comments: rcs,
	}
}

// PostReview posts a pull request review with inline comments.
func (c *Client) PostReview(ctx context.Context, owner, repo string, prNumber int, rev ReviewRequest) error {
	url := fmt.Sprintf("%s/repos/%s/%s/pulls/%d/reviews", c.apiURL, owner, repo, prNumber)

	payload, err := json.Marshal(rev)
	if err != nil {
		return fmt.Errorf("marshaling review: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpCli.Do(req)
	if err != nil {
		return fmt.Errorf("posting review: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode == 422 {
		return &PositionRejectedError{Body: string(body)}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("GitHub API error (status %d): %s", resp.StatusCode, string(body))
	}

	return nil
}

var (
	httpsRemoteRe = regexp.MustCompile(`https?://[^/]+/([^/]+)/([^/.\s]+)`)
	sshRemoteRe   = regexp.MustCompile(`[^@]+@[^:]+:([^/]+)/([^/.\s]+)`)
)

// DetectRepo parses owner/repo from the git remote origin URL.
func DetectRepo() (owner, repo string, err error) {
	out, err := exec.Command("git", "remote", "get-url", "origin").Output()
	if err != nil {
		return "", "", fmt.Errorf("cannot detect repo: git remote get-url origin failed: %w", err)
	}
	url := strings.TrimSpace(string(out))
	return ParseRemoteURL(url)
}

// ParseRemoteURL extracts owner/repo from a git remote URL.
func ParseRemoteURL(url string) (owner, repo string, err error) {
	url = strings.TrimSuffix(url, ".git")

	if m := httpsRemoteRe.FindStringSubmatch(url); len(m) == 3 {
		return m[1], m[2], nil
	}
	if m := sshRemoteRe.FindStringSubmatch(url); len(m) == 3 {
		return m[1], m[2], nil
	}
	return "", "", fmt.Errorf("cannot parse owner/repo from remote URL: %s", url)
}

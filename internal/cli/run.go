package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/prcritic/prcritic/internal/config"
	"github.com/prcritic/prcritic/internal/event"
	"github.com/prcritic/prcritic/internal/github"
	"github.com/prcritic/prcritic/internal/output"
	"github.com/prcritic/prcritic/internal/providers"
	"github.com/prcritic/prcritic/internal/review"

	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Review the pull request from the GitHub Actions event",
	Long: "Run reads the pull_request payload from GITHUB_EVENT_PATH, reviews the " +
		"changed hunks, and posts the findings as an inline review. Intended to be " +
		"the entry point of a GitHub Actions workflow step.",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()

		ev, err := event.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitUsageError
			return nil
		}
		if !ev.Supported() {
			logger.Printf("event action %q does not trigger a review; nothing to do", ev.Action)
			return nil
		}

		cfg, err := config.Load(buildOverrides())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitRuntimeError
			return nil
		}

		gh, err := github.NewClient()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitAuthError
			return nil
		}

		ctx := context.Background()
		reviewPR(ctx, gh, ev, cfg, logger)
		return nil
	},
}

// reviewPR drives one end-to-end review of the PR named by the event.
func reviewPR(ctx context.Context, gh *github.Client, ev event.Event, cfg config.Config, logger *log.Logger) {
	pr, err := gh.GetPR(ctx, ev.Owner, ev.Repo, ev.Number)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitCode = ExitRuntimeError
		return
	}

	// The PR's head SHA is the newest commit; listing /commits instead would
	// be paginated and could return a stale id on long PRs.
	commitID := pr.Head.SHA

	diffText, err := fetchDiff(ctx, gh, ev, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitCode = ExitRuntimeError
		return
	}
	if strings.TrimSpace(diffText) == "" {
		logger.Printf("no diff content for %s/%s#%d; nothing to review", ev.Owner, ev.Repo, ev.Number)
		return
	}

	prCtx := review.PRContext{
		Owner:       ev.Owner,
		Repo:        ev.Repo,
		Number:      ev.Number,
		Title:       pr.Title,
		Description: pr.Body,
		CommitID:    commitID,
	}

	comments, err := reviewDiff(ctx, diffText, cfg, prCtx, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if providers.IsAuthError(err) {
			exitCode = ExitAuthError
		} else {
			exitCode = ExitRuntimeError
		}
		return
	}

	if flagDryRun {
		if err := output.WriteReport(output.NewReport(prCtx, comments), flagFormat, flagOut); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
			exitCode = ExitRuntimeError
		}
		return
	}

	if len(comments) == 0 {
		logger.Printf("no comments for %s/%s#%d; review not posted", ev.Owner, ev.Repo, ev.Number)
		return
	}

	if err := gh.PostReview(ctx, ev.Owner, ev.Repo, ev.Number, github.BuildReview(commitID, comments)); err != nil {
		if github.IsPositionRejected(err) {
			logger.Printf("review rejected: a comment position fell outside the current diff: %v", err)
		} else {
			fmt.Fprintf(os.Stderr, "Error posting review: %v\n", err)
		}
		exitCode = ExitRuntimeError
		return
	}

	logger.Printf("posted %d comment(s) to %s/%s#%d", len(comments), ev.Owner, ev.Repo, ev.Number)
}

// fetchDiff picks the diff source per event action: the full PR diff for a
// fresh PR, the pushed commit range for a synchronize. A failed compare
// fetch falls back to the full diff rather than skipping the review.
func fetchDiff(ctx context.Context, gh *github.Client, ev event.Event, logger *log.Logger) (string, error) {
	if ev.Action == event.ActionSynchronize && ev.Before != "" && ev.After != "" {
		diffText, err := gh.CompareDiff(ctx, ev.Owner, ev.Repo, ev.Before, ev.After)
		if err == nil {
			return diffText, nil
		}
		logger.Printf("compare %s...%s failed: %v; falling back to full PR diff", ev.Before, ev.After, err)
	}
	return gh.GetPRDiff(ctx, ev.Owner, ev.Repo, ev.Number)
}

func init() {
	addReviewFlags(runCmd)
}

package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/prcritic/prcritic/internal/config"
	"github.com/prcritic/prcritic/internal/event"
	"github.com/prcritic/prcritic/internal/github"

	"github.com/spf13/cobra"
)

var (
	flagOwner string
	flagRepo  string
)

var prCmd = &cobra.Command{
	Use:   "pr <number>",
	Short: "Review a pull request by number",
	Long: "Review a specific pull request outside of GitHub Actions. The repository " +
		"defaults to the git remote origin of the current directory; override it " +
		"with --owner and --repo. Use --dry-run to print the review instead of posting it.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		number, err := strconv.Atoi(args[0])
		if err != nil || number <= 0 {
			fmt.Fprintf(os.Stderr, "Error: %q is not a PR number\n", args[0])
			exitCode = ExitUsageError
			return nil
		}

		owner, repo := flagOwner, flagRepo
		if owner == "" || repo == "" {
			owner, repo, err = github.DetectRepo()
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v (use --owner and --repo)\n", err)
				exitCode = ExitUsageError
				return nil
			}
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

		// A manual review is equivalent to a freshly opened PR: review the
		// whole diff.
		ev := event.Event{
			Action: event.ActionOpened,
			Owner:  owner,
			Repo:   repo,
			Number: number,
		}

		ctx := context.Background()
		reviewPR(ctx, gh, ev, cfg, newLogger())
		return nil
	},
}

func init() {
	addReviewFlags(prCmd)
	prCmd.Flags().StringVar(&flagOwner, "owner", "", "Repository owner (default: detect from git remote)")
	prCmd.Flags().StringVar(&flagRepo, "repo", "", "Repository name (default: detect from git remote)")
}

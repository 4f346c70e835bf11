package cli

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/prcritic/prcritic/internal/cache"
	"github.com/prcritic/prcritic/internal/config"
	"github.com/prcritic/prcritic/internal/diff"
	"github.com/prcritic/prcritic/internal/providers"
	"github.com/prcritic/prcritic/internal/redact"
	"github.com/prcritic/prcritic/internal/review"

	"github.com/spf13/cobra"
)

// Shared review flags
var (
	flagProvider    string
	flagModel       string
	flagExclude     string
	flagMaxComments int
	flagDryRun      bool
	flagFormat      string
	flagOut         string
	flagNoRedact    bool
)

func addReviewFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagProvider, "provider", "", "LLM provider (anthropic, openai, gemini, ollama)")
	cmd.Flags().StringVar(&flagModel, "model", "", "Model name")
	cmd.Flags().StringVar(&flagExclude, "exclude", "", "Exclude file path globs (comma-separated)")
	cmd.Flags().IntVar(&flagMaxComments, "max-comments", 0, "Maximum number of comments to post")
	cmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Print the review instead of posting it")
	cmd.Flags().StringVar(&flagFormat, "format", "text", "Dry-run output format (text, json, markdown)")
	cmd.Flags().StringVar(&flagOut, "out", "", "Dry-run output file path (default: stdout)")
	cmd.Flags().BoolVar(&flagNoRedact, "no-redact", false, "Disable secret redaction (use with caution)")
}

func buildOverrides() map[string]string {
	m := make(map[string]string)
	if flagProvider != "" {
		m["provider"] = flagProvider
	}
	if flagModel != "" {
		m["model"] = flagModel
	}
	if flagExclude != "" {
		m["exclude"] = flagExclude
	}
	if flagMaxComments > 0 {
		m["maxComments"] = fmt.Sprintf("%d", flagMaxComments)
	}
	return m
}

func newLogger() *log.Logger {
	return log.New(os.Stderr, "", log.LstdFlags)
}

// reviewDiff runs the full pipeline on raw diff text: redact, parse,
// exclude, review. A provider construction failure is the only error; the
// pipeline itself degrades to fewer comments instead of failing.
func reviewDiff(ctx context.Context, diffText string, cfg config.Config, pr review.PRContext, logger *log.Logger) ([]review.Comment, error) {
	if flagNoRedact {
		cfg.Privacy.RedactSecrets = false
		fmt.Fprintln(os.Stderr, "WARNING: secret redaction is disabled")
	}
	if cfg.Privacy.RedactSecrets {
		diffText = redact.Secrets(diffText)
	}

	files := diff.Parse(diffText, logger)
	files = diff.Exclude(files, cfg.Exclude, logger)
	if len(files) == 0 {
		logger.Printf("no reviewable files in the diff")
		return nil, nil
	}

	completer, err := providers.New(cfg.Provider, cfg.Model)
	if err != nil {
		return nil, err
	}

	c, err := cache.New(cfg.Cache.Enabled, cfg.Cache.Dir, cfg.Cache.TTLSeconds)
	if err != nil {
		logger.Printf("cache unavailable: %v; reviewing without it", err)
		c = nil
	}

	eng := review.NewEngine(completer, c, cfg, logger)
	return eng.Run(ctx, files, pr), nil
}

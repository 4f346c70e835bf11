package review

import (
	"context"
	"log"

	"github.com/prcritic/prcritic/internal/cache"
	"github.com/prcritic/prcritic/internal/config"
	"github.com/prcritic/prcritic/internal/diff"
	"github.com/prcritic/prcritic/internal/providers"
)

// Engine drives the per-hunk review pipeline: prompt, completion, extraction,
// assembly, aggregation. Hunks are processed strictly sequentially with one
// completion in flight; hosted-model rate limits make a worker pool a bad
// trade for a tool that runs on every push.
type Engine struct {
	completer providers.Completer
	cache     *cache.Cache
	cfg       config.Config
	logger    *log.Logger
}

// NewEngine wires an Engine. cache may be nil to disable completion caching.
func NewEngine(completer providers.Completer, c *cache.Cache, cfg config.Config, logger *log.Logger) *Engine {
	return &Engine{
		completer: completer,
		cache:     c,
		cfg:       cfg,
		logger:    logger,
	}
}

// Run reviews every hunk of every non-deleted file, in file order then hunk
// order, and returns the aggregated comment list. A failed completion or an
// undecodable reply contributes zero comments for that hunk and processing
// continues; partial results beat an aborted run. Comment order is
// deterministic given deterministic model output: file, then hunk, then
// finding order.
func (e *Engine) Run(ctx context.Context, files []diff.File, pr PRContext) []Comment {
	var comments []Comment

	for _, file := range files {
		if file.NewPath == diff.DeletedFile {
			continue
		}
		for i, hunk := range file.Hunks {
			if len(hunk.Lines) == 0 {
				continue
			}

			prompt := BuildPrompt(file, hunk, pr)
			reply, err := e.complete(ctx, prompt)
			if err != nil {
				logf(e.logger, "review: model call failed for %s hunk %d: %v; continuing without comments", file.NewPath, i+1, err)
				continue
			}

			findings := ExtractFindings(reply)
			if len(findings) == 0 {
				continue
			}

			idx := diff.IndexPositions(hunk)
			comments = append(comments, AssembleComments(file.NewPath, findings, idx, e.logger)...)
		}
	}

	if e.cfg.MaxComments > 0 && len(comments) > e.cfg.MaxComments {
		logf(e.logger, "review: dropping %d comments over the max-comments cap of %d", len(comments)-e.cfg.MaxComments, e.cfg.MaxComments)
		comments = comments[:e.cfg.MaxComments]
	}

	return comments
}

// complete runs one model call, consulting the completion cache first so a
// synchronize re-run does not re-pay for hunks already reviewed. Cache
// write failures are logged, never fatal.
func (e *Engine) complete(ctx context.Context, prompt string) (string, error) {
	key := cache.BuildKey(e.completer.Name(), e.cfg.Model, prompt)
	if e.cache != nil {
		if reply, ok := e.cache.Get(key); ok {
			return reply, nil
		}
	}

	resp, err := e.completer.Complete(ctx, providers.CompletionRequest{
		Prompt:    prompt,
		MaxTokens: e.cfg.MaxTokens,
	})
	if err != nil {
		return "", err
	}

	if e.cache != nil {
		if err := e.cache.Put(key, resp.Content); err != nil {
			logf(e.logger, "review: cache write failed: %v", err)
		}
	}
	return resp.Content, nil
}

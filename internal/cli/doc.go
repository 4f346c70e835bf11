// Package cli wires together the Cobra command tree for the prcritic binary.
//
// It defines the root command and all subcommands (run, pr, config, models,
// cache, version), binds flags, reads configuration, invokes the review
// engine, and returns deterministic exit codes for CI gating.
package cli

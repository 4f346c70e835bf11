// Package cache provides a file-based cache for model completions.
//
// Entries are keyed by a SHA-256 hash of the provider name, model, and the
// full prompt for one hunk. Each entry stores the raw completion string with
// a creation timestamp and a TTL (in seconds). Expired entries are skipped
// on read and removed during cache-clear operations.
//
// The default cache directory is $XDG_CACHE_HOME/prcritic (or the
// OS-appropriate equivalent). Prompts are built from redacted diff text, so
// nothing secret-bearing lands on disk.
package cache

// Package github provides a minimal GitHub REST API client for fetching
// pull-request diffs and posting position-addressed review comments.
//
// Diffs are fetched with the application/vnd.github.v3.diff media type.
// Review comments use diff positions, not file line numbers, so a 422
// response means a comment addressed a position outside the current diff;
// PositionRejectedError exposes that case to callers.
package github

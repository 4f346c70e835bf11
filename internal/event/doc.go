// Package event decodes the GitHub Actions pull_request payload pointed to
// by GITHUB_EVENT_PATH. Only opened and synchronize actions drive a review;
// other actions are reported as unsupported so the caller can exit cleanly.
package event

// Prcritic reviews GitHub pull requests with LLM providers and posts the
// findings as inline, position-addressed review comments.
//
// It is built to run inside a GitHub Actions workflow on pull_request
// events, but can also review any PR by number from a developer machine.
//
// Usage:
//
//	prcritic run                      # review the PR from the Actions event
//	prcritic pr 42                    # review PR #42 of the current repo
//	prcritic pr 42 --dry-run          # print the review instead of posting
//	prcritic models doctor            # validate provider credentials
//	prcritic config show              # show effective configuration
package main

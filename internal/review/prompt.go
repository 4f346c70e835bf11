package review

import (
	"fmt"
	"strings"

	"github.com/prcritic/prcritic/internal/diff"
)

const promptInstructions = `Your task is to review pull requests as a strict, expert reviewer. Instructions:

- Respond ONLY with a JSON object in a fenced code block, in this exact format: {"reviews": [{"lineNumber": "<line number>", "reviewComment": "<review comment>"}]}
- Only add a review comment when there is something to improve; otherwise "reviews" must be an empty array.
- Every comment must state the problem and propose a concrete fix.
- Reference the line numbers shown at the start of each diff line.
- Do not comment on import statements.
- Do not suggest adding comments to the code.
- Do not give positive comments or compliments.
- Do not flag changes whose only effect is a side effect you cannot observe in the diff.
- Write comments in GitHub Markdown.
- Use the pull request title and description for context, but comment only on the code.`

// BuildPrompt constructs one self-contained model prompt for a single hunk:
// the fixed reviewer instruction, the file path, the PR title and
// description, and the hunk annotated with the same line numbers the position
// index records. The hunk is never truncated here; input-budget overflow is
// the provider's failure to report.
func BuildPrompt(file diff.File, hunk diff.Hunk, pr PRContext) string {
	var b strings.Builder

	b.WriteString(promptInstructions)
	fmt.Fprintf(&b, "\n\nReview the following code diff in the file %q, taking the pull request title and description into account.\n", file.NewPath)

	fmt.Fprintf(&b, "\nPull request title: %s\n", pr.Title)
	b.WriteString("\nPull request description:\n\n---\n")
	b.WriteString(pr.Description)
	b.WriteString("\n---\n")

	b.WriteString("\nGit diff to review:\n\n```diff\n")
	b.WriteString(diff.Annotate(hunk))
	b.WriteString("\n```\n")

	return b.String()
}

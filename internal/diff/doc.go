// Package diff parses unified-diff text into files, hunks, and line changes,
// and maps source line numbers to review-API positions.
//
// The two numbering schemes in play are deliberately distinct types:
// [LineNumber] is a source line number taken from the @@ directives, while
// [Position] is the 1-based offset of a line within one hunk's patch text.
// Review APIs address inline comments by Position, reviewers and models talk
// in LineNumbers, and [IndexPositions] is the bridge between the two.
//
// Parsing is a single forward pass that never recomputes line numbers
// locally; a hunk whose @@ header does not parse is kept as an empty hunk so
// one malformed section cannot abort review of the rest of the diff.
package diff

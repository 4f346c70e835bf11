// Package review turns diff hunks into position-addressed pull-request
// comments via an LLM.
//
// The pipeline per hunk is: build a prompt carrying the annotated patch text
// and PR context, obtain a raw completion, extract the structured findings
// from the reply, and assemble each finding into a comment by mapping its
// reported line number through the hunk's position index. [Engine.Run] drives
// the pipeline across a whole filtered diff, sequentially, isolating every
// per-hunk and per-finding failure so one bad reply never costs more than its
// own comments.
//
// Model replies carry no schema guarantee; [ExtractFindings] is a fallible
// decode that yields either a typed finding list or nil, nothing in between.
package review

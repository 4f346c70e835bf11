package review

import (
	"encoding/json"
	"strings"
)

// validEscapes are the characters JSON allows after a backslash.
const validEscapes = `"\/bfnrtu`

// ExtractFindings recovers the structured findings list from a raw model
// reply. The reply may wrap the payload in prose or markdown fences and may
// contain the single most common model encoding defect, a lone backslash not
// forming a valid escape. Every failure path returns nil: no object span, a
// decode error, or a missing "reviews" key all mean no findings, never an
// error that could abort the run.
func ExtractFindings(reply string) []Finding {
	span := objectSpan(reply)
	if span == "" {
		return nil
	}

	var payload struct {
		Reviews []Finding `json:"reviews"`
	}
	if err := json.Unmarshal([]byte(repairEscapes(span)), &payload); err != nil {
		return nil
	}
	if payload.Reviews == nil {
		return nil
	}
	return payload.Reviews
}

// objectSpan returns the outermost balanced object span of the reply: from
// the first "{" to the "}" that closes it, counting depth and skipping brace
// characters inside strings. Surrounding prose and code fences fall away with
// it, and prose after the object (even with stray braces) does not widen the
// span. Returns "" if no balanced span exists.
func objectSpan(reply string) string {
	start := strings.Index(reply, "{")
	if start < 0 {
		return ""
	}
	depth := 0
	inString := false
	for i := start; i < len(reply); i++ {
		c := reply[i]
		if inString {
			switch c {
			case '\\':
				i++
			case '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return reply[start : i+1]
			}
		}
	}
	return ""
}

// repairEscapes doubles every backslash that is not followed by a valid JSON
// escape character, so payloads like {"reviewComment":"fix \d"} decode
// instead of failing. Valid escapes pass through untouched.
func repairEscapes(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' {
			b.WriteByte(c)
			continue
		}
		if i+1 < len(s) && strings.IndexByte(validEscapes, s[i+1]) >= 0 {
			b.WriteByte(c)
			b.WriteByte(s[i+1])
			i++
			continue
		}
		// Invalid or trailing escape: double the backslash.
		b.WriteString(`\\`)
	}
	return b.String()
}

package command

import "strings"

// substitute expands every {{name}} placeholder in s against vars. Unknown
// names expand to the empty string, matching the field-extraction
// convention used elsewhere in the evaluator (missing is empty, not an
// error).
func substitute(vars map[string]string, s string) string {
	if !strings.Contains(s, "{{") {
		return s
	}

	var b strings.Builder
	for {
		start := strings.Index(s, "{{")
		if start < 0 {
			b.WriteString(s)
			break
		}
		end := strings.Index(s[start:], "}}")
		if end < 0 {
			b.WriteString(s)
			break
		}
		end += start

		b.WriteString(s[:start])
		name := strings.TrimSpace(s[start+2 : end])
		b.WriteString(vars[name])
		s = s[end+2:]
	}
	return b.String()
}

func containsTemplate(s string) bool {
	return strings.Contains(s, "{{") && strings.Contains(s, "}}")
}

// Substitute is the exported form of the {{name}} expansion used outside
// command specs, by the Action Executor for provide_feedback,
// inject_context, ask and block_with_feedback message templates.
func Substitute(vars map[string]string, s string) string {
	return substitute(vars, s)
}

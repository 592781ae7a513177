package transpiler

import "strings"

// repeatToken builds a string of exactly n bytes by repeating token
// cyclically, truncating the final repetition. Used for the
// equal-length substitutions spec.md §4.1/§9 rely on for column
// fidelity: a "<name" prefix or an attribute's text is replaced by an
// identifier of the exact same byte length so the host analyzer's
// columns still line up with the original template.
func repeatToken(token string, n int) string {
	if n <= 0 {
		return ""
	}
	var b strings.Builder
	b.Grow(n)
	for b.Len() < n {
		remaining := n - b.Len()
		if remaining >= len(token) {
			b.WriteString(token)
		} else {
			b.WriteString(token[:remaining])
		}
	}
	return b.String()
}

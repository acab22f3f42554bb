package scoring

import "strings"

// Normalize reduces an answer token to its comparable canonical form.
//
// Presented choice options carry a positional label ("B: Tokyo"); everything
// up to and including the first colon is stripped so that a labelled
// selection compares equal to the stored option text. The result is trimmed
// and lowercased. Pure and total: the empty string maps to itself.
func Normalize(token string) string {
	if i := strings.Index(token, ":"); i >= 0 {
		token = token[i+1:]
	}
	return strings.ToLower(strings.TrimSpace(token))
}

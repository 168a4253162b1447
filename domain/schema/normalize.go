package schema

import (
	"regexp"
	"strings"
)

var (
	whitespaceRun   = regexp.MustCompile(`\s+`)
	nonAlnumOrSpace = regexp.MustCompile(`[^a-z0-9 ]+`)
)

// Normalize canonicalizes a raw column label into the comparable form all
// field resolution runs against: BOM artifacts stripped, lowercased,
// underscores treated as spaces, whitespace collapsed, and every character
// outside [a-z0-9 ] dropped. Total over any input; idempotent, so a label
// that is already normalized passes through unchanged.
func Normalize(label string) string {
	s := strings.ReplaceAll(label, "\ufeff", "")
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "_", " ")
	s = whitespaceRun.ReplaceAllString(s, " ")
	s = nonAlnumOrSpace.ReplaceAllString(s, "")
	// Removing punctuation can leave a fresh double space ("pin - code"),
	// so collapse once more before the final trim.
	s = whitespaceRun.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// NormalizeAll normalizes a header list, preserving column order.
func NormalizeAll(labels []string) []string {
	out := make([]string, len(labels))
	for i, label := range labels {
		out[i] = Normalize(label)
	}
	return out
}

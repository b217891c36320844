package domain

import (
	"strings"
	"unicode"
)

// Segments splits a test name into its ordered word segments: lowercase,
// string-literal quote characters stripped, whitespace folded into the word
// separator, split on the separator with empties dropped. The segment
// boundaries are what keeps matching honest on the test-name side: a match
// can never start or end mid-segment. Sequences are recomputed per test
// name, never cached across runs.
func Segments(testName string) []string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r == '\'' || r == '"':
			return -1
		case unicode.IsSpace(r):
			return '_'
		default:
			return unicode.ToLower(r)
		}
	}, testName)

	parts := strings.Split(name, wordSeparator)
	segments := make([]string, 0, len(parts))

	for _, part := range parts {
		if part != "" {
			segments = append(segments, part)
		}
	}

	return segments
}

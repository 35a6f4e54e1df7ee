package core

import (
	"strings"
	"unicode"
)

const MaxValueLen = 32_000 // default safeguard, in runes

// Normalize removes every whitespace rune. Runs are dropped, not collapsed.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Words splits the original (not normalized) string on whitespace runs.
func Words(s string) []string {
	return strings.Fields(s)
}

package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
)

// Fold returns the Unicode case-folded form of s, suitable for
// case-insensitive comparison of player names.
func Fold(s string) string {
	return cases.Fold().String(s)
}

// EqualFold reports whether two strings are equal under case folding.
func EqualFold(a, b string) bool {
	return Fold(a) == Fold(b)
}

// CollapseWhitespace trims s and collapses every run of whitespace to a
// single space. OCR output is ragged around line breaks and double spaces.
func CollapseWhitespace(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inSpace := false
	for _, r := range strings.TrimSpace(s) {
		if unicode.IsSpace(r) {
			inSpace = true
			continue
		}
		if inSpace {
			b.WriteByte(' ')
			inSpace = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Package arabic normalizes Arabic display text carried on bilingual claim
// fields so that the same name submitted by different systems compares equal.
package arabic

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// tatweel is the Arabic elongation character, purely typographic.
const tatweel = 'ـ'

// Normalize applies NFC normalization, strips tatweel, and collapses
// whitespace runs. Empty input stays empty.
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	s = norm.NFC.String(s)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r == tatweel {
			continue
		}
		b.WriteRune(r)
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

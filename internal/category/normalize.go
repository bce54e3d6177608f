package category

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize canonicalizes a free-text category label:
// NFD decomposition, combining marks removed, whitespace runs replaced by a
// single underscore, lowercased. Normalize(Normalize(s)) == Normalize(s).
//
// Đ/đ have no canonical decomposition, so they are folded to D/d explicitly;
// otherwise "Điều hòa" and "Dieu hoa" would not meet.
func Normalize(label string) Key {
	// transform.Chain keeps state between calls, build one per call
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), runes.Map(foldStroke))
	stripped, _, err := transform.String(t, label)
	if err != nil {
		stripped = label
	}
	return Key(strings.ToLower(strings.Join(strings.Fields(stripped), "_")))
}

func foldStroke(r rune) rune {
	switch r {
	case 'Đ':
		return 'D'
	case 'đ':
		return 'd'
	}
	return r
}

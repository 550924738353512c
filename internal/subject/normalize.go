package subject

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// NormalizeText canonicalizes Chinese content used as an item key: NFC,
// narrow width, all whitespace removed.
func NormalizeText(s string) string {
	s = width.Fold.String(norm.NFC.String(s))
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// NormalizeWord canonicalizes an English word: narrow width, case
// folded, inner runs of spaces collapsed.
func NormalizeWord(s string) string {
	s = cases.Fold().String(width.Fold.String(norm.NFC.String(s)))
	return strings.Join(strings.Fields(s), " ")
}

// NormalizeAnswer folds a typed answer for comparison. Tone marks are
// dropped so "ri" matches "rì", and full-width digits from a Chinese IME
// match their ASCII forms.
func NormalizeAnswer(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	folded = cases.Fold().String(width.Fold.String(folded))
	return strings.Join(strings.Fields(folded), "")
}

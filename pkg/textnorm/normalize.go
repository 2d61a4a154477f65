package textnorm

import (
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalizer rewrites a string. Every pipeline stage is a Normalizer.
type Normalizer func(string) string

// StripAccents removes combining marks (e.g. Élodie -> Elodie, Ñoño -> Nono)
// and leaves everything else untouched. Characters without a decomposition
// are kept as is; see Transliterate for the lossy ASCII folding.
func StripAccents(s string) string {
	// A chained transformer keeps buffers, so it is built per call.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return result
}

// Lower applies full Unicode lowercasing.
func Lower(s string) string {
	return cases.Lower(language.Und).String(s)
}

// isWordRune reports whether r is a word character: a letter, a number or '_'.
func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

// wordClass is isWordRune as a regexp character class body.
const wordClass = `\p{L}\p{N}_`

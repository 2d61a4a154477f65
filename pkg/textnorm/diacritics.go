package textnorm

import (
	"strings"
	"unicode/utf8"

	"github.com/mozillazg/go-unidecode"
)

// transliterator folds text to ASCII. Runes in keep (the emoji allow-list)
// survive so the cleanup stage can retain them.
type transliterator struct {
	keep map[rune]struct{}
}

func newTransliterator(keep []rune) *transliterator {
	t := &transliterator{keep: make(map[rune]struct{}, len(keep))}
	for _, r := range keep {
		t.keep[r] = struct{}{}
	}
	return t
}

func (t *transliterator) transliterate(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		i += size
		switch {
		case r < utf8.RuneSelf:
			b.WriteByte(byte(r))
		case r == utf8.RuneError && size == 1:
			// invalid byte, dropped
		case isEmojiModifier(r):
			// dropped so "👍🏽" folds to its allow-listed base
		default:
			if _, ok := t.keep[r]; ok {
				b.WriteRune(r)
				continue
			}
			b.WriteString(unidecode.Unidecode(string(r)))
		}
	}
	return b.String()
}

// isEmojiModifier matches skin tones, variation selectors and the
// zero-width joiner.
func isEmojiModifier(r rune) bool {
	return (r >= 0x1F3FB && r <= 0x1F3FF) || r == 0xFE0E || r == 0xFE0F || r == 0x200D
}

// Transliterate folds s to its closest ASCII spelling ("Straße" -> "Strasse").
func Transliterate(s string) string {
	return newTransliterator(nil).transliterate(s)
}

package textnorm

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// DefaultDenylist holds the decorative symbols removed before contraction matching.
var DefaultDenylist = []string{"❌", "▲"}

// ComposeNFC rewrites s to Unicode Normalization Form C.
func ComposeNFC(s string) string {
	return norm.NFC.String(s)
}

// newSymbolFilter returns a Normalizer deleting every denylisted symbol.
// Surrounding whitespace is left alone.
func newSymbolFilter(denylist []string) Normalizer {
	pairs := make([]string, 0, 2*len(denylist))
	for _, sym := range denylist {
		if sym == "" {
			continue
		}
		// Symbols are compared in composed form, like the text reaching this stage.
		pairs = append(pairs, ComposeNFC(sym), "")
	}
	if len(pairs) == 0 {
		return func(s string) string { return s }
	}
	r := strings.NewReplacer(pairs...)
	return r.Replace
}

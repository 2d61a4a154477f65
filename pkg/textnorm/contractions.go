package textnorm

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// rule is one compiled lexicon entry.
type rule struct {
	re *regexp.Regexp
	to string
}

func compileRules(lex *Lexicon) []rule {
	rules := make([]rule, 0, len(lex.Entries))
	for _, c := range lex.Entries {
		rules = append(rules, rule{
			re: regexp.MustCompile(`(?i)` + regexp.QuoteMeta(c.From)),
			to: c.To,
		})
	}
	return rules
}

// apply replaces every case-insensitive occurrence of the rule's key whose
// both ends sit on a word boundary. A rejected candidate only advances the
// scan by one rune so overlapping candidates are still considered.
func (r rule) apply(s string) string {
	var b strings.Builder
	last, pos := 0, 0
	replaced := false
	for pos < len(s) {
		loc := r.re.FindStringIndex(s[pos:])
		if loc == nil {
			break
		}
		start, end := pos+loc[0], pos+loc[1]
		if atBoundary(s, start) && atBoundary(s, end) {
			b.WriteString(s[last:start])
			b.WriteString(r.to)
			last, pos = end, end
			replaced = true
			continue
		}
		_, size := utf8.DecodeRuneInString(s[start:])
		pos = start + size
	}
	if !replaced {
		return s
	}
	b.WriteString(s[last:])
	return b.String()
}

// expander applies the rules once each, in lexicon order. An expansion may
// be rewritten again by a later rule; there is no fixed-point iteration.
type expander []rule

func (e expander) expand(s string) string {
	for _, r := range e {
		s = r.apply(s)
	}
	return s
}

// atBoundary reports whether byte offset i of s separates a word character
// from a non-word character (or a string edge).
func atBoundary(s string, i int) bool {
	before, after := false, false
	if i > 0 {
		c, _ := utf8.DecodeLastRuneInString(s[:i])
		before = isWordRune(c)
	}
	if i < len(s) {
		c, _ := utf8.DecodeRuneInString(s[i:])
		after = isWordRune(c)
	}
	return before != after
}

package textnorm

import (
	"fmt"
	"regexp"
	"strings"
)

// DefaultEmoji is the emoji allow-list kept by the final cleanup.
var DefaultEmoji = []rune{'😀', '😂', '😍', '😡', '😢', '👍', '👎', '❤'}

const spaceClass = `\s\v\x{85}\p{Z}`

var spaceRun = regexp.MustCompile(`[` + spaceClass + `]+`)

// cleaner is the last stage: lowercase, prune to the allowed character
// class, collapse whitespace, trim. It is idempotent.
type cleaner struct {
	disallowed *regexp.Regexp
}

func newCleaner(emoji []rune) *cleaner {
	var keep strings.Builder
	for _, r := range emoji {
		fmt.Fprintf(&keep, `\x{%x}`, r)
	}
	return &cleaner{
		disallowed: regexp.MustCompile(`[^` + wordClass + spaceClass + `#` + keep.String() + `]`),
	}
}

func (c *cleaner) clean(s string) string {
	s = Lower(s)
	s = c.disallowed.ReplaceAllString(s, "")
	s = spaceRun.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

package textnorm

import (
	"regexp"
	"strings"
)

var hashtagPattern = regexp.MustCompile(`#[` + wordClass + `]+`)

// Hashtags returns the hashtag units of s in order of appearance.
func Hashtags(s string) []string {
	return hashtagPattern.FindAllString(s, -1)
}

// CanonicalHashtag lowercases and strips the accents of a hashtag body,
// keeping the leading '#': "#Café123" -> "#cafe123".
func CanonicalHashtag(tag string) string {
	body := strings.TrimPrefix(tag, "#")
	return "#" + StripAccents(Lower(body))
}

// normalizeHashtags replaces every literal occurrence of each distinct
// hashtag with its canonical form. Spellings differing in case or accents
// are distinct units and are replaced independently.
func normalizeHashtags(s string) string {
	tags := Hashtags(s)
	if len(tags) == 0 {
		return s
	}
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		s = strings.ReplaceAll(s, tag, CanonicalHashtag(tag))
	}
	return s
}

package textnorm

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
)

// DefaultEncoding is the charset text is assumed to have been wrongly decoded with.
const DefaultEncoding = "windows-1252"

// maxMojibakeRounds bounds the repeated repair of text encoded more than once.
const maxMojibakeRounds = 3

// repairer undoes text that was produced as UTF-8 but decoded under a legacy
// single-byte charset ("cafÃ©" -> "café").
type repairer struct {
	enc encoding.Encoding
}

// newRepairer resolves the charset name through the WHATWG index, so
// "latin1", "iso-8859-1" and "cp1252" all land on windows-1252.
func newRepairer(name string) (*repairer, error) {
	if name == "" {
		name = DefaultEncoding
	}
	e, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("repair encoding %q: %w", name, err)
	}
	return &repairer{enc: e}, nil
}

// repair never fails: text it cannot fix is returned unchanged.
func (r *repairer) repair(s string) string {
	if !utf8.ValidString(s) {
		return s
	}
	s = r.roundTrip(s)
	for i := 0; i < maxMojibakeRounds; i++ {
		fixed := fixMojibake(s)
		if fixed == s {
			break
		}
		s = fixed
	}
	return s
}

// roundTrip re-encodes the whole string with the legacy charset and reads
// the bytes back as UTF-8. Unencodable runes, invalid UTF-8 or a result
// holding implausible characters abort it.
func (r *repairer) roundTrip(s string) string {
	raw, err := r.enc.NewEncoder().String(s)
	if err != nil || !utf8.ValidString(raw) {
		return s
	}
	for i := 0; i < len(raw); {
		c, size := utf8.DecodeRuneInString(raw[i:])
		if size > 1 && !plausibleMojibake(c, size) {
			return s
		}
		i += size
	}
	return raw
}

// fixMojibake repairs mojibake locally: each run of characters that map back
// to a single legacy byte is re-read as UTF-8, and only the valid multi-byte
// sequences inside the run are replaced.
func fixMojibake(s string) string {
	var (
		b       strings.Builder
		run     []rune
		changed bool
	)
	flush := func() {
		if len(run) == 0 {
			return
		}
		out, ok := decodeRun(run)
		changed = changed || ok
		b.WriteString(out)
		run = run[:0]
	}

	b.Grow(len(s))
	for _, c := range s {
		if _, ok := legacyByte(c); ok {
			run = append(run, c)
			continue
		}
		flush()
		b.WriteRune(c)
	}
	flush()

	if !changed {
		return s
	}
	return b.String()
}

func decodeRun(run []rune) (string, bool) {
	raw := make([]byte, len(run))
	for i, c := range run {
		raw[i], _ = legacyByte(c)
	}

	var b strings.Builder
	changed := false
	for i := 0; i < len(raw); {
		c, size := utf8.DecodeRune(raw[i:])
		if size > 1 && plausibleMojibake(c, size) {
			b.WriteRune(c)
			i += size
			changed = true
			continue
		}
		b.WriteRune(run[i])
		i++
	}
	return b.String(), changed
}

// plausibleMojibake reports whether a sequence decoded from a legacy run is
// likely to be text that was mis-decoded rather than a clean accented
// capital followed by punctuation ("CAFÉ»" decodes to U+027B). Two-byte and
// three-byte sequences must land in the blocks Western text actually uses;
// four-byte sequences (emoji) need three continuation characters in a row
// and are accepted as is.
func plausibleMojibake(c rune, size int) bool {
	switch {
	case size == 4:
		return true
	case c >= 0x80 && c <= 0x17F: // Latin-1 Supplement, Latin Extended-A
		return true
	case c >= 0x2000 && c <= 0x206F: // General Punctuation
		return true
	case c == '€':
		return true
	}
	return false
}

// legacyByte maps a character shown by a Latin-1 or Windows-1252 decoder
// back to the byte it was decoded from. ASCII is excluded.
func legacyByte(c rune) (byte, bool) {
	if c >= 0x80 && c <= 0xFF {
		return byte(c), true
	}
	if c > 0xFF {
		if b, ok := charmap.Windows1252.EncodeRune(c); ok && b >= 0x80 {
			return b, true
		}
	}
	return 0, false
}

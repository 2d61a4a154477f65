package textnorm

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrEmptyKey is returned for a lexicon entry without a surface form.
var ErrEmptyKey = errors.New("lexicon entry with empty key")

// Contraction maps an informal surface form to its canonical expansion.
type Contraction struct {
	From string `yaml:"from" json:"from"`
	To   string `yaml:"to" json:"to"`
}

// Lexicon is an ordered list of contractions. Entries are applied in
// declaration order, never sorted.
type Lexicon struct {
	ID      string        `yaml:"id" json:"id"`
	Version string        `yaml:"version" json:"version"`
	Entries []Contraction `yaml:"entries" json:"entries"`
}

// LoadLexicon reads and validates a lexicon YAML file.
func LoadLexicon(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read lexicon %s: %w", path, err)
	}
	lex, err := ParseLexicon(data)
	if err != nil {
		return nil, fmt.Errorf("lexicon %s: %w", path, err)
	}
	return lex, nil
}

// ParseLexicon decodes a lexicon YAML document.
func ParseLexicon(data []byte) (*Lexicon, error) {
	var lex Lexicon
	if err := yaml.Unmarshal(data, &lex); err != nil {
		return nil, fmt.Errorf("parse lexicon: %w", err)
	}
	if err := lex.Validate(); err != nil {
		return nil, err
	}
	return &lex, nil
}

// Validate rejects empty keys and warns about keys shadowed by an earlier
// entry with the same case-folded spelling.
func (l *Lexicon) Validate() error {
	seen := make(map[string]struct{}, len(l.Entries))
	var collisions int
	for i, c := range l.Entries {
		if strings.TrimSpace(c.From) == "" {
			return fmt.Errorf("entry %d: %w", i, ErrEmptyKey)
		}
		key := Lower(c.From)
		if _, ok := seen[key]; ok {
			collisions++
			continue
		}
		seen[key] = struct{}{}
	}
	if collisions > 0 {
		slog.Warn("duplicate lexicon keys", "lexicon", l.ID, "collisions", collisions)
	}
	return nil
}

// Len returns the number of entries.
func (l *Lexicon) Len() int {
	return len(l.Entries)
}

// clone returns a copy that does not share the entry slice.
func (l *Lexicon) clone() *Lexicon {
	c := *l
	c.Entries = append([]Contraction(nil), l.Entries...)
	return &c
}

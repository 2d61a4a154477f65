package textnorm

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestParseLexicon_PreservesOrder(t *testing.T) {
	lex, err := ParseLexicon([]byte(`id: test
version: "2"
entries:
  - from: zz
    to: last
  - from: aa
    to: first
  - from: "q'huvo"
    to: que hubo
`))
	if err != nil {
		t.Fatalf("ParseLexicon: %v", err)
	}
	if lex.ID != "test" || lex.Version != "2" {
		t.Errorf("id/version = %q/%q", lex.ID, lex.Version)
	}
	want := []string{"zz", "aa", "q'huvo"}
	if lex.Len() != len(want) {
		t.Fatalf("Len = %d, want %d", lex.Len(), len(want))
	}
	for i, from := range want {
		if lex.Entries[i].From != from {
			t.Errorf("entry %d = %q, want %q", i, lex.Entries[i].From, from)
		}
	}
}

func TestParseLexicon_EmptyKey(t *testing.T) {
	_, err := ParseLexicon([]byte("entries:\n  - from: \"\"\n    to: x\n"))
	if !errors.Is(err, ErrEmptyKey) {
		t.Errorf("err = %v, want ErrEmptyKey", err)
	}
}

func TestParseLexicon_Invalid(t *testing.T) {
	if _, err := ParseLexicon([]byte("entries: [")); err == nil {
		t.Error("expected parse error")
	}
}

func TestLoadLexicon(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lexicon.yaml")
	os.WriteFile(path, []byte("id: file\nentries:\n  - from: pq\n    to: porque\n"), 0o644)

	lex, err := LoadLexicon(path)
	if err != nil {
		t.Fatalf("LoadLexicon: %v", err)
	}
	if lex.Len() != 1 || lex.Entries[0].To != "porque" {
		t.Errorf("unexpected lexicon %+v", lex)
	}

	if _, err := LoadLexicon(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestDefaultLexicon_IsACopy(t *testing.T) {
	a := DefaultLexicon()
	a.Entries[0].To = "changed"
	b := DefaultLexicon()
	if b.Entries[0].To == "changed" {
		t.Error("DefaultLexicon shares its entries")
	}
	if err := b.Validate(); err != nil {
		t.Errorf("built-in lexicon invalid: %v", err)
	}
}

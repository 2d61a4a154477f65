package main

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLoadConfig_Missing(t *testing.T) {
	cfg, err := loadConfig(filepath.Join(t.TempDir(), "nope.yaml"), discard())
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Addr != ":8421" || cfg.Encoding != "windows-1252" || cfg.GoldenDB != "golden.db" {
		t.Errorf("defaults = %+v", cfg)
	}
	if cfg.Denylist != nil || cfg.Emoji != nil {
		t.Error("lists should stay nil so the pipeline defaults apply")
	}
}

func TestLoadConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "addr: \":9000\"\ndenylist: []\nemoji: [\"👍\"]\nworkers: 3\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := loadConfig(path, discard())
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Addr != ":9000" || cfg.Workers != 3 {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Denylist == nil || len(cfg.Denylist) != 0 {
		t.Errorf("denylist = %#v, want empty non-nil", cfg.Denylist)
	}
	if cfg.Encoding != "windows-1252" {
		t.Errorf("encoding default lost: %q", cfg.Encoding)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("addr: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := loadConfig(path, discard()); err == nil {
		t.Error("expected parse error")
	}
}

func TestParseEmoji(t *testing.T) {
	got, err := parseEmoji([]string{"😀", "❤"})
	if err != nil {
		t.Fatalf("parseEmoji: %v", err)
	}
	if len(got) != 2 || got[0] != '😀' || got[1] != '❤' {
		t.Errorf("got %q", got)
	}
	if _, err := parseEmoji([]string{"❤️"}); err == nil {
		t.Error("expected error for multi code point entry")
	}
}

func TestBuildPipeline(t *testing.T) {
	dir := t.TempDir()
	lexPath := filepath.Join(dir, "lex.yaml")
	lex := "id: test\nversion: \"1\"\nentries:\n  - from: la\n    to: LA\n"
	if err := os.WriteFile(lexPath, []byte(lex), 0o644); err != nil {
		t.Fatal(err)
	}

	p, err := buildPipeline(config{Lexicon: lexPath, Encoding: "windows-1252"})
	if err != nil {
		t.Fatalf("buildPipeline: %v", err)
	}
	if got := p.Lexicon().ID; got != "test" {
		t.Errorf("lexicon id = %q", got)
	}
	if got := p.Normalize("la casa"); got != "la casa" {
		t.Errorf("Normalize = %q", got)
	}

	if _, err := buildPipeline(config{Encoding: "no-such-charset"}); err == nil {
		t.Error("expected error for unknown encoding")
	}
	if _, err := buildPipeline(config{Emoji: []string{"ab"}}); err == nil {
		t.Error("expected error for bad emoji")
	}
}

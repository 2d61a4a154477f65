// Command textnorm normalizes informal review and social-media text.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"unicode/utf8"

	"github.com/hazyhaar/textnorm/pkg/textnorm"
	"gopkg.in/yaml.v3"
)

var version = "dev"

type config struct {
	Addr       string   `yaml:"addr"`
	MCPAddr    string   `yaml:"mcp_addr"`    // standalone MCP QUIC listener
	SecureAddr string   `yaml:"secure_addr"` // TLS + HTTP/3 + MCP on one port
	TLSCert    string   `yaml:"tls_cert"`
	TLSKey     string   `yaml:"tls_key"`
	Lexicon    string   `yaml:"lexicon"`
	Denylist   []string `yaml:"denylist"`
	Emoji      []string `yaml:"emoji"`
	Encoding   string   `yaml:"encoding"`
	Workers    int      `yaml:"workers"`
	GoldenDB   string   `yaml:"golden_db"`
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	args := os.Args[2:]
	switch os.Args[1] {
	case "serve":
		cmdServe(args)
	case "normalize":
		cmdNormalize(args)
	case "golden":
		cmdGolden(args)
	case "mcp":
		cmdMCP(args)
	case "call":
		cmdCall(args)
	case "version":
		fmt.Println(version)
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprint(os.Stderr, `Usage: textnorm <command> [flags]

Commands:
  serve       Start the HTTP API (and the MCP QUIC listener if configured)
  normalize   Add a normalized column to a CSV file
  golden      Manage and check the golden corpus (add, list, check, update, delete)
  mcp         Serve MCP tools over stdio
  call        Call a tool on a remote MCP QUIC listener
  version     Print the version
`)
}

func newLogger(level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func fatal(logger *slog.Logger, msg string, err error) {
	logger.Error(msg, "error", err)
	os.Exit(1)
}

// loadConfig returns defaults when the file does not exist.
func loadConfig(path string, logger *slog.Logger) (config, error) {
	cfg := config{
		Addr:     ":8421",
		Encoding: textnorm.DefaultEncoding,
		GoldenDB: "golden.db",
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Info("no config file, using defaults", "path", path)
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// buildPipeline turns the config into pipeline options. Unset lists keep the
// built-in defaults.
func buildPipeline(cfg config) (*textnorm.Pipeline, error) {
	opts := textnorm.Options{
		Denylist: cfg.Denylist,
		Encoding: cfg.Encoding,
	}
	if cfg.Emoji != nil {
		emoji, err := parseEmoji(cfg.Emoji)
		if err != nil {
			return nil, err
		}
		opts.Emoji = emoji
	}
	if cfg.Lexicon != "" {
		lex, err := textnorm.LoadLexicon(cfg.Lexicon)
		if err != nil {
			return nil, err
		}
		opts.Lexicon = lex
	}
	return textnorm.New(opts)
}

// parseEmoji requires every entry to be exactly one code point.
func parseEmoji(list []string) ([]rune, error) {
	out := make([]rune, 0, len(list))
	for _, s := range list {
		if utf8.RuneCountInString(s) != 1 {
			return nil, fmt.Errorf("emoji %q: want a single code point", s)
		}
		r, _ := utf8.DecodeRuneInString(s)
		out = append(out, r)
	}
	return out, nil
}

// setup loads the config and builds the pipeline, exiting on error.
func setup(path string, logger *slog.Logger) (config, *textnorm.Pipeline) {
	cfg, err := loadConfig(path, logger)
	if err != nil {
		fatal(logger, "config", err)
	}
	p, err := buildPipeline(cfg)
	if err != nil {
		fatal(logger, "build pipeline", err)
	}
	return cfg, p
}

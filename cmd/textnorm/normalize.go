package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hazyhaar/textnorm/pkg/dataset"
)

func cmdNormalize(args []string) {
	fs := flag.NewFlagSet("normalize", flag.ExitOnError)
	cfgPath := fs.String("config", "config.yaml", "path to config file")
	in := fs.String("in", "-", "input CSV file (- for stdin)")
	out := fs.String("out", "-", "output CSV file (- for stdout)")
	column := fs.String("column", "text", "column holding the text (name, or index without header)")
	outColumn := fs.String("output-column", "", "column receiving the result (default <column>_normalized)")
	delim := fs.String("delimiter", ",", "field delimiter")
	enc := fs.String("encoding", "utf-8", "input charset")
	noHeader := fs.Bool("no-header", false, "input has no header row")
	fs.Parse(args)

	logger := newLogger(slog.LevelInfo)
	cfg, p := setup(*cfgPath, logger)

	r, closeIn, err := openInput(*in)
	if err != nil {
		fatal(logger, "open input", err)
	}
	defer closeIn()

	table, err := dataset.Read(r, dataset.Format{Delimiter: *delim, Encoding: *enc, HasHeader: !*noHeader})
	if err != nil {
		fatal(logger, "read dataset", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if err := table.Normalize(ctx, p, *column, *outColumn, cfg.Workers); err != nil {
		fatal(logger, "normalize", err)
	}

	w, closeOut, err := openOutput(*out)
	if err != nil {
		fatal(logger, "open output", err)
	}
	if err := dataset.Write(w, table, *delim); err != nil {
		closeOut()
		fatal(logger, "write dataset", err)
	}
	if err := closeOut(); err != nil {
		fatal(logger, "close output", err)
	}
	logger.Info("normalized", "rows", len(table.Rows), "column", *column)
}

func openInput(path string) (io.Reader, func() error, error) {
	if path == "-" {
		return os.Stdin, func() error { return nil }, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

func openOutput(path string) (io.Writer, func() error, error) {
	if path == "-" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create %s: %w", path, err)
	}
	return f, f.Close, nil
}

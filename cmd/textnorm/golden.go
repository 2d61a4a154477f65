package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"
	"time"

	"github.com/hazyhaar/textnorm/pkg/golden"
)

func cmdGolden(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: textnorm golden <add|list|check|update|delete> [flags]")
		os.Exit(1)
	}
	sub, args := args[0], args[1:]

	fs := flag.NewFlagSet("golden "+sub, flag.ExitOnError)
	cfgPath := fs.String("config", "config.yaml", "path to config file")
	dbPath := fs.String("db", "", "golden database (default from config)")
	input := fs.String("input", "", "input text (add)")
	expected := fs.String("expected", "", "expected output (add; default: current pipeline output)")
	note := fs.String("note", "", "free-form note (add)")
	id := fs.Int64("id", 0, "case id (delete)")
	fs.Parse(args)

	logger := newLogger(slog.LevelInfo)
	cfg, p := setup(*cfgPath, logger)
	if *dbPath == "" {
		*dbPath = cfg.GoldenDB
	}

	store, err := golden.Open(*dbPath)
	if err != nil {
		fatal(logger, "open golden db", err)
	}
	defer store.Close()

	ctx := context.Background()
	checker := golden.NewChecker(store, logger, cfg.Workers)

	switch sub {
	case "add":
		if *input == "" {
			fmt.Fprintln(os.Stderr, "golden add: -input is required")
			os.Exit(1)
		}
		want := *expected
		if want == "" {
			want = p.Normalize(*input)
		}
		newID, err := store.Add(*input, want, *note)
		if err != nil {
			fatal(logger, "golden add", err)
		}
		fmt.Printf("%d\t%q -> %q\n", newID, *input, want)

	case "list":
		cases, err := store.List()
		if err != nil {
			fatal(logger, "golden list", err)
		}
		tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tINPUT\tEXPECTED\tNOTE\tUPDATED")
		for _, c := range cases {
			fmt.Fprintf(tw, "%d\t%q\t%q\t%s\t%s\n", c.ID, c.Input, c.Expected, c.Note,
				time.Unix(c.UpdatedAt, 0).Format(time.DateTime))
		}
		tw.Flush()

	case "check":
		report, err := checker.Check(ctx, p)
		if err != nil {
			fatal(logger, "golden check", err)
		}
		for _, m := range report.Mismatches {
			fmt.Printf("#%d %q\n  want %q\n  got  %q\n", m.Case.ID, m.Case.Input, m.Case.Expected, m.Got)
		}
		fmt.Printf("%d/%d passed\n", report.Passed, report.Total)
		if !report.OK() {
			os.Exit(1)
		}

	case "update":
		n, err := checker.Update(ctx, p)
		if err != nil {
			fatal(logger, "golden update", err)
		}
		fmt.Printf("%d cases updated\n", n)

	case "delete":
		if err := store.Delete(*id); err != nil {
			fatal(logger, "golden delete", err)
		}

	default:
		fmt.Fprintf(os.Stderr, "golden: unknown subcommand %q\n", sub)
		os.Exit(1)
	}
}

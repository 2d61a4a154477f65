package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/hazyhaar/textnorm/pkg/api"
	"github.com/hazyhaar/textnorm/pkg/mcpquic"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// cmdMCP serves the tools on stdin/stdout. Logs go to stderr only.
func cmdMCP(args []string) {
	fs := flag.NewFlagSet("mcp", flag.ExitOnError)
	cfgPath := fs.String("config", "config.yaml", "path to config file")
	fs.Parse(args)

	logger := newLogger(slog.LevelWarn)
	cfg, p := setup(*cfgPath, logger)

	srv := server.NewMCPServer("textnorm", version, server.WithToolCapabilities(false))
	api.RegisterMCPTools(srv, api.NewEndpoints(p, logger, cfg.Workers))
	if err := server.ServeStdio(srv); err != nil {
		fatal(logger, "mcp stdio", err)
	}
}

// cmdCall invokes one tool on a remote MCP QUIC listener and prints the
// text content it returns.
func cmdCall(args []string) {
	fs := flag.NewFlagSet("call", flag.ExitOnError)
	addr := fs.String("addr", "localhost:8422", "MCP QUIC listener address")
	insecure := fs.Bool("insecure", false, "skip certificate verification")
	tool := fs.String("tool", "normalize_text", "tool name (empty to list tools)")
	argsJSON := fs.String("args", "", `tool arguments as a JSON object, e.g. {"text":"..."}`)
	timeout := fs.Duration("timeout", 30*time.Second, "call timeout")
	fs.Parse(args)

	logger := newLogger(slog.LevelWarn)

	var toolArgs map[string]any
	if *argsJSON != "" {
		if err := json.Unmarshal([]byte(*argsJSON), &toolArgs); err != nil {
			fatal(logger, "parse -args", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	c := mcpquic.NewClient(*addr, mcpquic.ClientTLSConfig(*insecure))
	if err := c.Connect(ctx); err != nil {
		fatal(logger, "connect", err)
	}
	defer c.Close()

	if *tool == "" {
		res, err := c.ListTools(ctx)
		if err != nil {
			fatal(logger, "list tools", err)
		}
		for _, t := range res.Tools {
			fmt.Printf("%s\t%s\n", t.Name, t.Description)
		}
		return
	}

	res, err := c.CallTool(ctx, *tool, toolArgs)
	if err != nil {
		fatal(logger, "call tool", err)
	}
	for _, content := range res.Content {
		if tc, ok := content.(mcp.TextContent); ok {
			fmt.Println(tc.Text)
		}
	}
	if res.IsError {
		os.Exit(1)
	}
}

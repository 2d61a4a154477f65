package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/hazyhaar/textnorm/pkg/api"
	"github.com/hazyhaar/textnorm/pkg/chassis"
	"github.com/hazyhaar/textnorm/pkg/mcpquic"
	"github.com/mark3labs/mcp-go/server"
)

func cmdServe(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	cfgPath := fs.String("config", "config.yaml", "path to config file")
	debug := fs.Bool("debug", false, "log every request")
	fs.Parse(args)

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := newLogger(level)

	cfg, p := setup(*cfgPath, logger)
	lex := p.Lexicon()
	logger.Info("pipeline ready", "lexicon", lex.ID, "entries", lex.Len(), "encoding", cfg.Encoding)

	eps := api.NewEndpoints(p, logger, cfg.Workers)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	router := api.NewRouter(eps)
	var mcpSrv *server.MCPServer
	if cfg.MCPAddr != "" || cfg.SecureAddr != "" {
		mcpSrv = server.NewMCPServer("textnorm", version, server.WithToolCapabilities(false))
		api.RegisterMCPTools(mcpSrv, eps)
		if cfg.TLSCert == "" {
			logger.Warn("no tls_cert configured, using a self-signed certificate")
		}
	}

	if cfg.MCPAddr != "" {
		tlsCfg, err := mcpquic.ServerTLSConfig(cfg.TLSCert, cfg.TLSKey)
		if err != nil {
			fatal(logger, "mcp tls", err)
		}
		ln, err := mcpquic.Listen(cfg.MCPAddr, tlsCfg, mcpSrv, logger)
		if err != nil {
			fatal(logger, "mcp listen", err)
		}
		defer ln.Close()
		go func() {
			if err := ln.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("mcp listener stopped", "error", err)
			}
		}()
	}

	if cfg.SecureAddr != "" {
		ch, err := chassis.New(chassis.Config{
			Addr:      cfg.SecureAddr,
			CertFile:  cfg.TLSCert,
			KeyFile:   cfg.TLSKey,
			Handler:   router,
			MCPServer: mcpSrv,
			Logger:    logger,
		})
		if err != nil {
			fatal(logger, "chassis", err)
		}
		go func() {
			if err := ch.Start(ctx); err != nil {
				fatal(logger, "chassis", err)
			}
		}()
		defer func() {
			stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := ch.Stop(stopCtx); err != nil {
				logger.Warn("chassis stop", "error", err)
			}
		}()
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info("textnorm listening", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			fatal(logger, "http server", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("shutdown", "error", err)
	}
}

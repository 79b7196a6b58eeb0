package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/alnah/go-mdsite/internal/hints"
	"github.com/alnah/go-mdsite/internal/server"
)

// readyFunc is called with the bound address once the server accepts
// connections (for tests).
type readyFunc func(addr string)

// runServe serves the site until ctx is canceled, then shuts down gracefully.
func runServe(ctx context.Context, args []string, env *Environment) error {
	return serve(ctx, args, env, nil)
}

func serve(ctx context.Context, args []string, env *Environment, ready readyFunc) error {
	flags, positional, err := parseServeFlags(args, env.Stdout)
	if err != nil {
		return err
	}
	if len(positional) > 0 {
		return fmt.Errorf("%w: serve takes no arguments, got %q", ErrUsage, positional[0])
	}

	cfg, err := loadConfig(flags.common, env)
	if err != nil {
		return err
	}
	if flags.addr != "" {
		cfg.Server.Addr = flags.addr
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if !flags.common.quiet {
		warnMissingContent(cfg, env)
	}

	site, err := newSite(cfg, env)
	if err != nil {
		return err
	}

	srvCfg := server.Config{MediaDir: cfg.Content.MediaDir}
	if !flags.common.quiet {
		srvCfg.Logger = server.NewLogger(env.Stderr)
	}
	srv, err := newServer(site, cfg, srvCfg)
	if err != nil {
		return err
	}

	ln, err := net.Listen("tcp", cfg.Server.Addr)
	if err != nil {
		return fmt.Errorf("%w: %v%s", ErrListen, err, hints.ForListen(cfg.Server.Addr))
	}

	httpServer := &http.Server{
		Handler:           srv.Handler(),
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.Serve(ln)
	}()

	addr := ln.Addr().String()
	if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "Serving %s on http://%s\n", cfg.Site.Title, addr)
	}
	if ready != nil {
		ready(addr)
	}

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	if flags.common.verbose {
		fmt.Fprintln(env.Stderr, "Shutting down...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}

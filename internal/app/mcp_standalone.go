package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"splitbook/internal/config"
	mcpserver "splitbook/internal/mcp"
)

// ServeMCP runs the MCP server on stdin/stdout until stdin closes or the
// process is interrupted. While it runs, edits to the config file retune the
// layout engine and the maintenance job prunes old undo history.
func (a *App) ServeMCP(ctx context.Context, version string) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	maint, err := a.NewMaintenance()
	if err != nil {
		return err
	}
	maint.Start()
	defer func() { <-maint.Stop().Done() }()

	if path := a.cfg.Path(); path != "" {
		w, err := config.Watch(path, func(c *config.Config) {
			a.Layout.SetLayoutConfig(c.Layout)
			a.log.Info("layout config reloaded", "path", path)
		})
		if err != nil {
			a.log.Warn("config watch disabled", "path", path, "error", err)
		} else {
			defer w.Close()
		}
	}

	srv := mcpserver.New(mcpserver.Deps{Layout: a.Layout, Version: version})
	done := make(chan error, 1)
	go func() { done <- srv.ServeStdio() }()

	select {
	case err = <-done:
	case <-ctx.Done():
		a.log.Info("interrupted, shutting down")
	}

	shutdown, stop := context.WithTimeout(context.Background(), 5*time.Second)
	defer stop()
	a.Layout.Shutdown(shutdown)
	return err
}

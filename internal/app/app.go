package app

import (
	"context"
	"fmt"
	"log/slog"

	"splitbook/internal/config"
	"splitbook/internal/logger"
	"splitbook/internal/service"
	"splitbook/internal/storage"
)

// App wires storage and services from one configuration. The CLI commands
// and the MCP server both run on top of it.
type App struct {
	cfg *config.Config
	log *slog.Logger

	db     *storage.DB
	docs   *storage.DocumentStore
	undos  *storage.UndoStore
	Layout *service.LayoutService
}

// New opens the database named by cfg and builds the layout service.
// A nil emitter logs events instead of delivering them.
func New(cfg *config.Config, emitter service.EventEmitter) (*App, error) {
	log := logger.ComponentLogger("app")
	if emitter == nil {
		emitter = service.LogEmitter{Log: logger.ComponentLogger("events")}
	}

	db, err := storage.New(cfg.DBPath())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	a := &App{
		cfg:   cfg,
		log:   log,
		db:    db,
		docs:  storage.NewDocumentStore(db),
		undos: storage.NewUndoStore(db, cfg.UndoLimit),
	}
	a.Layout = service.NewLayoutService(a.docs, a.undos, service.Options{
		Layout:     cfg.Layout,
		PageWidth:  cfg.PageWidth,
		PageHeight: cfg.PageHeight,
	}, emitter)

	log.Debug("app ready", "db", cfg.DBPath())
	return a, nil
}

// Config returns the configuration the app was built from.
func (a *App) Config() *config.Config { return a.cfg }

// NewMaintenance builds the undo pruning job from the configured schedule.
func (a *App) NewMaintenance() (*service.Maintenance, error) {
	retention, err := a.cfg.Retention()
	if err != nil {
		return nil, err
	}
	return service.NewMaintenance(a.undos, a.cfg.MaintenanceSchedule, retention)
}

// Close waits for open resize sessions until ctx expires and closes the
// database.
func (a *App) Close(ctx context.Context) error {
	a.Layout.Shutdown(ctx)
	return a.db.Close()
}

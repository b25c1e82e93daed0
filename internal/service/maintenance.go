package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"splitbook/internal/logger"
	"splitbook/internal/storage"
)

// ─────────────────────────────────────────────────────────────
// Maintenance — scheduled pruning of old undo history
// ─────────────────────────────────────────────────────────────

// Maintenance drops undo entries older than the retention window on a cron
// schedule. A zero retention keeps history forever.
type Maintenance struct {
	undo      *storage.UndoStore
	retention time.Duration
	cron      *cron.Cron
	log       *slog.Logger
}

// NewMaintenance parses schedule (standard cron syntax or a descriptor such
// as "@hourly") without starting it.
func NewMaintenance(undo *storage.UndoStore, schedule string, retention time.Duration) (*Maintenance, error) {
	m := &Maintenance{
		undo:      undo,
		retention: retention,
		cron:      cron.New(),
		log:       logger.ComponentLogger("maintenance"),
	}
	if _, err := m.cron.AddFunc(schedule, m.run); err != nil {
		return nil, fmt.Errorf("schedule %q: %w", schedule, err)
	}
	return m, nil
}

func (m *Maintenance) Start() {
	m.cron.Start()
	m.log.Info("maintenance started", "retention", m.retention.String())
}

// Stop halts the schedule. The returned context is done once a running job
// has finished.
func (m *Maintenance) Stop() context.Context {
	return m.cron.Stop()
}

// PruneNow runs one pruning pass and returns the number of entries removed.
func (m *Maintenance) PruneNow() (int, error) {
	if m.retention <= 0 {
		return 0, nil
	}
	return m.undo.PruneOlderThan(time.Now().Add(-m.retention))
}

func (m *Maintenance) run() {
	n, err := m.PruneNow()
	if err != nil {
		m.log.Error("prune undo history", "error", err)
		return
	}
	if n > 0 {
		m.log.Info("pruned undo history", "removed", n)
	}
}

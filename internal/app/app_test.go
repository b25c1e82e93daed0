package app

import (
	"context"
	"path/filepath"
	"testing"

	"splitbook/internal/config"
	"splitbook/internal/service"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Defaults()
	cfg.DataDir = filepath.Join(t.TempDir(), "data")
	return cfg
}

func TestNew_OpensStorageAndService(t *testing.T) {
	cfg := testConfig(t)
	emitter := &service.MockEmitter{}
	a, err := New(cfg, emitter)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	doc, page, err := a.Layout.CreateDocument(context.Background(), "Zine")
	if err != nil {
		t.Fatal(err)
	}
	if doc.Name != "Zine" || page.Width != cfg.PageWidth || page.Height != cfg.PageHeight {
		t.Errorf("doc %+v page %vx%v", doc, page.Width, page.Height)
	}
	if len(emitter.Named(service.EventLayoutChanged)) != 1 {
		t.Error("emitter not wired")
	}
	if err := a.Close(context.Background()); err != nil {
		t.Fatal(err)
	}

	// Data survives reopening.
	b, err := New(cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer b.Close(context.Background())
	if _, err := b.Layout.GetPage(page.ID); err != nil {
		t.Errorf("page lost after reopen: %v", err)
	}
}

func TestNewMaintenance(t *testing.T) {
	cfg := testConfig(t)
	a, err := New(cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer a.Close(context.Background())

	if _, err := a.NewMaintenance(); err != nil {
		t.Errorf("default schedule rejected: %v", err)
	}

	cfg.MaintenanceSchedule = "every tuesday"
	if _, err := a.NewMaintenance(); err == nil {
		t.Error("bad schedule accepted")
	}
	cfg.MaintenanceSchedule = "@daily"
	cfg.UndoRetention = "soon"
	if _, err := a.NewMaintenance(); err == nil {
		t.Error("bad retention accepted")
	}
}

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := Defaults()
	if diff := cmp.Diff(want, cfg, cmpopts.IgnoreUnexported(Config{})); diff != "" {
		t.Errorf("config (-want +got):\n%s", diff)
	}
	if cfg.Path() != path {
		t.Errorf("Path = %s, want %s", cfg.Path(), path)
	}
}

func TestLoad_PartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	body := `{"dataDir": "/srv/splitbook", "undoLimit": 10, "layout": {"minAreaPercent": 5, "keyboardMinStep": 2}}`
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DataDir != "/srv/splitbook" || cfg.UndoLimit != 10 {
		t.Errorf("explicit fields lost: %+v", cfg)
	}
	if cfg.Layout.MinAreaPercent != 5 || cfg.Layout.KeyboardMinStep != 2 {
		t.Errorf("layout = %+v", cfg.Layout)
	}
	if cfg.UndoRetention != defaultUndoRetention || cfg.MaintenanceSchedule != defaultSchedule {
		t.Errorf("defaults not filled: %q %q", cfg.UndoRetention, cfg.MaintenanceSchedule)
	}
	if len(cfg.Layout.SnapFractions) != 3 {
		t.Errorf("snap fractions = %v", cfg.Layout.SnapFractions)
	}
	if got := cfg.DBPath(); got != "/srv/splitbook/splitbook.db" {
		t.Errorf("DBPath = %s", got)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name, body, want string
	}{
		{"bad json", `{`, "parse config"},
		{"bad schedule", `{"maintenanceSchedule": "every tuesday"}`, "maintenanceSchedule"},
		{"bad retention", `{"undoRetention": "forever"}`, "undoRetention"},
		{"fraction out of range", `{"layout": {"snapFractions": [0.5, 1.5]}}`, "snapFractions"},
		{"zero step", `{"layout": {"keyboardMinStep": 0}}`, "keyboardMinStep"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.json")
			if err := os.WriteFile(path, []byte(tt.body), 0644); err != nil {
				t.Fatal(err)
			}
			_, err := Load(path)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Load error = %v, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.json")
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	cfg.Debug = true
	cfg.Layout.SnapDistancePx = 20
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if diff := cmp.Diff(cfg, got, cmpopts.IgnoreUnexported(Config{})); diff != "" {
		t.Errorf("round trip (-saved +loaded):\n%s", diff)
	}
}

func TestRetention(t *testing.T) {
	cfg := Defaults()
	d, err := cfg.Retention()
	if err != nil || d != 720*time.Hour {
		t.Errorf("Retention = %v, %v", d, err)
	}
	cfg.UndoRetention = "-1h"
	if _, err := cfg.Retention(); err == nil {
		t.Error("negative retention accepted")
	}
}

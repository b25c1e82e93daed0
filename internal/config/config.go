// Package config loads and saves the splitbook configuration file.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"

	"splitbook/internal/layout"
)

const (
	defaultUndoLimit     = 40
	defaultUndoRetention = "720h"
	defaultSchedule      = "@hourly"
	defaultPageWidth     = 1240
	defaultPageHeight    = 1754
)

// Config is the on-disk configuration. Zero values are filled from Defaults
// when loading.
type Config struct {
	DataDir string `json:"dataDir"`
	LogPath string `json:"logPath,omitempty"`
	Debug   bool   `json:"debug,omitempty"`

	Layout     layout.Config `json:"layout"`
	PageWidth  float64       `json:"pageWidth"`
	PageHeight float64       `json:"pageHeight"`

	UndoLimit           int    `json:"undoLimit"`
	UndoRetention       string `json:"undoRetention"`
	MaintenanceSchedule string `json:"maintenanceSchedule"`

	filePath string
}

// DefaultPath returns ~/.config/splitbook/config.json.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "splitbook", "config.json"), nil
}

// Defaults returns the configuration used when no file exists.
func Defaults() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		DataDir:             filepath.Join(home, ".local", "share", "splitbook"),
		Layout:              layout.DefaultConfig(),
		PageWidth:           defaultPageWidth,
		PageHeight:          defaultPageHeight,
		UndoLimit:           defaultUndoLimit,
		UndoRetention:       defaultUndoRetention,
		MaintenanceSchedule: defaultSchedule,
	}
}

// Load reads path, or the default path when path is empty. A missing file
// yields Defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, fmt.Errorf("resolve config path: %w", err)
		}
		path = p
	}

	cfg := Defaults()
	cfg.filePath = path

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.fillDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// fillDefaults restores fields a partial file set to their zero value.
func (c *Config) fillDefaults() {
	d := Defaults()
	if c.DataDir == "" {
		c.DataDir = d.DataDir
	}
	if c.PageWidth == 0 {
		c.PageWidth = d.PageWidth
	}
	if c.PageHeight == 0 {
		c.PageHeight = d.PageHeight
	}
	if c.UndoLimit == 0 {
		c.UndoLimit = d.UndoLimit
	}
	if c.UndoRetention == "" {
		c.UndoRetention = d.UndoRetention
	}
	if c.MaintenanceSchedule == "" {
		c.MaintenanceSchedule = d.MaintenanceSchedule
	}
	if c.Layout.SnapFractions == nil {
		c.Layout.SnapFractions = d.Layout.SnapFractions
	}
}

// Validate reports the first inconsistent field.
func (c *Config) Validate() error {
	l := c.Layout
	switch {
	case l.MinAreaPercent < 0 || l.MinAreaPercent >= 50:
		return fmt.Errorf("layout.minAreaPercent %v out of range [0, 50)", l.MinAreaPercent)
	case l.SnapDistancePx < 0:
		return fmt.Errorf("layout.snapDistancePx must not be negative")
	case l.MinGapForRecursion < 0:
		return fmt.Errorf("layout.minGapForRecursion must not be negative")
	case l.RecursionDepth < 0 || l.RecursionDepth > 6:
		return fmt.Errorf("layout.recursionDepth %d out of range [0, 6]", l.RecursionDepth)
	case l.EdgePercent < 0 || l.EdgePercent >= 50:
		return fmt.Errorf("layout.edgePercent %v out of range [0, 50)", l.EdgePercent)
	case l.KeyboardMinStep <= 0:
		return fmt.Errorf("layout.keyboardMinStep must be positive")
	}
	for _, f := range l.SnapFractions {
		if f <= 0 || f >= 1 {
			return fmt.Errorf("layout.snapFractions: %v not in (0, 1)", f)
		}
	}
	if c.PageWidth <= 0 || c.PageHeight <= 0 {
		return fmt.Errorf("page size %vx%v must be positive", c.PageWidth, c.PageHeight)
	}
	if c.UndoLimit < 1 {
		return fmt.Errorf("undoLimit must be at least 1")
	}
	if _, err := c.Retention(); err != nil {
		return err
	}
	if _, err := cron.ParseStandard(c.MaintenanceSchedule); err != nil {
		return fmt.Errorf("maintenanceSchedule %q: %w", c.MaintenanceSchedule, err)
	}
	return nil
}

// Retention parses UndoRetention. Zero disables age-based pruning.
func (c *Config) Retention() (time.Duration, error) {
	d, err := time.ParseDuration(c.UndoRetention)
	if err != nil {
		return 0, fmt.Errorf("undoRetention %q: %w", c.UndoRetention, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("undoRetention must not be negative")
	}
	return d, nil
}

// Path returns the file the config was loaded from.
func (c *Config) Path() string { return c.filePath }

// DBPath returns the SQLite file inside DataDir.
func (c *Config) DBPath() string { return filepath.Join(c.DataDir, "splitbook.db") }

// Save writes the config back to the file it was loaded from.
func (c *Config) Save() error {
	if c.filePath == "" {
		p, err := DefaultPath()
		if err != nil {
			return err
		}
		c.filePath = p
	}
	if err := os.MkdirAll(filepath.Dir(c.filePath), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(c.filePath, data, 0644)
}

package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"splitbook/internal/app"
	"splitbook/internal/config"
	"splitbook/internal/logger"
)

var (
	configPath            string
	debugMode             bool
	version, commit, date string = "dev", "none", "unknown"

	// cfg is loaded once per invocation before any subcommand runs.
	cfg *config.Config
)

// SetVersionInfo sets version information from ldflags
func SetVersionInfo(v, c, d string) {
	version, commit, date = v, c, d
}

var rootCmd = &cobra.Command{
	Use:   "splitbook",
	Short: "Split-screen page layouts for zines and photo books",
	Long: `Splitbook lays out pages as trees of regions. Every region can be split in
two, resized along its divider, merged with its neighbour or deleted, and every
change can be undone. Run "splitbook serve" to drive it from an agent over MCP.`,
	PersistentPreRunE: initConfig,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.config/splitbook/config.json)")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
}

func initConfig(cmd *cobra.Command, args []string) error {
	c, err := config.Load(configPath)
	if err != nil {
		return err
	}
	cfg = c

	logger.SetDebug(debugMode || cfg.Debug)
	logPath := cfg.LogPath
	if logPath == "" {
		logPath = logger.DefaultLogPath()
	}
	return logger.Init(logPath)
}

// Execute runs the root command
func Execute() error {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(versionTemplate())
	defer logger.Close()
	return rootCmd.Execute()
}

func versionTemplate() string {
	if commit != "none" && commit != "" {
		return fmt.Sprintf("splitbook %s\n  commit: %s\n  built:  %s\n", version, commit, date)
	}
	return fmt.Sprintf("splitbook %s\n", version)
}

// withApp opens the app for one command and closes it afterwards.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app.App) error) error {
	a, err := app.New(cfg, nil)
	if err != nil {
		return err
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		a.Close(ctx)
	}()
	return fn(cmd.Context(), a)
}

package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"splitbook/internal/app"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server on stdin/stdout",
	Long: `Starts an MCP server over stdio that exposes every layout gesture as a tool.
Logs go to the configured log file, never to stdout.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			return a.ServeMCP(ctx, version)
		})
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"splitbook/internal/app"
	"splitbook/internal/domain"
	"splitbook/internal/layout"
	"splitbook/internal/service"
)

var (
	splitOrientation string
	splitInvert      bool
	splitContentTo   string
	mergeFocus       string
	nudgeBack        bool
	resizeNoSnap     bool
)

var splitCmd = &cobra.Command{
	Use:   "split <pageId> <leafId>",
	Short: "Split a leaf region in two",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		o, ok := domain.ParseOrientation(splitOrientation)
		if !ok {
			return fmt.Errorf("--orientation must be v or h, got %q", splitOrientation)
		}
		req := service.SplitRequest{Orientation: o, Invert: splitInvert}
		switch splitContentTo {
		case "first":
		case "second":
			req.ContentTo = layout.ContentToSecond
		default:
			return fmt.Errorf("--content-to must be first or second, got %q", splitContentTo)
		}
		return runGesture(cmd, func(ctx context.Context, a *app.App) (*service.Result, error) {
			return a.Layout.Split(ctx, args[0], args[1], req)
		})
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <pageId> <nodeId>",
	Short: "Delete a region; its sibling takes over the space",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGesture(cmd, func(ctx context.Context, a *app.App) (*service.Result, error) {
			return a.Layout.Delete(ctx, args[0], args[1])
		})
	},
}

var mergeCmd = &cobra.Command{
	Use:   "merge <pageId> <splitId>",
	Short: "Merge the two regions that touch a divider",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGesture(cmd, func(ctx context.Context, a *app.App) (*service.Result, error) {
			return a.Layout.Merge(ctx, args[0], args[1], mergeFocus)
		})
	},
}

var nudgeCmd = &cobra.Command{
	Use:   "nudge <pageId> <splitId>",
	Short: "Move a divider to its next snap point",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGesture(cmd, func(ctx context.Context, a *app.App) (*service.Result, error) {
			return a.Layout.Nudge(ctx, args[0], args[1], !nudgeBack)
		})
	},
}

var resizeCmd = &cobra.Command{
	Use:   "resize <pageId> <splitId> <percent>",
	Short: "Move a divider so the first side takes percent of the split",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		pct, err := strconv.ParseFloat(args[2], 64)
		if err != nil || pct < 0 || pct > 100 {
			return fmt.Errorf("percent must be a number between 0 and 100, got %q", args[2])
		}
		return runGesture(cmd, func(ctx context.Context, a *app.App) (*service.Result, error) {
			return a.Layout.ResizeTo(ctx, args[0], args[1], pct, !resizeNoSnap)
		})
	},
}

var undoCmd = &cobra.Command{
	Use:   "undo <pageId>",
	Short: "Undo the last change on a page",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGesture(cmd, func(ctx context.Context, a *app.App) (*service.Result, error) {
			return a.Layout.Undo(ctx, args[0])
		})
	},
}

var redoCmd = &cobra.Command{
	Use:   "redo <pageId>",
	Short: "Redo the most recently undone change on a page",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGesture(cmd, func(ctx context.Context, a *app.App) (*service.Result, error) {
			return a.Layout.Redo(ctx, args[0])
		})
	},
}

func init() {
	splitCmd.Flags().StringVarP(&splitOrientation, "orientation", "o", "", "v (side by side) or h (stacked); inferred from the region's shape when empty")
	splitCmd.Flags().BoolVar(&splitInvert, "invert", false, "Flip the inferred orientation")
	splitCmd.Flags().StringVar(&splitContentTo, "content-to", "first", "Child that keeps the region's content: first or second")
	mergeCmd.Flags().StringVar(&mergeFocus, "focus", "", "Focused leaf; its content wins when both sides have content")
	nudgeCmd.Flags().BoolVar(&nudgeBack, "back", false, "Move toward the first side")
	resizeCmd.Flags().BoolVar(&resizeNoSnap, "no-snap", false, "Place the divider exactly, ignoring snap points")

	rootCmd.AddCommand(splitCmd, deleteCmd, mergeCmd, nudgeCmd, resizeCmd, undoCmd, redoCmd)
}

func runGesture(cmd *cobra.Command, fn func(ctx context.Context, a *app.App) (*service.Result, error)) error {
	return withApp(cmd, func(ctx context.Context, a *app.App) error {
		res, err := fn(ctx, a)
		if err != nil {
			return err
		}
		printResult(cmd.OutOrStdout(), res)
		return nil
	})
}

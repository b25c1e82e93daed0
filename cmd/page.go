package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"splitbook/internal/app"
	"splitbook/internal/layout"
	"splitbook/internal/service"
)

var newCmd = &cobra.Command{
	Use:   "new <name>",
	Short: "Create a document with one empty page",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			doc, page, err := a.Layout.CreateDocument(ctx, args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "document %s\n", doc.ID)
			fmt.Fprintf(out, "page %s\n", page.ID)
			fmt.Fprintln(out, layout.Describe(page.Root))
			return nil
		})
	},
}

var addPageCmd = &cobra.Command{
	Use:   "add-page <documentId> <name>",
	Short: "Append an empty page to a document",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			page, err := a.Layout.CreatePage(ctx, args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "page %s\n%s\n", page.ID, layout.Describe(page.Root))
			return nil
		})
	},
}

var listCmd = &cobra.Command{
	Use:   "list [documentId]",
	Short: "List documents, or the pages of one document",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			out := cmd.OutOrStdout()
			if len(args) == 0 {
				docs, err := a.Layout.ListDocuments()
				if err != nil {
					return err
				}
				for _, d := range docs {
					fmt.Fprintf(out, "%s\t%s\n", d.ID, d.Name)
				}
				return nil
			}
			pages, err := a.Layout.ListPages(args[0])
			if err != nil {
				return err
			}
			for _, p := range pages {
				fmt.Fprintf(out, "%s\t%s\t%s\n", p.ID, p.Name, layout.Describe(p.Root))
			}
			return nil
		})
	},
}

var showCmd = &cobra.Command{
	Use:   "show <pageId>",
	Short: "Print a page's layout tree and its dividers",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			page, err := a.Layout.GetPage(args[0])
			if err != nil {
				return err
			}
			dividers, err := a.Layout.Dividers(page.ID)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, layout.Describe(page.Root))
			for _, d := range dividers {
				mark := ""
				if d.Mergeable {
					mark = " mergeable"
				}
				fmt.Fprintf(out, "divider %s %s at %.1f%s\n", d.SplitID, d.Orientation, d.Position, mark)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(newCmd, addPageCmd, listCmd, showCmd)
}

// printResult writes the tree after a gesture and where focus went.
func printResult(w io.Writer, res *service.Result) {
	fmt.Fprintln(w, layout.Describe(res.Layout))
	if !res.Changed {
		fmt.Fprintln(w, "no change")
	}
	if res.FocusID != "" {
		fmt.Fprintf(w, "focus %s\n", res.FocusID)
	}
}

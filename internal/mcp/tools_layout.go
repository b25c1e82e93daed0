package mcpserver

import (
	"context"
	"fmt"

	"splitbook/internal/domain"
	"splitbook/internal/layout"
	"splitbook/internal/service"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerLayoutTools() {
	s.mcp.AddTool(mcp.NewTool("split_region",
		mcp.WithDescription("Split a leaf region in two. Without an orientation, wide regions split side by side and tall ones stack."),
		mcp.WithString("pageId", mcp.Description("Page ID (optional, defaults to active page)")),
		mcp.WithString("leafId", mcp.Description("Leaf region to split"), mcp.Required()),
		mcp.WithString("orientation",
			mcp.Description("vertical (side by side) or horizontal (stacked); inferred when omitted"),
			mcp.Enum("vertical", "horizontal"),
		),
		mcp.WithBoolean("invert", mcp.Description("Flip the inferred orientation")),
		mcp.WithString("contentTo",
			mcp.Description("Child that keeps the region's content"),
			mcp.Enum("first", "second"),
		),
		mcp.WithBoolean("focusContent", mcp.Description("Focus the child holding the content instead of the empty one")),
	), s.handleSplitRegion)

	s.mcp.AddTool(mcp.NewTool("delete_region",
		mcp.WithDescription("Delete a region; its sibling takes over the parent's space. Deleting the page root does nothing."),
		mcp.WithString("pageId", mcp.Description("Page ID (optional, defaults to active page)")),
		mcp.WithString("nodeId", mcp.Description("Region to delete"), mcp.Required()),
	), s.handleDeleteRegion)

	s.mcp.AddTool(mcp.NewTool("list_dividers",
		mcp.WithDescription("List every divider on a page with its position and whether it can be merged"),
		mcp.WithString("pageId", mcp.Description("Page ID (optional, defaults to active page)")),
	), s.handleListDividers)

	s.mcp.AddTool(mcp.NewTool("merge_divider",
		mcp.WithDescription("Remove a divider by merging the two regions that touch it. Only dividers with exactly one region on each side can be merged."),
		mcp.WithString("pageId", mcp.Description("Page ID (optional, defaults to active page)")),
		mcp.WithString("splitId", mcp.Description("Split node that owns the divider"), mcp.Required()),
		mcp.WithString("focusId", mcp.Description("Focused leaf; its content wins when both sides have content")),
	), s.handleMergeDivider)

	s.mcp.AddTool(mcp.NewTool("resize_divider",
		mcp.WithDescription("Move a divider so the first side takes percent of the split. A side left at or below the minimum area is removed."),
		mcp.WithString("pageId", mcp.Description("Page ID (optional, defaults to active page)")),
		mcp.WithString("splitId", mcp.Description("Split node that owns the divider"), mcp.Required()),
		mcp.WithNumber("percent", mcp.Description("Share of the first side, 0 to 100"), mcp.Required()),
		mcp.WithBoolean("snap", mcp.Description("Snap to the nearest alignment point (default true)")),
	), s.handleResizeDivider)

	s.mcp.AddTool(mcp.NewTool("nudge_divider",
		mcp.WithDescription("Move a divider to the next snap point, as the keyboard does"),
		mcp.WithString("pageId", mcp.Description("Page ID (optional, defaults to active page)")),
		mcp.WithString("splitId", mcp.Description("Split node that owns the divider"), mcp.Required()),
		mcp.WithBoolean("back", mcp.Description("Move toward the first side instead of the second")),
	), s.handleNudgeDivider)

	s.mcp.AddTool(mcp.NewTool("navigate",
		mcp.WithDescription("Find the leaf to focus when moving from a leaf in a direction"),
		mcp.WithString("pageId", mcp.Description("Page ID (optional, defaults to active page)")),
		mcp.WithString("leafId", mcp.Description("Focused leaf"), mcp.Required()),
		mcp.WithString("direction", mcp.Description("left, right, up or down"), mcp.Required()),
	), s.handleNavigate)
}

func parseContentTo(v string) (layout.ContentDestination, error) {
	switch v {
	case "", "first":
		return layout.ContentToFirst, nil
	case "second":
		return layout.ContentToSecond, nil
	}
	return 0, fmt.Errorf("contentTo must be first or second, got %q", v)
}

func parseDirection(args map[string]any) (layout.Direction, error) {
	raw, err := requireString(args, "direction")
	if err != nil {
		return "", err
	}
	dir, ok := layout.ParseDirection(raw)
	if !ok {
		return "", fmt.Errorf("unknown direction %q", raw)
	}
	return dir, nil
}

func (s *Server) handleSplitRegion(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	pageID, err := s.resolvePageID(args)
	if err != nil {
		return nil, err
	}
	leafID, err := requireString(args, "leafId")
	if err != nil {
		return nil, err
	}
	o, ok := domain.ParseOrientation(req.GetString("orientation", ""))
	if !ok {
		return nil, fmt.Errorf("orientation must be vertical or horizontal")
	}
	dest, err := parseContentTo(req.GetString("contentTo", ""))
	if err != nil {
		return nil, err
	}

	res, err := s.layout.Split(ctx, pageID, leafID, service.SplitRequest{
		Orientation:  o,
		Invert:       getBool(args, "invert", false),
		ContentTo:    dest,
		FocusContent: getBool(args, "focusContent", false),
	})
	if err != nil {
		return nil, fmt.Errorf("split region: %w", err)
	}
	return gestureResult(res)
}

func (s *Server) handleDeleteRegion(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	pageID, err := s.resolvePageID(args)
	if err != nil {
		return nil, err
	}
	nodeID, err := requireString(args, "nodeId")
	if err != nil {
		return nil, err
	}
	res, err := s.layout.Delete(ctx, pageID, nodeID)
	if err != nil {
		return nil, fmt.Errorf("delete region: %w", err)
	}
	return gestureResult(res)
}

func (s *Server) handleListDividers(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pageID, err := s.resolvePageID(req.GetArguments())
	if err != nil {
		return nil, err
	}
	dividers, err := s.layout.Dividers(pageID)
	if err != nil {
		return nil, fmt.Errorf("list dividers: %w", err)
	}
	if len(dividers) == 0 {
		return textResult(fmt.Sprintf("Page %s has no dividers", pageID)), nil
	}
	return jsonResult(dividers)
}

func (s *Server) handleMergeDivider(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	pageID, err := s.resolvePageID(args)
	if err != nil {
		return nil, err
	}
	splitID, err := requireString(args, "splitId")
	if err != nil {
		return nil, err
	}
	res, err := s.layout.Merge(ctx, pageID, splitID, req.GetString("focusId", ""))
	if err != nil {
		return nil, fmt.Errorf("merge divider: %w", err)
	}
	return gestureResult(res)
}

func (s *Server) handleResizeDivider(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	pageID, err := s.resolvePageID(args)
	if err != nil {
		return nil, err
	}
	splitID, err := requireString(args, "splitId")
	if err != nil {
		return nil, err
	}
	percent := getFloat(args, "percent", -1)
	if percent < 0 || percent > 100 {
		return nil, fmt.Errorf("percent must be between 0 and 100")
	}
	res, err := s.layout.ResizeTo(ctx, pageID, splitID, percent, getBool(args, "snap", true))
	if err != nil {
		return nil, fmt.Errorf("resize divider: %w", err)
	}
	return gestureResult(res)
}

func (s *Server) handleNudgeDivider(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	pageID, err := s.resolvePageID(args)
	if err != nil {
		return nil, err
	}
	splitID, err := requireString(args, "splitId")
	if err != nil {
		return nil, err
	}
	res, err := s.layout.Nudge(ctx, pageID, splitID, !getBool(args, "back", false))
	if err != nil {
		return nil, fmt.Errorf("nudge divider: %w", err)
	}
	return gestureResult(res)
}

func (s *Server) handleNavigate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	pageID, err := s.resolvePageID(args)
	if err != nil {
		return nil, err
	}
	leafID, err := requireString(args, "leafId")
	if err != nil {
		return nil, err
	}
	dir, err := parseDirection(args)
	if err != nil {
		return nil, err
	}
	target, err := s.layout.Navigate(pageID, leafID, dir)
	if err != nil {
		return nil, fmt.Errorf("navigate: %w", err)
	}
	if target == "" {
		return textResult(fmt.Sprintf("No region %s of %s", dir, leafID)), nil
	}
	return jsonResult(map[string]string{"pageId": pageID, "focusId": target})
}

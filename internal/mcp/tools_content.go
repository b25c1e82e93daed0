package mcpserver

import (
	"context"
	"fmt"

	"splitbook/internal/domain"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerContentTools() {
	s.mcp.AddTool(mcp.NewTool("set_region_text",
		mcp.WithDescription("Place text in a leaf region, replacing what it showed"),
		mcp.WithString("pageId", mcp.Description("Page ID (optional, defaults to active page)")),
		mcp.WithString("leafId", mcp.Description("Leaf region"), mcp.Required()),
		mcp.WithString("text", mcp.Description("Text body"), mcp.Required()),
		mcp.WithString("align",
			mcp.Description("Horizontal alignment"),
			mcp.Enum("left", "center", "right", "justify"),
		),
	), s.handleSetRegionText)

	s.mcp.AddTool(mcp.NewTool("set_region_image",
		mcp.WithDescription("Place an image in a leaf region, replacing what it showed"),
		mcp.WithString("pageId", mcp.Description("Page ID (optional, defaults to active page)")),
		mcp.WithString("leafId", mcp.Description("Leaf region"), mcp.Required()),
		mcp.WithString("assetRef", mcp.Description("Reference to the image asset"), mcp.Required()),
		mcp.WithString("fit",
			mcp.Description("How the image fills the region (default cover)"),
			mcp.Enum("cover", "contain"),
		),
		mcp.WithBoolean("flip", mcp.Description("Mirror the image horizontally")),
	), s.handleSetRegionImage)

	s.mcp.AddTool(mcp.NewTool("clear_region",
		mcp.WithDescription("Remove the content of a leaf region"),
		mcp.WithString("pageId", mcp.Description("Page ID (optional, defaults to active page)")),
		mcp.WithString("leafId", mcp.Description("Leaf region"), mcp.Required()),
	), s.handleClearRegion)

	s.mcp.AddTool(mcp.NewTool("swap_regions",
		mcp.WithDescription("Exchange a leaf's content with its neighbour in a direction"),
		mcp.WithString("pageId", mcp.Description("Page ID (optional, defaults to active page)")),
		mcp.WithString("leafId", mcp.Description("Leaf region"), mcp.Required()),
		mcp.WithString("direction", mcp.Description("left, right, up or down"), mcp.Required()),
	), s.handleSwapRegions)
}

func (s *Server) setContent(ctx context.Context, args map[string]any, c *domain.Content) (*mcp.CallToolResult, error) {
	pageID, err := s.resolvePageID(args)
	if err != nil {
		return nil, err
	}
	leafID, err := requireString(args, "leafId")
	if err != nil {
		return nil, err
	}
	res, err := s.layout.SetContent(ctx, pageID, leafID, c)
	if err != nil {
		return nil, fmt.Errorf("set content: %w", err)
	}
	return gestureResult(res)
}

func (s *Server) handleSetRegionText(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	text, ok := args["text"].(string)
	if !ok {
		return nil, fmt.Errorf("text is required")
	}
	align := domain.TextAlign(req.GetString("align", string(domain.AlignLeft)))
	switch align {
	case domain.AlignLeft, domain.AlignCenter, domain.AlignRight, domain.AlignJustify:
	default:
		return nil, fmt.Errorf("unknown align %q", align)
	}
	return s.setContent(ctx, args, domain.NewText(text, align))
}

func (s *Server) handleSetRegionImage(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	ref, err := requireString(args, "assetRef")
	if err != nil {
		return nil, err
	}
	fit := domain.ImageFit(req.GetString("fit", string(domain.FitCover)))
	if fit != domain.FitCover && fit != domain.FitContain {
		return nil, fmt.Errorf("unknown fit %q", fit)
	}
	return s.setContent(ctx, args, domain.NewImage(ref, fit, getBool(args, "flip", false)))
}

func (s *Server) handleClearRegion(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.setContent(ctx, req.GetArguments(), nil)
}

func (s *Server) handleSwapRegions(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
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
	res, err := s.layout.Swap(ctx, pageID, leafID, dir)
	if err != nil {
		return nil, fmt.Errorf("swap regions: %w", err)
	}
	return gestureResult(res)
}

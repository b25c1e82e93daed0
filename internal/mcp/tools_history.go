package mcpserver

import (
	"context"
	"errors"
	"fmt"

	"splitbook/internal/service"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerHistoryTools() {
	s.mcp.AddTool(mcp.NewTool("undo",
		mcp.WithDescription("Undo the last layout change on a page"),
		mcp.WithString("pageId", mcp.Description("Page ID (optional, defaults to active page)")),
	), s.handleUndo)

	s.mcp.AddTool(mcp.NewTool("redo",
		mcp.WithDescription("Redo the most recently undone layout change on a page"),
		mcp.WithString("pageId", mcp.Description("Page ID (optional, defaults to active page)")),
	), s.handleRedo)
}

func (s *Server) handleUndo(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.travel(ctx, req, s.layout.Undo)
}

func (s *Server) handleRedo(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.travel(ctx, req, s.layout.Redo)
}

func (s *Server) travel(ctx context.Context, req mcp.CallToolRequest, step func(context.Context, string) (*service.Result, error)) (*mcp.CallToolResult, error) {
	pageID, err := s.resolvePageID(req.GetArguments())
	if err != nil {
		return nil, err
	}
	res, err := step(ctx, pageID)
	switch {
	case errors.Is(err, service.ErrNothingToUndo):
		return textResult("Nothing to undo"), nil
	case errors.Is(err, service.ErrNothingToRedo):
		return textResult("Nothing to redo"), nil
	case err != nil:
		return nil, fmt.Errorf("history: %w", err)
	}
	return gestureResult(res)
}

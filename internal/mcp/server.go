package mcpserver

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"splitbook/internal/logger"
	"splitbook/internal/service"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Server is the MCP server for splitbook.
// It exposes every layout gesture as a tool so agents can build pages.
type Server struct {
	mcp    *server.MCPServer
	layout *service.LayoutService
	log    *slog.Logger

	// Active page context (set by set_active_page, create_document, create_page)
	mu           sync.Mutex
	activePageID string
}

// Deps holds what the command layer passes to the MCP server.
type Deps struct {
	Layout  *service.LayoutService
	Version string
}

// New creates and configures a new MCP server with all tools and resources.
func New(deps Deps) *Server {
	version := deps.Version
	if version == "" {
		version = "dev"
	}
	s := &Server{
		layout: deps.Layout,
		log:    logger.ComponentLogger("mcp"),
	}

	s.mcp = server.NewMCPServer(
		"splitbook-mcp",
		version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
		server.WithPromptCapabilities(true),
	)

	s.registerDocumentTools()
	s.registerLayoutTools()
	s.registerContentTools()
	s.registerHistoryTools()
	s.registerResources()
	s.registerPrompts()

	return s
}

// ServeStdio starts the MCP server on stdin/stdout. Nothing else may write
// to stdout while it runs.
func (s *Server) ServeStdio() error {
	s.log.Info("starting stdio server")
	return server.ServeStdio(s.mcp)
}

// ── Helpers ────────────────────────────────────────────────

// textResult creates a simple text tool result.
func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: text},
		},
	}
}

// jsonResult serializes v to JSON and wraps it in a text tool result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}
	return textResult(string(data)), nil
}

// gestureResult reports a gesture. Gestures that changed nothing get a plain
// sentence instead of the tree.
func gestureResult(res *service.Result) (*mcp.CallToolResult, error) {
	if !res.Changed {
		msg := fmt.Sprintf("Nothing changed on page %s", res.PageID)
		if res.FocusID != "" {
			msg += fmt.Sprintf("; focus stays on %s", res.FocusID)
		}
		return textResult(msg), nil
	}
	return jsonResult(map[string]any{
		"pageId":  res.PageID,
		"focusId": res.FocusID,
		"layout":  res.Layout,
	})
}

func (s *Server) setActivePage(pageID string) {
	s.mu.Lock()
	s.activePageID = pageID
	s.mu.Unlock()
}

// resolvePageID returns the pageId from tool args or falls back to the active page.
func (s *Server) resolvePageID(args map[string]any) (string, error) {
	if pid, ok := args["pageId"].(string); ok && pid != "" {
		return pid, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.activePageID != "" {
		return s.activePageID, nil
	}
	return "", fmt.Errorf("no pageId provided and no active page set (use set_active_page first)")
}

func requireString(args map[string]any, key string) (string, error) {
	v, ok := args[key].(string)
	if !ok || v == "" {
		return "", fmt.Errorf("%s is required", key)
	}
	return v, nil
}

func getFloat(args map[string]any, key string, fallback float64) float64 {
	if v, ok := args[key].(float64); ok {
		return v
	}
	return fallback
}

func getBool(args map[string]any, key string, fallback bool) bool {
	if v, ok := args[key].(bool); ok {
		return v
	}
	return fallback
}

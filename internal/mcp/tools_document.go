package mcpserver

import (
	"context"
	"fmt"

	"splitbook/internal/layout"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerDocumentTools() {
	// ── list_documents ─────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("list_documents",
		mcp.WithDescription("List all documents"),
	), s.handleListDocuments)

	// ── create_document ────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("create_document",
		mcp.WithDescription("Create a document with one empty page. The new page becomes the active page."),
		mcp.WithString("name",
			mcp.Description("Name of the document"),
			mcp.Required(),
		),
	), s.handleCreateDocument)

	// ── create_page ────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("create_page",
		mcp.WithDescription("Append an empty page to a document. The new page becomes the active page."),
		mcp.WithString("documentId",
			mcp.Description("ID of the document"),
			mcp.Required(),
		),
		mcp.WithString("name",
			mcp.Description("Name of the new page"),
			mcp.Required(),
		),
	), s.handleCreatePage)

	// ── list_pages ─────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("list_pages",
		mcp.WithDescription("List the pages of a document in order"),
		mcp.WithString("documentId",
			mcp.Description("ID of the document"),
			mcp.Required(),
		),
	), s.handleListPages)

	// ── set_active_page ────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("set_active_page",
		mcp.WithDescription("Set the active page for subsequent tool calls. Tools that accept pageId will default to this."),
		mcp.WithString("pageId",
			mcp.Description("ID of the page to make active"),
			mcp.Required(),
		),
	), s.handleSetActivePage)

	// ── get_page_layout ────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("get_page_layout",
		mcp.WithDescription("Return a page's layout tree, its compact text form and the region rectangles"),
		mcp.WithString("pageId", mcp.Description("Page ID (optional, defaults to active page)")),
	), s.handleGetPageLayout)
}

func (s *Server) handleListDocuments(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	docs, err := s.layout.ListDocuments()
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return jsonResult(docs)
}

func (s *Server) handleCreateDocument(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := requireString(req.GetArguments(), "name")
	if err != nil {
		return nil, err
	}
	doc, page, err := s.layout.CreateDocument(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("create document: %w", err)
	}
	s.setActivePage(page.ID)
	return jsonResult(map[string]any{"document": doc, "page": page})
}

func (s *Server) handleCreatePage(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	documentID := req.GetString("documentId", "")
	name := req.GetString("name", "")
	if documentID == "" || name == "" {
		return nil, fmt.Errorf("documentId and name are required")
	}
	page, err := s.layout.CreatePage(ctx, documentID, name)
	if err != nil {
		return nil, fmt.Errorf("create page: %w", err)
	}
	s.setActivePage(page.ID)
	return jsonResult(page)
}

func (s *Server) handleListPages(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	documentID, err := requireString(req.GetArguments(), "documentId")
	if err != nil {
		return nil, err
	}
	pages, err := s.layout.ListPages(documentID)
	if err != nil {
		return nil, fmt.Errorf("list pages: %w", err)
	}
	return jsonResult(pages)
}

func (s *Server) handleSetActivePage(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pageID, err := requireString(req.GetArguments(), "pageId")
	if err != nil {
		return nil, err
	}
	if _, err := s.layout.GetPage(pageID); err != nil {
		return nil, err
	}
	s.setActivePage(pageID)
	return textResult(fmt.Sprintf("Active page set to %s", pageID)), nil
}

// pageLayout is the read-only view of one page.
type pageLayout struct {
	PageID  string                 `json:"pageId"`
	Width   float64                `json:"width"`
	Height  float64                `json:"height"`
	Tree    string                 `json:"tree"`
	Layout  any                    `json:"layout"`
	Regions map[string]layout.Rect `json:"regions"`
}

func (s *Server) pageLayout(pageID string) (*pageLayout, error) {
	p, err := s.layout.GetPage(pageID)
	if err != nil {
		return nil, err
	}
	regions := make(map[string]layout.Rect)
	for id, r := range layout.Compute(p.Root, layout.Rect{W: p.Width, H: p.Height}) {
		if n := layout.FindNodeByID(p.Root, id); n.IsLeaf() {
			regions[id] = r
		}
	}
	return &pageLayout{
		PageID:  p.ID,
		Width:   p.Width,
		Height:  p.Height,
		Tree:    layout.Describe(p.Root),
		Layout:  p.Root,
		Regions: regions,
	}, nil
}

func (s *Server) handleGetPageLayout(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pageID, err := s.resolvePageID(req.GetArguments())
	if err != nil {
		return nil, err
	}
	view, err := s.pageLayout(pageID)
	if err != nil {
		return nil, fmt.Errorf("get page layout: %w", err)
	}
	return jsonResult(view)
}

package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

const (
	pageURIPrefix = "splitbook://page/"
	pageURISuffix = "/layout"
)

func (s *Server) registerResources() {
	// ── splitbook://documents ──────────────────────────
	s.mcp.AddResource(mcp.NewResource(
		"splitbook://documents",
		"All Documents",
		mcp.WithMIMEType("application/json"),
	), s.handleDocumentsResource)

	// ── splitbook://page/{pageId}/layout ───────────────
	s.mcp.AddResourceTemplate(
		mcp.NewResourceTemplate(
			pageURIPrefix+"{pageId}"+pageURISuffix,
			"Layout of a Page",
			mcp.WithTemplateMIMEType("application/json"),
		),
		s.handlePageLayoutResource,
	)
}

func (s *Server) handleDocumentsResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	docs, err := s.layout.ListDocuments()
	if err != nil {
		return nil, err
	}

	type documentSummary struct {
		ID    string   `json:"id"`
		Name  string   `json:"name"`
		Pages []string `json:"pages"`
	}

	summaries := make([]documentSummary, 0, len(docs))
	for _, d := range docs {
		pages, err := s.layout.ListPages(d.ID)
		if err != nil {
			return nil, err
		}
		sum := documentSummary{ID: d.ID, Name: d.Name}
		for _, p := range pages {
			sum.Pages = append(sum.Pages, p.ID)
		}
		summaries = append(summaries, sum)
	}

	data, _ := json.MarshalIndent(summaries, "", "  ")
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "splitbook://documents",
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

func (s *Server) handlePageLayoutResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uri := req.Params.URI
	pageID := pageIDFromURI(uri)
	if pageID == "" {
		return nil, fmt.Errorf("could not extract pageId from URI: %s", uri)
	}

	view, err := s.pageLayout(pageID)
	if err != nil {
		return nil, err
	}
	data, _ := json.MarshalIndent(view, "", "  ")
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

// pageIDFromURI extracts the page ID from "splitbook://page/{id}/layout".
func pageIDFromURI(uri string) string {
	rest, ok := strings.CutPrefix(uri, pageURIPrefix)
	if !ok {
		return ""
	}
	id, ok := strings.CutSuffix(rest, pageURISuffix)
	if !ok || strings.Contains(id, "/") {
		return ""
	}
	return id
}

package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerPrompts() {
	s.mcp.AddPrompt(mcp.NewPrompt("design_page",
		mcp.WithPromptDescription("Guide through laying out a page into regions for a given theme"),
		mcp.WithArgument("theme",
			mcp.ArgumentDescription("What the page is about"),
			mcp.RequiredArgument(),
		),
		mcp.WithArgument("regions",
			mcp.ArgumentDescription("Roughly how many regions the page should have"),
		),
	), s.handleDesignPagePrompt)

	s.mcp.AddPrompt(mcp.NewPrompt("tidy_page",
		mcp.WithPromptDescription("Clean up an existing page: merge slivers and align dividers"),
		mcp.WithArgument("pageId",
			mcp.ArgumentDescription("Page to tidy"),
			mcp.RequiredArgument(),
		),
	), s.handleTidyPagePrompt)
}

func (s *Server) handleDesignPagePrompt(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	theme := req.Params.Arguments["theme"]
	regions := req.Params.Arguments["regions"]
	if regions == "" {
		regions = "4"
	}
	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Lay out a page about: %s", theme),
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.TextContent{
					Type: "text",
					Text: fmt.Sprintf(`Lay out the active page as a zine spread about "%s" with about %s regions. Follow these steps:

1. Use get_page_layout to see the page's current tree and its size
2. Use split_region on the root leaf; leave orientation out so tall regions stack and wide ones sit side by side
3. Keep splitting leaves until there are about %s regions, then use resize_divider so the title region is smaller than the rest
4. Use list_dividers and nudge_divider to line dividers up with each other
5. Fill regions with set_region_text (a headline, short captions) and set_region_image for pictures

Every split or resize returns the new tree and the focusId to work on next.`, theme, regions, regions),
				},
			},
		},
	}, nil
}

func (s *Server) handleTidyPagePrompt(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	pageID := req.Params.Arguments["pageId"]
	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Tidy page %s", pageID),
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.TextContent{
					Type: "text",
					Text: fmt.Sprintf(`Tidy page %s. Follow these steps:

1. Use get_page_layout and list_dividers to inspect the page
2. For each empty region narrower than a tenth of the page, merge its divider with merge_divider if the divider is mergeable, otherwise delete_region it
3. Use nudge_divider on dividers that sit close to, but not on, another divider's position
4. Use undo if a step made the page worse

Report the final tree from get_page_layout.`, pageID),
				},
			},
		},
	}, nil
}

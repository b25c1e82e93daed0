package service

import (
	"context"
	"fmt"

	"splitbook/internal/domain"
	"splitbook/internal/layout"
)

// SplitRequest describes one split gesture. An empty Orientation is
// inferred from the leaf's on-screen shape, flipped when Invert is set.
type SplitRequest struct {
	Orientation  domain.Orientation
	Invert       bool
	ContentTo    layout.ContentDestination
	FocusContent bool
}

// Split turns a leaf into two. Focus goes to the child without content, or
// to the one holding it when FocusContent is set.
func (s *LayoutService) Split(ctx context.Context, pageID, leafID string, req SplitRequest) (*Result, error) {
	return s.gesture(ctx, pageID, "split", func(g *gestureCtx) (string, bool, error) {
		leaf, err := g.leaf(leafID)
		if err != nil {
			return "", false, err
		}
		a, b := layout.Split(leaf, g.ids, layout.SplitOptions{
			Orientation: req.Orientation,
			Bounds:      layout.Compute(g.page.Root, g.bounds())[leaf.ID],
			Invert:      req.Invert,
			ContentTo:   req.ContentTo,
		})
		return layout.SplitFocus(a, b, req.ContentTo, req.FocusContent).ID, true, nil
	})
}

// Delete removes a region; its sibling takes over the parent. Deleting the
// root is a no-op reported with Changed false.
func (s *LayoutService) Delete(ctx context.Context, pageID, nodeID string) (*Result, error) {
	return s.gesture(ctx, pageID, "delete", func(g *gestureCtx) (string, bool, error) {
		if _, err := g.node(nodeID); err != nil {
			return "", false, err
		}
		parent := layout.Delete(g.page.Root, nodeID)
		if parent == nil {
			return nodeID, false, nil
		}
		return parent.ID, true, nil
	})
}

// Merge collapses the divider of splitID. Focus goes to the merged region.
func (s *LayoutService) Merge(ctx context.Context, pageID, splitID, focusedID string) (*Result, error) {
	return s.gesture(ctx, pageID, "merge", func(g *gestureCtx) (string, bool, error) {
		p, err := g.split(splitID)
		if err != nil {
			return "", false, err
		}
		if !layout.IsDividerMergeable(p) {
			return "", false, fmt.Errorf("%w: %s", ErrNotMergeable, splitID)
		}
		leafA := layout.TouchingLeaf(p.Children[0], p.Orientation, layout.Trailing)
		leafB := layout.TouchingLeaf(p.Children[1], p.Orientation, layout.Leading)
		layout.Merge(p, focusedID)

		focus := p.ID
		if p.IsSplit() {
			for _, id := range []string{leafA.ID, leafB.ID} {
				if layout.FindNodeByID(p, id) != nil {
					focus = id
					break
				}
			}
		}
		return focus, true, nil
	})
}

// ResizeTo moves splitID's divider to percent in one step. Sides at or
// below the minimum area collapse.
func (s *LayoutService) ResizeTo(ctx context.Context, pageID, splitID string, percent float64, snap bool) (*Result, error) {
	return s.gesture(ctx, pageID, "resize", func(g *gestureCtx) (string, bool, error) {
		split, err := g.split(splitID)
		if err != nil {
			return "", false, err
		}
		extent := layout.Compute(g.page.Root, g.bounds())[split.ID].Extent(split.Orientation)
		focus := layout.ResizeTo(g.page.Root, splitID, percent, snap, extent, g.others, g.cfg)
		if focus == nil {
			return splitID, false, nil
		}
		return focus.ID, true, nil
	})
}

// Nudge moves splitID's divider to the next snap point forward or back.
func (s *LayoutService) Nudge(ctx context.Context, pageID, splitID string, forward bool) (*Result, error) {
	return s.gesture(ctx, pageID, "nudge", func(g *gestureCtx) (string, bool, error) {
		if _, err := g.split(splitID); err != nil {
			return "", false, err
		}
		focus := layout.Nudge(g.page.Root, splitID, forward, g.others, g.cfg)
		if focus == nil {
			return splitID, false, nil
		}
		return focus.ID, true, nil
	})
}

// SetContent replaces what a leaf shows. A nil content empties it.
func (s *LayoutService) SetContent(ctx context.Context, pageID, leafID string, c *domain.Content) (*Result, error) {
	return s.gesture(ctx, pageID, "set content", func(g *gestureCtx) (string, bool, error) {
		leaf, err := g.leaf(leafID)
		if err != nil {
			return "", false, err
		}
		leaf.Content = c.Clone()
		return leafID, true, nil
	})
}

// Swap exchanges a leaf's content with its neighbour in dir. Focus follows
// the content.
func (s *LayoutService) Swap(ctx context.Context, pageID, leafID string, dir layout.Direction) (*Result, error) {
	return s.gesture(ctx, pageID, "swap", func(g *gestureCtx) (string, bool, error) {
		leaf, err := g.leaf(leafID)
		if err != nil {
			return "", false, err
		}
		other := layout.Nearest(g.page.Root, g.bounds(), leafID, dir)
		if other == nil {
			return leafID, false, nil
		}
		leaf.Content, other.Content = other.Content, leaf.Content
		return other.ID, true, nil
	})
}

// ── Read-only queries ──────────────────────────────────────

// Navigate returns the leaf to focus when moving from focusedID in dir, or
// an empty id when there is none.
func (s *LayoutService) Navigate(pageID, focusedID string, dir layout.Direction) (string, error) {
	p, err := s.getPage(pageID)
	if err != nil {
		return "", err
	}
	if n := layout.FindNodeByID(p.Root, focusedID); n == nil {
		return "", fmt.Errorf("%w: %s", ErrNodeNotFound, focusedID)
	} else if !n.IsLeaf() {
		return "", fmt.Errorf("%w: %s", ErrNotLeaf, focusedID)
	}
	target := layout.Nearest(p.Root, layout.Rect{W: p.Width, H: p.Height}, focusedID, dir)
	if target == nil {
		return "", nil
	}
	return target.ID, nil
}

// Dividers lists a page's dividers in page units.
func (s *LayoutService) Dividers(pageID string) ([]layout.Divider, error) {
	p, err := s.getPage(pageID)
	if err != nil {
		return nil, err
	}
	return layout.Dividers(p.Root, layout.Rect{W: p.Width, H: p.Height}), nil
}

package layout

import "splitbook/internal/domain"

// Divider is the boundary between a split node's two children.
type Divider struct {
	SplitID     string             `json:"splitId"`
	Orientation domain.Orientation `json:"orientation"`
	// Position is the divider's coordinate along the split axis, in the
	// same units as the bounds passed to Dividers.
	Position  float64 `json:"position"`
	Span      Rect    `json:"span"`
	Mergeable bool    `json:"mergeable"`
}

// Dividers lists every divider in the tree in pre-order.
func Dividers(root *domain.Node, bounds Rect) []Divider {
	rects := Compute(root, bounds)
	var out []Divider
	Walk(root, func(n, _ *domain.Node) bool {
		if !n.IsSplit() || len(n.Children) != 2 {
			return true
		}
		first := rects[n.Children[0].ID]
		out = append(out, Divider{
			SplitID:     n.ID,
			Orientation: n.Orientation,
			Position:    first.Start(n.Orientation) + first.Extent(n.Orientation),
			Span:        rects[n.ID],
			Mergeable:   IsDividerMergeable(n),
		})
		return true
	})
	return out
}

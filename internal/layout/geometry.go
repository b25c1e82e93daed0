package layout

import "splitbook/internal/domain"

// Rect is an axis-aligned rectangle in layout units.
type Rect struct {
	X, Y, W, H float64
}

// UnitRect is the page normalized to a 1x1 square.
var UnitRect = Rect{W: 1, H: 1}

func (r Rect) Center() (float64, float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Start is the rect's leading coordinate along o's axis: X for Vertical
// splits (children side by side), Y for Horizontal ones.
func (r Rect) Start(o domain.Orientation) float64 {
	if o == domain.Vertical {
		return r.X
	}
	return r.Y
}

// Extent is the rect's length along o's axis.
func (r Rect) Extent(o domain.Orientation) float64 {
	if o == domain.Vertical {
		return r.W
	}
	return r.H
}

// splitRect divides r between the two children of a split node.
func splitRect(r Rect, o domain.Orientation, firstPercent float64) (Rect, Rect) {
	if o == domain.Vertical {
		w := r.W * firstPercent / 100
		return Rect{r.X, r.Y, w, r.H}, Rect{r.X + w, r.Y, r.W - w, r.H}
	}
	h := r.H * firstPercent / 100
	return Rect{r.X, r.Y, r.W, h}, Rect{r.X, r.Y + h, r.W, r.H - h}
}

// Compute lays the tree out inside bounds and returns every node's rect.
func Compute(root *domain.Node, bounds Rect) map[string]Rect {
	out := make(map[string]Rect)
	compute(root, bounds, out)
	return out
}

func compute(n *domain.Node, r Rect, out map[string]Rect) {
	if n == nil {
		return
	}
	out[n.ID] = r
	if !n.IsSplit() || len(n.Children) != 2 {
		return
	}
	a, b := n.Children[0], n.Children[1]
	total := a.Size.Float() + b.Size.Float()
	first := domain.DefaultPercent.Float()
	if total > 0 {
		first = a.Size.Float() / total * 100
	}
	ra, rb := splitRect(r, n.Orientation, first)
	compute(a, ra, out)
	compute(b, rb, out)
}

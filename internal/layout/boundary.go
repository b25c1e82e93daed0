package layout

import "splitbook/internal/domain"

// Edge names one side of a subtree along a divider's axis.
type Edge int

const (
	Leading Edge = iota
	Trailing
)

func (e Edge) childIndex() int {
	if e == Trailing {
		return 1
	}
	return 0
}

// CountNodesAlongBoundary counts the leaves of n that touch its edge along
// axis o. A parallel split only exposes the child on that edge; an
// orthogonal split exposes both children.
func CountNodesAlongBoundary(n *domain.Node, o domain.Orientation, edge Edge) int {
	if n == nil {
		return 0
	}
	if !n.IsSplit() {
		return 1
	}
	if n.Orientation == o {
		return CountNodesAlongBoundary(n.Children[edge.childIndex()], o, edge)
	}
	return CountNodesAlongBoundary(n.Children[0], o, edge) +
		CountNodesAlongBoundary(n.Children[1], o, edge)
}

// TouchingLeaf returns the single leaf of n on edge. It is only meaningful
// when CountNodesAlongBoundary is 1; otherwise it returns nil.
func TouchingLeaf(n *domain.Node, o domain.Orientation, edge Edge) *domain.Node {
	if n == nil {
		return nil
	}
	if !n.IsSplit() {
		return n
	}
	if n.Orientation == o {
		return TouchingLeaf(n.Children[edge.childIndex()], o, edge)
	}
	return nil
}

// IsDividerMergeable reports whether exactly one leaf touches p's divider
// from each side.
func IsDividerMergeable(p *domain.Node) bool {
	if !p.IsSplit() || len(p.Children) != 2 {
		return false
	}
	o := p.Orientation
	return CountNodesAlongBoundary(p.Children[0], o, Trailing) == 1 &&
		CountNodesAlongBoundary(p.Children[1], o, Leading) == 1
}

// parallelLeafCount counts leaves lined up along o. An orthogonal subtree
// counts as one slot, unlike CountNodesAlongBoundary.
func parallelLeafCount(n *domain.Node, o domain.Orientation) int {
	if n == nil {
		return 0
	}
	if !n.IsSplit() || n.Orientation != o {
		return 1
	}
	return parallelLeafCount(n.Children[0], o) + parallelLeafCount(n.Children[1], o)
}

package layout

import "splitbook/internal/domain"

// Merge collapses the divider of p so the two leaves touching it become one
// region, keeping every other divider exactly where it was on screen.
//
// The merged region takes the content of the focused touching leaf if it has
// any, else of whichever touching leaf has content (the leading one first),
// else none. The merged leaf keeps the winner's ID, or the leading touching
// leaf's when neither has content. p keeps its identity and is returned. Merge returns nil and
// leaves the tree untouched when p's divider is not mergeable.
func Merge(p *domain.Node, focusedID string) *domain.Node {
	if !IsDividerMergeable(p) {
		return nil
	}
	o := p.Orientation
	a, b := p.Children[0], p.Children[1]
	leafA := TouchingLeaf(a, o, Trailing)
	leafB := TouchingLeaf(b, o, Leading)

	winner := mergeWinner(leafA, leafB, focusedID)
	merged := winner.Content.Clone()
	leafA.Content = merged.Clone()
	leafB.Content = merged.Clone()

	m := merger{o: o, winner: winner}
	r := m.pair(a, b, a.Size.Float(), b.Size.Float())
	if r.IsLeaf() {
		p.MakeLeaf(merged)
	} else {
		p.MakeSplit(o, r.Children[0], r.Children[1])
	}
	Normalize(p)
	return p
}

func mergeWinner(leafA, leafB *domain.Node, focusedID string) *domain.Node {
	switch {
	case leafA.ID == focusedID && leafA.HasContent():
		return leafA
	case leafB.ID == focusedID && leafB.HasContent():
		return leafB
	case leafA.HasContent():
		return leafA
	case leafB.HasContent():
		return leafB
	}
	return leafA
}

// merger contracts two adjacent subtrees along one axis. All arithmetic is
// done on absolute shares of the outermost divider's parent so no divider
// outside the merged pair moves.
type merger struct {
	o      domain.Orientation
	winner *domain.Node
}

// pair merges a (trailing edge) with b (leading edge), whose absolute shares
// are absA and absB, and returns the node replacing both. Child sizes of the
// returned node are relative to absA+absB; the caller sets its own size.
func (m merger) pair(a, b *domain.Node, absA, absB float64) *domain.Node {
	total := absA + absB
	aParallel := a.IsSplit() && a.Orientation == m.o
	bParallel := b.IsSplit() && b.Orientation == m.o

	switch {
	case !aParallel && !bParallel:
		return m.winner

	case aParallel && !bParallel:
		a1, a2 := a.Children[0], a.Children[1]
		a1Abs, a2Abs := shares(a, absA)
		core := m.pair(a2, b, a2Abs, absB)
		setShares(a1, a1Abs, core, a2Abs+absB, total)
		a.MakeSplit(m.o, a1, core)
		return a

	case !aParallel && bParallel:
		b1, b2 := b.Children[0], b.Children[1]
		b1Abs, b2Abs := shares(b, absB)
		core := m.pair(a, b1, absA, b1Abs)
		setShares(core, absA+b1Abs, b2, b2Abs, total)
		b.MakeSplit(m.o, core, b2)
		return b

	default:
		// Both touching children are interior: keep a1 outermost and nest
		// the merged core with b2 so a1 and b2 keep their absolute shares.
		a1, a2 := a.Children[0], a.Children[1]
		b1, b2 := b.Children[0], b.Children[1]
		a1Abs, a2Abs := shares(a, absA)
		b1Abs, b2Abs := shares(b, absB)
		core := m.pair(a2, b1, a2Abs, b1Abs)
		coreAbs := a2Abs + b1Abs
		innerAbs := coreAbs + b2Abs
		setShares(core, coreAbs, b2, b2Abs, innerAbs)
		b.MakeSplit(m.o, core, b2)
		setShares(a1, a1Abs, b, innerAbs, total)
		a.MakeSplit(m.o, a1, b)
		return a
	}
}

// shares splits abs between n's two children by their relative sizes.
func shares(n *domain.Node, abs float64) (float64, float64) {
	s1, s2 := n.Children[0].Size.Float(), n.Children[1].Size.Float()
	if s1+s2 <= 0 {
		return abs / 2, abs / 2
	}
	first := abs * s1 / (s1 + s2)
	return first, abs - first
}

// setShares converts two absolute shares into sibling percentages.
func setShares(x *domain.Node, xAbs float64, y *domain.Node, yAbs, total float64) {
	if total <= 0 {
		x.Size, y.Size = domain.DefaultPercent, domain.DefaultPercent
		return
	}
	x.Size = domain.Percent(xAbs / total * 100)
	y.Size = 100 - x.Size
}

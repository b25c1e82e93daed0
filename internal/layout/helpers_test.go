package layout

import (
	"math"
	"math/rand"
	"strconv"
	"testing"

	"splitbook/internal/domain"
)

const eps = 1e-9

func leaf(id string, size float64) *domain.Node {
	return &domain.Node{ID: id, State: domain.StateUnsplit, Size: domain.Percent(size)}
}

func textLeaf(id string, size float64, body string) *domain.Node {
	n := leaf(id, size)
	n.Content = domain.NewText(body, domain.AlignLeft)
	return n
}

func vsplit(id string, size float64, a, b *domain.Node) *domain.Node {
	return &domain.Node{ID: id, State: domain.StateSplit, Orientation: domain.Vertical, Size: domain.Percent(size), Children: []*domain.Node{a, b}}
}

func hsplit(id string, size float64, a, b *domain.Node) *domain.Node {
	n := vsplit(id, size, a, b)
	n.Orientation = domain.Horizontal
	return n
}

func mustValid(t *testing.T, root *domain.Node) {
	t.Helper()
	if err := Validate(root); err != nil {
		t.Fatalf("invalid tree %s: %v", Describe(root), err)
	}
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

func area(r Rect) float64 { return r.W * r.H }

func sameRect(a, b Rect) bool {
	return math.Abs(a.X-b.X) < eps && math.Abs(a.Y-b.Y) < eps &&
		math.Abs(a.W-b.W) < eps && math.Abs(a.H-b.H) < eps
}

// randomTree builds a well-formed tree of roughly n leaves with sizes drawn
// from a small set so that boundaries never coincide by accident.
func randomTree(rng *rand.Rand, ids *IDAllocator, leaves int) *domain.Node {
	root := domain.NewLeaf(ids.Next())
	for i := 1; i < leaves; i++ {
		all := Leaves(root)
		target := all[rng.Intn(len(all))]
		o := domain.Vertical
		if rng.Intn(2) == 0 {
			o = domain.Horizontal
		}
		a, b := Split(target, ids, SplitOptions{Orientation: o})
		sizes := []float64{20, 30, 40, 50, 60, 70, 80}
		a.Size = domain.Percent(sizes[rng.Intn(len(sizes))])
		b.Size = 100 - a.Size
	}
	for i, l := range Leaves(root) {
		if rng.Intn(2) == 0 {
			l.Content = domain.NewText("leaf "+strconv.Itoa(i), domain.AlignCenter)
		}
	}
	return root
}

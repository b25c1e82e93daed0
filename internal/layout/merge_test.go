package layout

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"

	"splitbook/internal/domain"
)

func TestMerge_LeafAndParallel(t *testing.T) {
	p := vsplit("P", 100, leaf("A", 40), vsplit("BC", 60, leaf("B1", 30), leaf("B2", 70)))

	got := Merge(p, "A")
	if got != p {
		t.Fatalf("Merge returned %v, want P", got)
	}
	mustValid(t, p)
	if want := "P{V,[A(58%),B2(42%)]}"; Describe(p) != want {
		t.Errorf("tree = %s, want %s", Describe(p), want)
	}
}

func TestMerge_ParallelAndParallel(t *testing.T) {
	p := vsplit("P", 100,
		vsplit("A1A2", 40, leaf("A1", 50), leaf("A2", 50)),
		vsplit("B1B2", 60, leaf("B1", 30), leaf("B2", 70)),
	)

	if Merge(p, "A2") == nil {
		t.Fatal("divider should be mergeable")
	}
	mustValid(t, p)

	rects := Compute(p, UnitRect)
	want := map[string]float64{"A1": 0.20, "A2": 0.38, "B2": 0.42}
	total := 0.0
	for id, w := range want {
		r, ok := rects[id]
		if !ok {
			t.Fatalf("leaf %s missing from %s", id, Describe(p))
		}
		if !near(r.W, w) {
			t.Errorf("%s width = %.4f, want %.2f", id, r.W, w)
		}
		total += r.W
	}
	if !near(total, 1) {
		t.Errorf("widths sum to %.4f", total)
	}
	if FindNodeByID(p, "B1") != nil {
		t.Error("B1 should be absorbed")
	}
}

func TestMerge_TwoLeaves(t *testing.T) {
	p := vsplit("P", 100, textLeaf("A", 30, "left"), leaf("B", 70))
	if Merge(p, "B") != p {
		t.Fatal("two leaves are always mergeable")
	}
	mustValid(t, p)
	if !p.IsLeaf() || p.Content.Text.Body != "left" {
		t.Errorf("P = %s, want leaf with left content", Describe(p))
	}
}

func TestMerge_Winner(t *testing.T) {
	img := func(id string) *domain.Node {
		n := leaf(id, 50)
		n.Content = domain.NewImage(id+".png", domain.FitCover, false)
		return n
	}
	tests := []struct {
		name    string
		a, b    *domain.Node
		focused string
		want    string // asset or text body, empty for none
	}{
		{"focused with content wins", img("a"), img("b"), "b", "b.png"},
		{"focused without content loses", img("a"), leaf("b", 50), "b", "a.png"},
		{"ambiguous prefers leading", img("a"), img("b"), "", "a.png"},
		{"only trailing has content", leaf("a", 50), img("b"), "a", "b.png"},
		{"neither has content", leaf("a", 50), leaf("b", 50), "a", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := hsplit("p", 100, tt.a, tt.b)
			Merge(p, tt.focused)
			got := ""
			if p.HasContent() {
				got = p.Content.Image.AssetRef
			}
			if got != tt.want {
				t.Errorf("content = %q, want %q", got, tt.want)
			}
		})
	}
}

// The merged leaf is named after the touching leaf whose content won, so an
// agent holding that ID keeps addressing the same region.
func TestMerge_KeepsWinnerID(t *testing.T) {
	tests := []struct {
		name string
		p    *domain.Node
		want string
	}{
		{
			"parallel and leaf, trailing content",
			vsplit("P", 100, vsplit("A", 40, leaf("A1", 50), leaf("A2", 50)), textLeaf("B", 60, "body")),
			"P{V,[A1(20%),B(80%):txt]}",
		},
		{
			"parallel and leaf, leading content",
			vsplit("P", 100, vsplit("A", 40, leaf("A1", 50), textLeaf("A2", 50, "body")), leaf("B", 60)),
			"P{V,[A1(20%),A2(80%):txt]}",
		},
		{
			"parallel and leaf, no content",
			vsplit("P", 100, vsplit("A", 40, leaf("A1", 50), leaf("A2", 50)), leaf("B", 60)),
			"P{V,[A1(20%),A2(80%)]}",
		},
		{
			"leaf and parallel, leading content",
			vsplit("P", 100, textLeaf("A", 40, "body"), vsplit("B", 60, leaf("B1", 50), leaf("B2", 50))),
			"P{V,[A(70%):txt,B2(30%)]}",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if Merge(tt.p, "") != tt.p {
				t.Fatal("divider should be mergeable")
			}
			mustValid(t, tt.p)
			if got := Describe(tt.p); got != tt.want {
				t.Errorf("tree = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestMerge_NotMergeable(t *testing.T) {
	p := vsplit("P", 100, leaf("A", 50), hsplit("B", 50, leaf("B1", 50), leaf("B2", 50)))
	before := Clone(p)
	if Merge(p, "A") != nil {
		t.Error("expected nil for a divider with two leaves on one side")
	}
	if diff := cmp.Diff(before, p); diff != "" {
		t.Errorf("tree changed:\n%s", diff)
	}
	if Merge(leaf("x", 50), "x") != nil {
		t.Error("merging a leaf should return nil")
	}
}

// TestMerge_KeepsOtherRegions merges every mergeable divider of random trees
// and checks that no other leaf moves and the merged region covers exactly
// the two touching leaves.
func TestMerge_KeepsOtherRegions(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 150; i++ {
		orig := randomTree(rng, NewIDAllocator("n", 1), 2+rng.Intn(9))

		Walk(orig, func(op, _ *domain.Node) bool {
			if !IsDividerMergeable(op) {
				return true
			}
			root := Clone(orig)
			p := FindNodeByID(root, op.ID)
			o := p.Orientation
			leafA := TouchingLeaf(p.Children[0], o, Trailing)
			leafB := TouchingLeaf(p.Children[1], o, Leading)
			wantContent := mergeWinner(leafA, leafB, "").Content.Clone()

			before := Compute(root, UnitRect)
			merged := area(before[leafA.ID]) + area(before[leafB.ID])
			others := make(map[string]Rect)
			for _, l := range Leaves(root) {
				if l.ID != leafA.ID && l.ID != leafB.ID {
					others[l.ID] = before[l.ID]
				}
			}

			if Merge(p, "") != p {
				t.Fatalf("%s: merge at %s returned wrong node", Describe(orig), op.ID)
			}
			if err := Validate(root); err != nil {
				t.Fatalf("%s: merge at %s: %v", Describe(orig), op.ID, err)
			}

			after := Compute(root, UnitRect)
			var fresh []*domain.Node
			for _, l := range Leaves(root) {
				want, ok := others[l.ID]
				if !ok {
					fresh = append(fresh, l)
					continue
				}
				if !sameRect(want, after[l.ID]) {
					t.Errorf("%s: merge at %s moved %s from %+v to %+v", Describe(orig), op.ID, l.ID, want, after[l.ID])
				}
			}
			if len(fresh) != 1 {
				t.Fatalf("%s: merge at %s left %d merged leaves", Describe(orig), op.ID, len(fresh))
			}
			if !near(area(after[fresh[0].ID]), merged) {
				t.Errorf("%s: merged area %.6f, want %.6f", Describe(orig), area(after[fresh[0].ID]), merged)
			}
			if diff := cmp.Diff(wantContent, fresh[0].Content); diff != "" {
				t.Errorf("%s: merged content (-want +got):\n%s", Describe(orig), diff)
			}
			return true
		})
	}
}

package layout

import (
	"math"
	"sort"

	"splitbook/internal/domain"
)

// dedupeEpsilon merges candidates closer than this (in span units).
const dedupeEpsilon = 1e-6

// candidateSet collects snap targets strictly inside (0, avail).
type candidateSet struct {
	avail float64
	vals  []float64
}

func (s *candidateSet) add(v float64) {
	if math.IsNaN(v) || v <= 0 || v >= s.avail {
		return
	}
	s.vals = append(s.vals, v)
}

func (s *candidateSet) sorted() []float64 {
	sort.Float64s(s.vals)
	out := s.vals[:0]
	for _, v := range s.vals {
		if len(out) > 0 && v-out[len(out)-1] < dedupeEpsilon {
			continue
		}
		out = append(out, v)
	}
	return out
}

// snapCandidates gathers every target position for split's first child,
// in units of avail, around the position current.
func snapCandidates(cfg Config, root, split *domain.Node, doc []*domain.Node, avail, current float64) []float64 {
	set := &candidateSet{avail: avail}
	o := split.Orientation
	a, b := split.Children[0], split.Children[1]

	// Equal shares for every leaf lined up along the axis.
	n := parallelLeafCount(a, o) + parallelLeafCount(b, o)
	for k := 1; k < n; k++ {
		set.add(float64(k) / float64(n) * avail)
	}
	set.add(avail / 2)

	// Near-collapse and near-full.
	set.add(cfg.EdgePercent / 100 * avail)
	set.add((1 - cfg.EdgePercent/100) * avail)

	// Fractions of the space ahead of and behind the current position.
	minGap := cfg.MinGapForRecursion / 100 * avail
	subdivide(set, cfg.SnapFractions, current, avail, minGap, cfg.RecursionDepth)
	subdivide(set, cfg.SnapFractions, 0, current, minGap, cfg.RecursionDepth)

	if cfg.GlobalAlignment {
		alignWithDocument(set, root, split, doc, avail)
	}
	return set.sorted()
}

// subdivide places fractions inside (lo, hi) and recurses into the outer
// sub-gaps next to lo and hi.
func subdivide(set *candidateSet, fractions []float64, lo, hi, minGap float64, depth int) {
	gap := hi - lo
	if depth <= 0 || len(fractions) == 0 || gap <= minGap || gap <= 0 {
		return
	}
	fmin, fmax := 1.0, 0.0
	for _, f := range fractions {
		if f <= 0 || f >= 1 {
			continue
		}
		set.add(lo + f*gap)
		fmin = math.Min(fmin, f)
		fmax = math.Max(fmax, f)
	}
	if fmax <= 0 {
		return
	}
	subdivide(set, fractions, lo, lo+fmin*gap, minGap, depth-1)
	subdivide(set, fractions, lo+fmax*gap, hi, minGap, depth-1)
}

// alignWithDocument projects every other divider of the same orientation,
// on any page, into split's coordinate space. Pages are compared in unit
// coordinates so dividers line up regardless of page size. Dividers inside
// split itself move with the drag and are skipped.
func alignWithDocument(set *candidateSet, root, split *domain.Node, doc []*domain.Node, avail float64) {
	o := split.Orientation
	r, ok := Compute(root, UnitRect)[split.ID]
	if !ok || r.Extent(o) <= 0 {
		return
	}
	start, extent := r.Start(o), r.Extent(o)

	pages := append([]*domain.Node{root}, doc...)
	seen := make(map[*domain.Node]bool)
	for _, page := range pages {
		if page == nil || seen[page] {
			continue
		}
		seen[page] = true
		for _, d := range Dividers(page, UnitRect) {
			if d.Orientation != o || FindNodeByID(split, d.SplitID) != nil {
				continue
			}
			set.add((d.Position - start) / extent * avail)
		}
	}
}

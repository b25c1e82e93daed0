package layout

import (
	"math"

	"splitbook/internal/domain"
)

// Session is one interactive drag of a single divider. Nothing in the tree
// changes until Commit; dropping a session without committing is safe.
type Session struct {
	cfg   Config
	root  *domain.Node
	split *domain.Node

	available  float64
	start      float64
	extentPx   float64
	pos        float64
	candidates []float64
	committed  bool
}

// BeginResize opens a drag session on the divider of splitID. extentPx is
// the split node's on-screen length along its axis; doc holds the roots of
// every page in the document for global alignment. It returns nil if
// splitID is not a split node of root.
func BeginResize(root *domain.Node, splitID string, extentPx float64, doc []*domain.Node, cfg Config) *Session {
	split := FindNodeByID(root, splitID)
	if !split.IsSplit() || len(split.Children) != 2 {
		return nil
	}
	a, b := split.Children[0].Size.Float(), split.Children[1].Size.Float()
	avail := a + b
	if avail <= 0 {
		a, avail = 50, 100
	}
	return &Session{
		cfg:        cfg,
		root:       root,
		split:      split,
		available:  avail,
		start:      a,
		extentPx:   extentPx,
		pos:        a,
		candidates: snapCandidates(cfg, root, split, doc, avail, a),
	}
}

// SplitID returns the node whose divider is being dragged.
func (s *Session) SplitID() string { return s.split.ID }

// Position returns the previewed share of the first child, in percent.
func (s *Session) Position() float64 { return s.pos / s.available * 100 }

// Candidates returns the snap targets in percent, ascending.
func (s *Session) Candidates() []float64 {
	out := make([]float64, len(s.candidates))
	for i, c := range s.candidates {
		out[i] = c / s.available * 100
	}
	return out
}

// Drag moves the divider deltaPx from where the session started and returns
// the previewed position in percent. With snap set, the nearest candidate
// within the snap distance wins over the raw position.
func (s *Session) Drag(deltaPx float64, snap bool) float64 {
	delta := deltaPx
	if s.extentPx > 0 {
		delta = deltaPx / s.extentPx * s.available
	}
	s.place(s.start+delta, snap)
	return s.Position()
}

// MoveTo places the divider at percent of the split's span.
func (s *Session) MoveTo(percent float64, snap bool) float64 {
	s.place(percent/100*s.available, snap)
	return s.Position()
}

func (s *Session) place(raw float64, snap bool) {
	raw = math.Max(0, math.Min(s.available, raw))
	if snap {
		if c, ok := nearest(s.candidates, raw, s.snapThreshold()); ok {
			raw = c
		}
	}
	s.pos = raw
}

func (s *Session) snapThreshold() float64 {
	if s.extentPx > 0 {
		return s.cfg.SnapDistancePx / s.extentPx * s.available
	}
	return s.cfg.SnapDistancePx / 100 * s.available
}

// Commit writes the previewed position into the tree. A side left at or
// below MinAreaPercent is deleted instead. It returns the focus target, or
// nil if the session was already committed.
func (s *Session) Commit() *domain.Node {
	if s.committed {
		return nil
	}
	s.committed = true
	return applySplit(s.root, s.split, s.Position(), s.cfg)
}

// Nudge moves splitID's divider to the next snap candidate at least
// KeyboardMinStep beyond its current position, forward (toward the trailing
// side) or backward, clamping to the edge candidates, and commits at once.
func Nudge(root *domain.Node, splitID string, forward bool, doc []*domain.Node, cfg Config) *domain.Node {
	s := BeginResize(root, splitID, 0, doc, cfg)
	if s == nil {
		return nil
	}
	step := cfg.KeyboardMinStep / 100 * s.available
	lo := cfg.EdgePercent / 100 * s.available
	hi := s.available - lo

	var target float64
	found := false
	if forward {
		for _, c := range s.candidates {
			if c >= s.start+step {
				target, found = c, true
				break
			}
		}
		if !found || target > hi {
			target = hi
		}
	} else {
		for i := len(s.candidates) - 1; i >= 0; i-- {
			if c := s.candidates[i]; c <= s.start-step {
				target, found = c, true
				break
			}
		}
		if !found || target < lo {
			target = lo
		}
	}
	s.pos = target
	return s.Commit()
}

// ResizeTo is a one-shot drag to percent followed by Commit.
func ResizeTo(root *domain.Node, splitID string, percent float64, snap bool, extentPx float64, doc []*domain.Node, cfg Config) *domain.Node {
	s := BeginResize(root, splitID, extentPx, doc, cfg)
	if s == nil {
		return nil
	}
	s.MoveTo(percent, snap)
	return s.Commit()
}

func applySplit(root, split *domain.Node, firstPercent float64, cfg Config) *domain.Node {
	first, second := split.Children[0], split.Children[1]
	firstPercent = math.Max(0, math.Min(100, firstPercent))
	secondPercent := 100 - firstPercent
	switch {
	case firstPercent <= cfg.MinAreaPercent:
		return Delete(root, first.ID)
	case secondPercent <= cfg.MinAreaPercent:
		return Delete(root, second.ID)
	}
	first.Size = domain.Percent(firstPercent)
	second.Size = 100 - first.Size
	return split
}

func nearest(candidates []float64, v, threshold float64) (float64, bool) {
	best, bestDist := 0.0, math.Inf(1)
	for _, c := range candidates {
		if d := math.Abs(c - v); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best, bestDist <= threshold
}

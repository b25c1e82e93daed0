package service

import (
	"context"
	"sync"

	"splitbook/internal/layout"
)

// ResizeSession is an open divider drag on one page. The page is busy until
// Commit or Abandon; nothing is stored before Commit.
type ResizeSession struct {
	svc  *LayoutService
	g    *gestureCtx
	drag *layout.Session

	mu     sync.Mutex
	closed bool
}

// BeginResize opens a drag on splitID's divider. extentPx is the divider
// span's on-screen length; zero or less uses the page's own units.
func (s *LayoutService) BeginResize(ctx context.Context, pageID, splitID string, extentPx float64) (*ResizeSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.guard.TryLock(pageID) {
		return nil, ErrPageBusy
	}

	g, err := s.load(pageID)
	if err != nil {
		s.guard.Unlock(pageID)
		return nil, err
	}
	split, err := g.split(splitID)
	if err != nil {
		s.guard.Unlock(pageID)
		return nil, err
	}
	if extentPx <= 0 {
		extentPx = layout.Compute(g.page.Root, g.bounds())[split.ID].Extent(split.Orientation)
	}

	s.log.Debug("resize begin", "page", pageID, "node", splitID, "extent", extentPx)
	return &ResizeSession{
		svc:  s,
		g:    g,
		drag: layout.BeginResize(g.page.Root, splitID, extentPx, g.others, g.cfg),
	}, nil
}

func (r *ResizeSession) PageID() string { return r.g.page.ID }

func (r *ResizeSession) SplitID() string { return r.drag.SplitID() }

// Position is the previewed share of the first side, in percent.
func (r *ResizeSession) Position() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.drag.Position()
}

// Candidates lists the snap targets in percent.
func (r *ResizeSession) Candidates() []float64 { return r.drag.Candidates() }

// Drag previews the divider deltaPx away from where the session began.
func (r *ResizeSession) Drag(ctx context.Context, deltaPx float64, snap bool) (float64, error) {
	return r.preview(ctx, func() float64 { return r.drag.Drag(deltaPx, snap) })
}

// MoveTo previews the divider at percent.
func (r *ResizeSession) MoveTo(ctx context.Context, percent float64, snap bool) (float64, error) {
	return r.preview(ctx, func() float64 { return r.drag.MoveTo(percent, snap) })
}

func (r *ResizeSession) preview(ctx context.Context, move func() float64) (float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return 0, ErrSessionClosed
	}
	pos := move()
	r.svc.emitter.Emit(ctx, EventResizePreview, map[string]any{
		"pageId":   r.g.page.ID,
		"splitId":  r.drag.SplitID(),
		"position": pos,
	})
	return pos, nil
}

// Commit stores the previewed position and releases the page.
func (r *ResizeSession) Commit(ctx context.Context) (*Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil, ErrSessionClosed
	}
	r.closed = true
	defer r.svc.guard.Unlock(r.g.page.ID)

	r.svc.mu.Lock()
	defer r.svc.mu.Unlock()
	if err := r.svc.ensureHistory(r.g.page); err != nil {
		return nil, err
	}
	focus := r.drag.Commit()
	if focus == nil {
		return &Result{PageID: r.g.page.ID, FocusID: r.drag.SplitID(), Layout: r.g.page.Root}, nil
	}
	return r.svc.persist(ctx, r.g, "resize", focus.ID)
}

// Abandon drops the session without touching the page. It is safe to call
// after Commit.
func (r *ResizeSession) Abandon() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.closed = true
	r.svc.guard.Unlock(r.g.page.ID)
	r.svc.log.Debug("resize abandoned", "page", r.g.page.ID, "node", r.drag.SplitID())
}

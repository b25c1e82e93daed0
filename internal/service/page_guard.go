package service

import (
	"context"
	"sync"
)

// ExportedPageGuard lets _test packages exercise the guard.
type ExportedPageGuard = pageGuard

// ─────────────────────────────────────────────────────────────
// pageGuard — one gesture or resize session per page at a time
// ─────────────────────────────────────────────────────────────

type pageGuard struct {
	mu   sync.Mutex
	busy map[string]struct{}
	wg   sync.WaitGroup
}

// TryLock marks pageID busy. It returns false if it already is.
func (g *pageGuard) TryLock(pageID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.busy == nil {
		g.busy = make(map[string]struct{})
	}
	if _, ok := g.busy[pageID]; ok {
		return false
	}
	g.busy[pageID] = struct{}{}
	g.wg.Add(1)
	return true
}

// Unlock releases pageID. Releasing a page that is not busy is a no-op.
func (g *pageGuard) Unlock(pageID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.busy[pageID]; !ok {
		return
	}
	delete(g.busy, pageID)
	g.wg.Done()
}

// Busy reports whether pageID is locked.
func (g *pageGuard) Busy(pageID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.busy[pageID]
	return ok
}

// WaitAll blocks until every page is released or ctx is done.
func (g *pageGuard) WaitAll(ctx context.Context) {
	done := make(chan struct{})
	go func() {
		g.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
	}
}

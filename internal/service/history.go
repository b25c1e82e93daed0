package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"splitbook/internal/domain"
	"splitbook/internal/storage"
)

// ── Undo / redo ────────────────────────────────────────────

// ensureHistory records the page's current tree as the first history entry
// if the page has none yet.
func (s *LayoutService) ensureHistory(p *domain.Page) error {
	_, err := s.undo.Current(p.ID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return err
	}
	return s.snapshot(p.ID, "initial", p.Root)
}

// Undo restores the tree as it was before the page's last gesture.
func (s *LayoutService) Undo(ctx context.Context, pageID string) (*Result, error) {
	return s.travel(ctx, pageID, true)
}

// Redo re-applies the most recently undone gesture.
func (s *LayoutService) Redo(ctx context.Context, pageID string) (*Result, error) {
	return s.travel(ctx, pageID, false)
}

func (s *LayoutService) travel(ctx context.Context, pageID string, back bool) (*Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.guard.TryLock(pageID) {
		return nil, ErrPageBusy
	}
	defer s.guard.Unlock(pageID)

	p, err := s.getPage(pageID)
	if err != nil {
		return nil, err
	}
	none := ErrNothingToRedo
	if back {
		none = ErrNothingToUndo
	}

	cur, err := s.undo.Current(pageID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, none
	}
	if err != nil {
		return nil, err
	}

	var target *storage.UndoNode
	if back {
		if cur.ParentID == nil {
			return nil, none
		}
		target, err = s.undo.Get(*cur.ParentID)
	} else {
		target, err = s.undo.LatestChild(cur.ID)
	}
	if errors.Is(err, storage.ErrNotFound) {
		return nil, none
	}
	if err != nil {
		return nil, err
	}

	var root *domain.Node
	if err := json.Unmarshal([]byte(target.SnapshotJSON), &root); err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w", target.ID, err)
	}
	if root == nil {
		return nil, fmt.Errorf("snapshot %s has no layout", target.ID)
	}
	p.Root = root
	if err := s.docs.UpdatePage(p); err != nil {
		return nil, fmt.Errorf("save page: %w", err)
	}
	if err := s.undo.GoTo(pageID, target.ID); err != nil {
		return nil, err
	}

	label := cur.Label
	if !back {
		label = target.Label
	}
	res := &Result{PageID: pageID, FocusID: root.ID, Changed: true, Layout: root}
	s.emitter.Emit(ctx, EventLayoutChanged, res)
	s.log.Debug("history", "page", pageID, "undo", back, "gesture", label)
	return res, nil
}

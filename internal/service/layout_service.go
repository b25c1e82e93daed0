package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"splitbook/internal/domain"
	"splitbook/internal/layout"
	"splitbook/internal/logger"
	"splitbook/internal/storage"
)

// ─────────────────────────────────────────────────────────────
// Layout Service — documents, pages and the gestures on their trees
// ─────────────────────────────────────────────────────────────

// Result is what every gesture returns: the page's tree after the gesture
// and the node the caller should focus next.
type Result struct {
	PageID  string       `json:"pageId"`
	FocusID string       `json:"focusId,omitempty"`
	Changed bool         `json:"changed"`
	Layout  *domain.Node `json:"layout"`
}

// Options are the tunables a LayoutService starts with.
type Options struct {
	Layout     layout.Config
	PageWidth  float64
	PageHeight float64
}

// LayoutService loads a page tree, runs one gesture on it, and persists the
// result together with an undo snapshot. Gestures on the same page never
// overlap; a page with an open resize session rejects them with ErrPageBusy.
type LayoutService struct {
	docs    *storage.DocumentStore
	undo    *storage.UndoStore
	emitter EventEmitter
	log     *slog.Logger

	// mu serializes read-modify-write cycles, including the document-wide
	// node id counter.
	mu    sync.Mutex
	guard pageGuard

	optsMu sync.RWMutex
	opts   Options
}

// NewLayoutService creates a LayoutService.
func NewLayoutService(docs *storage.DocumentStore, undo *storage.UndoStore, opts Options, emitter EventEmitter) *LayoutService {
	if opts.PageWidth <= 0 {
		opts.PageWidth = 1240
	}
	if opts.PageHeight <= 0 {
		opts.PageHeight = 1754
	}
	return &LayoutService{
		docs:    docs,
		undo:    undo,
		emitter: emitter,
		log:     logger.ComponentLogger("layout"),
		opts:    opts,
	}
}

// SetLayoutConfig swaps the resize tunables; sessions already open keep the
// values they started with.
func (s *LayoutService) SetLayoutConfig(cfg layout.Config) {
	s.optsMu.Lock()
	defer s.optsMu.Unlock()
	s.opts.Layout = cfg
}

func (s *LayoutService) LayoutConfig() layout.Config {
	s.optsMu.RLock()
	defer s.optsMu.RUnlock()
	return s.opts.Layout
}

func (s *LayoutService) options() Options {
	s.optsMu.RLock()
	defer s.optsMu.RUnlock()
	return s.opts
}

// Shutdown waits until open resize sessions are finished or ctx expires.
func (s *LayoutService) Shutdown(ctx context.Context) {
	s.guard.WaitAll(ctx)
}

// ── Documents and pages ────────────────────────────────────

func (s *LayoutService) ListDocuments() ([]domain.Document, error) {
	return s.docs.ListDocuments()
}

// CreateDocument creates a document with one empty page.
func (s *LayoutService) CreateDocument(ctx context.Context, name string) (*domain.Document, *domain.Page, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := &domain.Document{ID: uuid.New().String(), Name: name, NextNodeID: 1}
	if err := s.docs.CreateDocument(doc); err != nil {
		return nil, nil, err
	}
	p, err := s.createPage(ctx, doc, "Page 1")
	if err != nil {
		return nil, nil, err
	}
	s.log.Info("document created", "document", doc.ID, "page", p.ID)
	return doc, p, nil
}

// CreatePage appends an empty page to a document.
func (s *LayoutService) CreatePage(ctx context.Context, documentID, name string) (*domain.Page, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.getDocument(documentID)
	if err != nil {
		return nil, err
	}
	return s.createPage(ctx, doc, name)
}

func (s *LayoutService) createPage(ctx context.Context, doc *domain.Document, name string) (*domain.Page, error) {
	pages, err := s.docs.ListPages(doc.ID)
	if err != nil {
		return nil, err
	}
	ids := layout.NewIDAllocator(layout.DefaultIDPrefix, doc.NextNodeID)
	root := domain.NewLeaf(ids.Next())
	root.Size = 100

	opts := s.options()
	p := &domain.Page{
		ID:         uuid.New().String(),
		DocumentID: doc.ID,
		Name:       name,
		Order:      len(pages),
		Width:      opts.PageWidth,
		Height:     opts.PageHeight,
		Root:       root,
	}
	if err := s.docs.CreatePage(p); err != nil {
		return nil, err
	}
	doc.NextNodeID = ids.Peek()
	if err := s.docs.UpdateDocument(doc); err != nil {
		return nil, fmt.Errorf("advance node ids: %w", err)
	}
	if err := s.snapshot(p.ID, "create page", root); err != nil {
		return nil, err
	}
	s.emitter.Emit(ctx, EventLayoutChanged, &Result{PageID: p.ID, FocusID: root.ID, Changed: true, Layout: root})
	return p, nil
}

func (s *LayoutService) ListPages(documentID string) ([]domain.Page, error) {
	if _, err := s.getDocument(documentID); err != nil {
		return nil, err
	}
	return s.docs.ListPages(documentID)
}

func (s *LayoutService) GetPage(pageID string) (*domain.Page, error) {
	return s.getPage(pageID)
}

func (s *LayoutService) getPage(pageID string) (*domain.Page, error) {
	p, err := s.docs.GetPage(pageID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrPageNotFound, pageID)
	}
	if err != nil {
		return nil, err
	}
	if p.Root == nil {
		return nil, fmt.Errorf("page %s has no layout", pageID)
	}
	return p, nil
}

func (s *LayoutService) getDocument(id string) (*domain.Document, error) {
	d, err := s.docs.GetDocument(id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrDocumentNotFound, id)
	}
	return d, err
}

// ── Gesture plumbing ───────────────────────────────────────

// gestureCtx is one loaded page plus what a gesture needs around it.
type gestureCtx struct {
	page   *domain.Page
	ids    *layout.IDAllocator
	others []*domain.Node // roots of the document's other pages
	cfg    layout.Config
}

func (g *gestureCtx) bounds() layout.Rect {
	return layout.Rect{W: g.page.Width, H: g.page.Height}
}

func (g *gestureCtx) node(id string) (*domain.Node, error) {
	n := layout.FindNodeByID(g.page.Root, id)
	if n == nil {
		return nil, fmt.Errorf("%w: %s", ErrNodeNotFound, id)
	}
	return n, nil
}

func (g *gestureCtx) leaf(id string) (*domain.Node, error) {
	n, err := g.node(id)
	if err != nil {
		return nil, err
	}
	if !n.IsLeaf() {
		return nil, fmt.Errorf("%w: %s", ErrNotLeaf, id)
	}
	return n, nil
}

func (g *gestureCtx) split(id string) (*domain.Node, error) {
	n, err := g.node(id)
	if err != nil {
		return nil, err
	}
	if !n.IsSplit() {
		return nil, fmt.Errorf("%w: %s", ErrNotSplit, id)
	}
	return n, nil
}

func (s *LayoutService) load(pageID string) (*gestureCtx, error) {
	p, err := s.getPage(pageID)
	if err != nil {
		return nil, err
	}
	doc, err := s.getDocument(p.DocumentID)
	if err != nil {
		return nil, err
	}
	pages, err := s.docs.ListPages(doc.ID)
	if err != nil {
		return nil, err
	}

	g := &gestureCtx{
		page: p,
		ids:  layout.NewIDAllocator(layout.DefaultIDPrefix, doc.NextNodeID),
		cfg:  s.LayoutConfig(),
	}
	for i := range pages {
		g.ids.Observe(pages[i].Root)
		if pages[i].ID != p.ID && pages[i].Root != nil {
			g.others = append(g.others, pages[i].Root)
		}
	}
	return g, nil
}

// gestureFunc mutates g.page.Root in place. It reports the focus target and
// whether anything changed; an unchanged tree is not persisted.
type gestureFunc func(g *gestureCtx) (focus string, changed bool, err error)

func (s *LayoutService) gesture(ctx context.Context, pageID, label string, fn gestureFunc) (*Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.guard.TryLock(pageID) {
		return nil, ErrPageBusy
	}
	defer s.guard.Unlock(pageID)

	g, err := s.load(pageID)
	if err != nil {
		return nil, err
	}
	if err := s.ensureHistory(g.page); err != nil {
		return nil, err
	}

	focus, changed, err := fn(g)
	if err != nil {
		s.log.Debug("gesture rejected", "gesture", label, "page", pageID, "error", err)
		return nil, err
	}
	if !changed {
		s.log.Debug("gesture changed nothing", "gesture", label, "page", pageID, "focus", focus)
		return &Result{PageID: pageID, FocusID: focus, Layout: g.page.Root}, nil
	}
	return s.persist(ctx, g, label, focus)
}

// persist normalizes, checks and stores a mutated tree. Callers hold s.mu.
func (s *LayoutService) persist(ctx context.Context, g *gestureCtx, label, focus string) (*Result, error) {
	root := g.page.Root
	layout.Normalize(root)
	if err := layout.Validate(root); err != nil {
		s.log.Error("layout invariant violated", "gesture", label, "page", g.page.ID, "error", err)
		return nil, fmt.Errorf("%s: %w", label, err)
	}

	if err := s.docs.UpdatePage(g.page); err != nil {
		s.log.Error("save page failed", "page", g.page.ID, "error", err)
		return nil, fmt.Errorf("save page: %w", err)
	}
	doc, err := s.getDocument(g.page.DocumentID)
	if err != nil {
		return nil, err
	}
	if next := g.ids.Peek(); next > doc.NextNodeID {
		doc.NextNodeID = next
		if err := s.docs.UpdateDocument(doc); err != nil {
			s.log.Error("save node counter failed", "document", doc.ID, "error", err)
			return nil, fmt.Errorf("advance node ids: %w", err)
		}
	}
	if err := s.snapshot(g.page.ID, label, root); err != nil {
		return nil, err
	}

	res := &Result{PageID: g.page.ID, FocusID: focus, Changed: true, Layout: root}
	s.emitter.Emit(ctx, EventLayoutChanged, res)
	s.log.Debug(label, "page", g.page.ID, "focus", focus, "tree", layout.Describe(root))
	return res, nil
}

func (s *LayoutService) snapshot(pageID, label string, root *domain.Node) error {
	data, err := json.Marshal(root)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if _, err := s.undo.PushNode(pageID, label, string(data)); err != nil {
		s.log.Error("undo snapshot failed", "page", pageID, "error", err)
		return fmt.Errorf("record undo: %w", err)
	}
	return nil
}

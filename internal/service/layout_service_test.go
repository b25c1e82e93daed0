package service_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"splitbook/internal/domain"
	"splitbook/internal/layout"
	"splitbook/internal/service"
	"splitbook/internal/storage"
)

type fixture struct {
	svc     *service.LayoutService
	emitter *service.MockEmitter
	docs    *storage.DocumentStore
	undo    *storage.UndoStore
	doc     *domain.Document
	page    *domain.Page
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := storage.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	f := &fixture{
		emitter: &service.MockEmitter{},
		docs:    storage.NewDocumentStore(db),
		undo:    storage.NewUndoStore(db, 0),
	}
	f.svc = service.NewLayoutService(f.docs, f.undo, service.Options{
		Layout:     layout.DefaultConfig(),
		PageWidth:  1240,
		PageHeight: 1754,
	}, f.emitter)

	f.doc, f.page, err = f.svc.CreateDocument(context.Background(), "Zine")
	if err != nil {
		t.Fatalf("create document: %v", err)
	}
	return f
}

func (f *fixture) tree(t *testing.T) string {
	t.Helper()
	p, err := f.svc.GetPage(f.page.ID)
	if err != nil {
		t.Fatalf("get page: %v", err)
	}
	return layout.Describe(p.Root)
}

func (f *fixture) splitRoot(t *testing.T, o domain.Orientation) *service.Result {
	t.Helper()
	res, err := f.svc.Split(context.Background(), f.page.ID, "n1", service.SplitRequest{Orientation: o})
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	return res
}

func TestCreateDocument(t *testing.T) {
	f := newFixture(t)
	if f.page.Root.ID != "n1" || !f.page.Root.IsLeaf() {
		t.Errorf("first page root = %s", layout.Describe(f.page.Root))
	}
	if f.page.Width != 1240 || f.page.Height != 1754 {
		t.Errorf("page size = %vx%v", f.page.Width, f.page.Height)
	}
	doc, err := f.docs.GetDocument(f.doc.ID)
	if err != nil || doc.NextNodeID != 2 {
		t.Errorf("NextNodeID = %v, %v; want 2", doc, err)
	}
	if n := len(f.emitter.Named(service.EventLayoutChanged)); n != 1 {
		t.Errorf("layout events = %d, want 1", n)
	}
}

func TestSplit_InfersAndPersists(t *testing.T) {
	f := newFixture(t)
	res, err := f.svc.Split(context.Background(), f.page.ID, "n1", service.SplitRequest{})
	if err != nil {
		t.Fatal(err)
	}
	if !res.Changed || res.FocusID != "n3" {
		t.Errorf("result = %+v, want focus n3", res)
	}
	// A portrait page is taller than wide, so the split stacks.
	if got, want := f.tree(t), "n1{H,[n2(50%),n3(50%)]}"; got != want {
		t.Errorf("tree = %s, want %s", got, want)
	}
}

func TestSplit_IDsUniqueAcrossPages(t *testing.T) {
	f := newFixture(t)
	f.splitRoot(t, domain.Vertical)

	p2, err := f.svc.CreatePage(context.Background(), f.doc.ID, "Back")
	if err != nil {
		t.Fatal(err)
	}
	if p2.Root.ID != "n4" {
		t.Errorf("second page root = %s, want n4", p2.Root.ID)
	}
	res, err := f.svc.Split(context.Background(), p2.ID, "n4", service.SplitRequest{Orientation: domain.Vertical})
	if err != nil {
		t.Fatal(err)
	}
	if got := layout.Describe(res.Layout); got != "n4{V,[n5(50%),n6(50%)]}" {
		t.Errorf("second page = %s", got)
	}
}

func TestSplit_Errors(t *testing.T) {
	f := newFixture(t)
	f.splitRoot(t, domain.Vertical)
	ctx := context.Background()

	if _, err := f.svc.Split(ctx, f.page.ID, "n1", service.SplitRequest{}); !errors.Is(err, service.ErrNotLeaf) {
		t.Errorf("split of a split node: %v", err)
	}
	if _, err := f.svc.Split(ctx, f.page.ID, "zz", service.SplitRequest{}); !errors.Is(err, service.ErrNodeNotFound) {
		t.Errorf("split of missing node: %v", err)
	}
	if _, err := f.svc.Split(ctx, "no-page", "n1", service.SplitRequest{}); !errors.Is(err, service.ErrPageNotFound) {
		t.Errorf("split on missing page: %v", err)
	}
}

func TestContentFollowsSplitAndDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	img := domain.NewImage("cover.png", domain.FitContain, false)
	if _, err := f.svc.SetContent(ctx, f.page.ID, "n1", img); err != nil {
		t.Fatal(err)
	}
	res, err := f.svc.Split(ctx, f.page.ID, "n1", service.SplitRequest{
		Orientation: domain.Vertical,
		ContentTo:   layout.ContentToSecond,
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.FocusID != "n2" {
		t.Errorf("focus = %s, want the empty child n2", res.FocusID)
	}
	if got := f.tree(t); got != "n1{V,[n2(50%),n3(50%):img]}" {
		t.Errorf("tree = %s", got)
	}

	res, err = f.svc.Delete(ctx, f.page.ID, "n2")
	if err != nil {
		t.Fatal(err)
	}
	if res.FocusID != "n1" || !res.Layout.HasContent() || res.Layout.Content.Image.AssetRef != "cover.png" {
		t.Errorf("after delete: focus %s, tree %s", res.FocusID, layout.Describe(res.Layout))
	}
}

func TestDelete_RootIsNoOp(t *testing.T) {
	f := newFixture(t)
	before := len(f.emitter.Events)

	res, err := f.svc.Delete(context.Background(), f.page.ID, "n1")
	if err != nil {
		t.Fatal(err)
	}
	if res.Changed {
		t.Error("deleting the root should change nothing")
	}
	if len(f.emitter.Events) != before {
		t.Error("no-op emitted an event")
	}
	if _, err := f.svc.Undo(context.Background(), f.page.ID); !errors.Is(err, service.ErrNothingToUndo) {
		t.Errorf("no-op should not record history: %v", err)
	}
}

func TestMerge(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.splitRoot(t, domain.Vertical)
	f.svc.Split(ctx, f.page.ID, "n3", service.SplitRequest{Orientation: domain.Horizontal})

	if _, err := f.svc.Merge(ctx, f.page.ID, "n1", ""); !errors.Is(err, service.ErrNotMergeable) {
		t.Errorf("merge beside two stacked leaves: %v", err)
	}
	if _, err := f.svc.Merge(ctx, f.page.ID, "n2", ""); !errors.Is(err, service.ErrNotSplit) {
		t.Errorf("merge on a leaf: %v", err)
	}

	res, err := f.svc.Merge(ctx, f.page.ID, "n3", "n5")
	if err != nil {
		t.Fatal(err)
	}
	if res.FocusID != "n3" || f.tree(t) != "n1{V,[n2(50%),n3(50%)]}" {
		t.Errorf("focus %s, tree %s", res.FocusID, f.tree(t))
	}
}

func TestMerge_FocusesSurvivingLeaf(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.splitRoot(t, domain.Vertical)
	f.svc.Split(ctx, f.page.ID, "n3", service.SplitRequest{Orientation: domain.Vertical})
	// n1{V,[n2, n3{V,[n4, n5]}]}: merging n1 joins n2 and n4.
	f.svc.SetContent(ctx, f.page.ID, "n4", domain.NewText("caption", domain.AlignCenter))

	res, err := f.svc.Merge(ctx, f.page.ID, "n1", "")
	if err != nil {
		t.Fatal(err)
	}
	if res.FocusID != "n4" {
		t.Errorf("focus = %s, want the content-bearing survivor n4", res.FocusID)
	}
	if got := f.tree(t); got != "n1{V,[n4(75%):txt,n5(25%)]}" {
		t.Errorf("tree = %s", got)
	}
}

func TestSwapAndNavigate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.splitRoot(t, domain.Vertical)
	f.svc.SetContent(ctx, f.page.ID, "n2", domain.NewText("left", domain.AlignLeft))

	next, err := f.svc.Navigate(f.page.ID, "n2", layout.Right)
	if err != nil || next != "n3" {
		t.Errorf("Navigate = %q, %v; want n3", next, err)
	}
	if next, _ := f.svc.Navigate(f.page.ID, "n2", layout.Left); next != "" {
		t.Errorf("nothing lies left of n2, got %q", next)
	}
	if _, err := f.svc.Navigate(f.page.ID, "n1", layout.Left); !errors.Is(err, service.ErrNotLeaf) {
		t.Errorf("navigate from split: %v", err)
	}

	res, err := f.svc.Swap(ctx, f.page.ID, "n2", layout.Right)
	if err != nil {
		t.Fatal(err)
	}
	if res.FocusID != "n3" || f.tree(t) != "n1{V,[n2(50%),n3(50%):txt]}" {
		t.Errorf("focus %s, tree %s", res.FocusID, f.tree(t))
	}

	res, _ = f.svc.Swap(ctx, f.page.ID, "n3", layout.Up)
	if res.Changed {
		t.Error("swap with no neighbour should change nothing")
	}
}

func TestDividers(t *testing.T) {
	f := newFixture(t)
	f.splitRoot(t, domain.Vertical)

	ds, err := f.svc.Dividers(f.page.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(ds) != 1 || ds[0].SplitID != "n1" || ds[0].Position != 620 || !ds[0].Mergeable {
		t.Errorf("dividers = %+v", ds)
	}
}

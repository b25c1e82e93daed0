package layout

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"splitbook/internal/domain"
)

func TestCompute(t *testing.T) {
	got := Compute(sampleTree(), Rect{W: 200, H: 100})
	want := map[string]Rect{
		"p":  {0, 0, 200, 100},
		"a":  {0, 0, 80, 100},
		"bc": {80, 0, 120, 100},
		"b":  {80, 0, 120, 30},
		"c":  {80, 30, 120, 70},
	}
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("rects (-want +got):\n%s", diff)
	}
}

func TestDividers(t *testing.T) {
	got := Dividers(sampleTree(), Rect{W: 200, H: 100})
	want := []Divider{
		{SplitID: "p", Orientation: domain.Vertical, Position: 80, Span: Rect{0, 0, 200, 100}, Mergeable: false},
		{SplitID: "bc", Orientation: domain.Horizontal, Position: 30, Span: Rect{80, 0, 120, 100}, Mergeable: true},
	}
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("dividers (-want +got):\n%s", diff)
	}
	if d := Dividers(leaf("x", 50), UnitRect); len(d) != 0 {
		t.Errorf("leaf has %d dividers", len(d))
	}
}

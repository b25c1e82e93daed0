package layout

import "splitbook/internal/domain"

// ContentDestination picks which new child inherits a split leaf's content.
type ContentDestination int

const (
	ContentToFirst ContentDestination = iota
	ContentToSecond
)

// SplitOptions describes one split gesture.
type SplitOptions struct {
	// Orientation forces the split axis. Empty means infer from Bounds.
	Orientation domain.Orientation
	// Bounds is the leaf's on-screen rect, used for inference.
	Bounds Rect
	// Invert flips the inferred orientation (modifier key held).
	Invert bool
	// ContentTo selects the child that keeps existing content.
	ContentTo ContentDestination
}

// InferOrientation splits wide regions side by side and tall or square
// regions into a stack. invert swaps the two.
func InferOrientation(r Rect, invert bool) domain.Orientation {
	o := domain.Horizontal
	if r.W > r.H {
		o = domain.Vertical
	}
	if invert {
		o = o.Opposite()
	}
	return o
}

// Split turns leaf into a container of two fresh 50% leaves and moves its
// content into the child chosen by opts.ContentTo. It returns the new
// children in order, or nils if leaf is not a leaf.
func Split(leaf *domain.Node, ids *IDAllocator, opts SplitOptions) (*domain.Node, *domain.Node) {
	if leaf == nil || !leaf.IsLeaf() {
		return nil, nil
	}
	o := opts.Orientation
	if o == "" {
		o = InferOrientation(opts.Bounds, opts.Invert)
	}

	first := domain.NewLeaf(ids.Next())
	second := domain.NewLeaf(ids.Next())
	if leaf.HasContent() {
		if opts.ContentTo == ContentToSecond {
			second.Content = leaf.Content
		} else {
			first.Content = leaf.Content
		}
	}
	leaf.MakeSplit(o, first, second)
	return first, second
}

// SplitFocus returns the child to focus after a split: the one that did not
// receive content, or the one that did when preferContent is set.
func SplitFocus(first, second *domain.Node, dest ContentDestination, preferContent bool) *domain.Node {
	receiver, other := first, second
	if dest == ContentToSecond {
		receiver, other = second, first
	}
	if preferContent {
		return receiver
	}
	return other
}

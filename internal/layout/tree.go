package layout

import (
	"strings"

	"splitbook/internal/domain"
)

// FindNodeByID returns the node with the given id, depth first, or nil.
func FindNodeByID(root *domain.Node, id string) *domain.Node {
	if root == nil {
		return nil
	}
	if root.ID == id {
		return root
	}
	for _, c := range root.Children {
		if n := FindNodeByID(c, id); n != nil {
			return n
		}
	}
	return nil
}

// FindParentNode returns the node whose children include id, or nil when id
// is the root or absent.
func FindParentNode(root *domain.Node, id string) *domain.Node {
	if root == nil {
		return nil
	}
	for _, c := range root.Children {
		if c != nil && c.ID == id {
			return root
		}
	}
	for _, c := range root.Children {
		if p := FindParentNode(c, id); p != nil {
			return p
		}
	}
	return nil
}

// Sibling returns the other child of parent, or nil if id is not a child.
func Sibling(parent *domain.Node, id string) *domain.Node {
	if !parent.IsSplit() || len(parent.Children) != 2 {
		return nil
	}
	switch id {
	case parent.Children[0].ID:
		return parent.Children[1]
	case parent.Children[1].ID:
		return parent.Children[0]
	}
	return nil
}

// Walk visits every node in pre-order. Returning false from fn skips the
// node's subtree.
func Walk(root *domain.Node, fn func(n, parent *domain.Node) bool) {
	walk(root, nil, fn)
}

func walk(n, parent *domain.Node, fn func(n, parent *domain.Node) bool) {
	if n == nil {
		return
	}
	if !fn(n, parent) {
		return
	}
	for _, c := range n.Children {
		walk(c, n, fn)
	}
}

// Leaves returns all leaves in leading-to-trailing order.
func Leaves(root *domain.Node) []*domain.Node {
	var out []*domain.Node
	Walk(root, func(n, _ *domain.Node) bool {
		if n.IsLeaf() {
			out = append(out, n)
		}
		return true
	})
	return out
}

// Clone deep-copies a tree.
func Clone(root *domain.Node) *domain.Node {
	if root == nil {
		return nil
	}
	out := &domain.Node{
		ID:          root.ID,
		State:       root.State,
		Orientation: root.Orientation,
		Size:        root.Size,
		Content:     root.Content.Clone(),
	}
	if len(root.Children) > 0 {
		out.Children = make([]*domain.Node, len(root.Children))
		for i, c := range root.Children {
			out.Children[i] = Clone(c)
		}
	}
	return out
}

// Describe renders a compact single-line form such as
// "n1{V,[n2(40%),n3{H,60%,[n4(50%),n5(50%)]}]}". Leaves with content get a
// trailing ":img" or ":txt". The root's size is omitted.
func Describe(root *domain.Node) string {
	var b strings.Builder
	describe(&b, root, true)
	return b.String()
}

func describe(b *strings.Builder, n *domain.Node, isRoot bool) {
	if n == nil {
		b.WriteString("<nil>")
		return
	}
	b.WriteString(n.ID)
	if n.IsLeaf() {
		if !isRoot {
			b.WriteString("(" + n.Size.String() + ")")
		}
		if n.HasContent() {
			switch n.Content.Kind {
			case domain.ContentImage:
				b.WriteString(":img")
			case domain.ContentText:
				b.WriteString(":txt")
			}
		}
		return
	}
	b.WriteString("{")
	if n.Orientation == domain.Vertical {
		b.WriteString("V")
	} else {
		b.WriteString("H")
	}
	if !isRoot {
		b.WriteString("," + n.Size.String())
	}
	b.WriteString(",[")
	for i, c := range n.Children {
		if i > 0 {
			b.WriteString(",")
		}
		describe(b, c, false)
	}
	b.WriteString("]}")
}

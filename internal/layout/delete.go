package layout

import "splitbook/internal/domain"

// Delete removes the child id and lets its parent become whatever the
// sibling was: the sibling's children and orientation, or the sibling's
// content. The parent keeps its own id and size; the sibling's size and
// the removed node's size are discarded without touching ancestors.
//
// It returns the mutated parent, or nil when id is the root or has no
// parent in the tree.
func Delete(root *domain.Node, id string) *domain.Node {
	if root == nil || root.ID == id {
		return nil
	}
	parent := FindParentNode(root, id)
	if parent == nil {
		return nil
	}
	sibling := Sibling(parent, id)
	if sibling == nil {
		return nil
	}

	if sibling.IsSplit() {
		parent.MakeSplit(sibling.Orientation, sibling.Children[0], sibling.Children[1])
	} else {
		parent.MakeLeaf(sibling.Content)
	}
	return parent
}

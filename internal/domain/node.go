package domain

import (
	"encoding/json"
	"strings"
)

// SplitState tells a container node apart from a leaf.
type SplitState string

const (
	StateUnsplit SplitState = "unsplit"
	StateSplit   SplitState = "split"
)

// Orientation is the axis a split node arranges its two children along.
// Vertical places the children side by side (the divider is a vertical line),
// Horizontal stacks them.
type Orientation string

const (
	Vertical   Orientation = "vertical"
	Horizontal Orientation = "horizontal"
)

// Opposite returns the orthogonal orientation.
func (o Orientation) Opposite() Orientation {
	if o == Vertical {
		return Horizontal
	}
	return Vertical
}

// ParseOrientation accepts "vertical", "horizontal" and their first letters.
// An empty string parses to the empty orientation, which means "infer".
func ParseOrientation(s string) (Orientation, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return "", true
	case "v", "vertical":
		return Vertical, true
	case "h", "horizontal":
		return Horizontal, true
	}
	return "", false
}

// Node is one element of a page's binary space-partition tree.
// A split node has exactly two children and no content; a leaf has no
// children and at most one kind of content.
type Node struct {
	ID          string      `json:"id"`
	State       SplitState  `json:"splitState"`
	Orientation Orientation `json:"orientation,omitempty"`
	Children    []*Node     `json:"children,omitempty"`
	Size        Percent     `json:"size"`
	Content     *Content    `json:"content,omitempty"`
}

// UnmarshalJSON decodes a node whose missing size means DefaultPercent.
func (n *Node) UnmarshalJSON(data []byte) error {
	type plain Node
	v := plain{Size: DefaultPercent}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*n = Node(v)
	return nil
}

// NewLeaf returns an empty leaf occupying half of its parent.
func NewLeaf(id string) *Node {
	return &Node{ID: id, State: StateUnsplit, Size: DefaultPercent}
}

func (n *Node) IsSplit() bool { return n != nil && n.State == StateSplit }

func (n *Node) IsLeaf() bool { return n != nil && n.State != StateSplit }

// HasContent reports whether the node is a leaf carrying image or text.
func (n *Node) HasContent() bool {
	return n.IsLeaf() && !n.Content.IsEmpty()
}

// First returns the leading child, or nil for a leaf.
func (n *Node) First() *Node {
	if !n.IsSplit() || len(n.Children) < 1 {
		return nil
	}
	return n.Children[0]
}

// Second returns the trailing child, or nil for a leaf.
func (n *Node) Second() *Node {
	if !n.IsSplit() || len(n.Children) < 2 {
		return nil
	}
	return n.Children[1]
}

// MakeLeaf turns n into a leaf holding c. Size and id are kept.
func (n *Node) MakeLeaf(c *Content) {
	n.State = StateUnsplit
	n.Orientation = ""
	n.Children = nil
	n.Content = c.Clone()
}

// MakeSplit turns n into a container of a and b. Any content is dropped.
func (n *Node) MakeSplit(o Orientation, a, b *Node) {
	n.State = StateSplit
	n.Orientation = o
	n.Children = []*Node{a, b}
	n.Content = nil
}

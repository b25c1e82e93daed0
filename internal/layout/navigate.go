package layout

import (
	"math"

	"splitbook/internal/domain"
)

// Direction is a compass direction for focus movement.
type Direction string

const (
	Left  Direction = "left"
	Right Direction = "right"
	Up    Direction = "up"
	Down  Direction = "down"
)

// ParseDirection accepts the four names plus the vim keys h, j, k, l.
func ParseDirection(s string) (Direction, bool) {
	switch s {
	case "left", "h":
		return Left, true
	case "right", "l":
		return Right, true
	case "up", "k":
		return Up, true
	case "down", "j":
		return Down, true
	}
	return "", false
}

// secondaryWeight biases navigation toward aligned leaves over merely
// close ones.
const secondaryWeight = 2

// Nearest returns the leaf whose center lies strictly in direction dir from
// the focused leaf's center and minimizes primary + 2*secondary axis
// distance. It returns nil when nothing lies that way or focusedID is not a
// leaf of root.
func Nearest(root *domain.Node, bounds Rect, focusedID string, dir Direction) *domain.Node {
	focused := FindNodeByID(root, focusedID)
	if focused == nil || !focused.IsLeaf() {
		return nil
	}
	rects := Compute(root, bounds)
	fx, fy := rects[focusedID].Center()

	var best *domain.Node
	bestScore := math.Inf(1)
	for _, leaf := range Leaves(root) {
		if leaf.ID == focusedID {
			continue
		}
		cx, cy := rects[leaf.ID].Center()
		var primary, secondary float64
		switch dir {
		case Left:
			primary, secondary = fx-cx, math.Abs(cy-fy)
		case Right:
			primary, secondary = cx-fx, math.Abs(cy-fy)
		case Up:
			primary, secondary = fy-cy, math.Abs(cx-fx)
		case Down:
			primary, secondary = cy-fy, math.Abs(cx-fx)
		default:
			return nil
		}
		if primary <= 0 {
			continue
		}
		score := primary + secondaryWeight*secondary
		if score < bestScore {
			best, bestScore = leaf, score
		}
	}
	return best
}

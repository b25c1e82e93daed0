package layout

import (
	"errors"
	"fmt"
	"math"

	"splitbook/internal/domain"
)

// Validate checks every structural invariant and reports all violations
// joined into one error, or nil for a well-formed tree.
func Validate(root *domain.Node) error {
	if root == nil {
		return errors.New("nil root")
	}
	var errs []error
	seen := make(map[string]bool)
	Walk(root, func(n, _ *domain.Node) bool {
		if n.ID == "" {
			errs = append(errs, errors.New("node with empty id"))
		} else if seen[n.ID] {
			errs = append(errs, fmt.Errorf("duplicate id %s", n.ID))
		}
		seen[n.ID] = true

		switch n.State {
		case domain.StateSplit:
			if len(n.Children) != 2 || n.Children[0] == nil || n.Children[1] == nil {
				errs = append(errs, fmt.Errorf("%s: split node needs two children, has %d", n.ID, len(n.Children)))
				return false
			}
			if n.Orientation != domain.Vertical && n.Orientation != domain.Horizontal {
				errs = append(errs, fmt.Errorf("%s: split node has orientation %q", n.ID, n.Orientation))
			}
			if n.Content != nil {
				errs = append(errs, fmt.Errorf("%s: split node carries content", n.ID))
			}
			sum := n.Children[0].Size.Float() + n.Children[1].Size.Float()
			if math.Abs(sum-100) > domain.SumEpsilon {
				errs = append(errs, fmt.Errorf("%s: children sum to %.4f%%", n.ID, sum))
			}
		case domain.StateUnsplit:
			if len(n.Children) != 0 {
				errs = append(errs, fmt.Errorf("%s: leaf has %d children", n.ID, len(n.Children)))
			}
			if n.Orientation != "" {
				errs = append(errs, fmt.Errorf("%s: leaf has orientation %q", n.ID, n.Orientation))
			}
		default:
			errs = append(errs, fmt.Errorf("%s: unknown split state %q", n.ID, n.State))
		}
		return true
	})
	return errors.Join(errs...)
}

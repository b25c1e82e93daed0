package layout

import "splitbook/internal/domain"

// Normalize rescales every sibling pair so the two sizes add up to exactly
// 100. A pair whose total is not positive becomes 50/50.
func Normalize(root *domain.Node) {
	Walk(root, func(n, _ *domain.Node) bool {
		if n.IsSplit() && len(n.Children) == 2 {
			normalizePair(n.Children[0], n.Children[1])
		}
		return true
	})
}

func normalizePair(a, b *domain.Node) {
	sa, sb := clampPercent(a.Size.Float()), clampPercent(b.Size.Float())
	total := sa + sb
	if total <= 0 {
		a.Size, b.Size = domain.DefaultPercent, domain.DefaultPercent
		return
	}
	a.Size = domain.Percent(sa / total * 100)
	b.Size = 100 - a.Size
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

package layout

// Config holds the tunables of the resize engine.
type Config struct {
	// MinAreaPercent: committing a side at or below this share deletes it.
	MinAreaPercent float64 `json:"minAreaPercent"`
	// SnapDistancePx is how close, in pixels, a drag must come to a
	// candidate to snap onto it.
	SnapDistancePx float64 `json:"snapDistancePx"`
	// MinGapForRecursion is the smallest gap, in percent of the divider's
	// span, that still gets subdivided by SnapFractions.
	MinGapForRecursion float64 `json:"minGapForRecursion"`
	// SnapFractions are the points placed inside each subdivided gap.
	SnapFractions []float64 `json:"snapFractions"`
	// RecursionDepth bounds how often gaps are subdivided again.
	RecursionDepth int `json:"recursionDepth"`
	// EdgePercent places the near-collapse and near-full candidates.
	EdgePercent float64 `json:"edgePercent"`
	// KeyboardMinStep is the smallest move, in percent, of one nudge.
	KeyboardMinStep float64 `json:"keyboardMinStep"`
	// GlobalAlignment offers positions of parallel dividers on every page.
	GlobalAlignment bool `json:"globalAlignment"`
}

// DefaultConfig returns the tunables used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		MinAreaPercent:     2,
		SnapDistancePx:     12,
		MinGapForRecursion: 10,
		SnapFractions:      []float64{1.0 / 3, 1.0 / 2, 2.0 / 3},
		RecursionDepth:     2,
		EdgePercent:        1,
		KeyboardMinStep:    1,
		GlobalAlignment:    true,
	}
}

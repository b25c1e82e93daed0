package domain

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// DefaultPercent is used wherever a size is missing or unreadable.
const DefaultPercent Percent = 50

// SumEpsilon is the tolerance for two sibling sizes adding up to 100.
const SumEpsilon = 0.01

// Percent is a share (0-100) of the parent's extent along the parent's axis.
// On the wire it is a string such as "40%".
type Percent float64

// ParsePercent reads "40%", "40" or " 40.5 % ". Anything else yields
// DefaultPercent.
func ParsePercent(s string) Percent {
	s = strings.TrimSpace(s)
	s = strings.TrimSpace(strings.TrimSuffix(s, "%"))
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return DefaultPercent
	}
	return Percent(v)
}

func (p Percent) Float() float64 { return float64(p) }

// String rounds to six decimals so float noise from share arithmetic never
// reaches stored trees or text output.
func (p Percent) String() string {
	return strconv.FormatFloat(math.Round(float64(p)*1e6)/1e6, 'f', -1, 64) + "%"
}

func (p Percent) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

func (p *Percent) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*p = ParsePercent(s)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		*p = Percent(f)
		return nil
	}
	*p = DefaultPercent
	return nil
}

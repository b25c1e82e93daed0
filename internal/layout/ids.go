package layout

import (
	"strconv"
	"strings"

	"splitbook/internal/domain"
)

// DefaultIDPrefix is prepended to every allocated node id.
const DefaultIDPrefix = "n"

// IDAllocator hands out document-wide node ids. Ids are never reused: the
// counter only moves forward.
type IDAllocator struct {
	prefix string
	next   uint64
}

// NewIDAllocator starts allocating at next (values below 1 start at 1).
func NewIDAllocator(prefix string, next uint64) *IDAllocator {
	if next < 1 {
		next = 1
	}
	return &IDAllocator{prefix: prefix, next: next}
}

// Next returns a fresh id.
func (a *IDAllocator) Next() string {
	id := a.prefix + strconv.FormatUint(a.next, 10)
	a.next++
	return id
}

// Peek returns the counter value the next id will use.
func (a *IDAllocator) Peek() uint64 { return a.next }

// Observe moves the counter past any prefixed numeric id already in root.
func (a *IDAllocator) Observe(root *domain.Node) {
	Walk(root, func(n, _ *domain.Node) bool {
		if !strings.HasPrefix(n.ID, a.prefix) {
			return true
		}
		v, err := strconv.ParseUint(strings.TrimPrefix(n.ID, a.prefix), 10, 64)
		if err == nil && v >= a.next {
			a.next = v + 1
		}
		return true
	})
}

package reconcile

import (
	"github.com/ginjaninja78/community-order-filter/internal/types"
)

// Groups collects order lines by order number while remembering the order in
// which each order number was first seen.
type Groups struct {
	keys  []string
	lines map[string][]types.OrderLine
}

// NewGroups returns an empty container.
func NewGroups() *Groups {
	return &Groups{lines: make(map[string][]types.OrderLine)}
}

// GroupLines groups lines by order number in first-occurrence order.
func GroupLines(lines []types.OrderLine) *Groups {
	g := NewGroups()
	for _, l := range lines {
		g.Add(l)
	}
	return g
}

// Add appends line to its order's group.
func (g *Groups) Add(line types.OrderLine) {
	key := line.OrderNumber
	if _, ok := g.lines[key]; !ok {
		g.keys = append(g.keys, key)
	}
	g.lines[key] = append(g.lines[key], line)
}

// Len is the number of distinct orders.
func (g *Groups) Len() int {
	return len(g.keys)
}

// Each calls fn for every group in first-occurrence order.
func (g *Groups) Each(fn func(order string, lines []types.OrderLine)) {
	for _, k := range g.keys {
		fn(k, g.lines[k])
	}
}

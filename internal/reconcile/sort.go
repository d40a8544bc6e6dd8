package reconcile

import (
	"sort"

	"github.com/ginjaninja78/community-order-filter/internal/flat"
	"github.com/ginjaninja78/community-order-filter/internal/types"
)

type orderGroup struct {
	key   flat.Key
	lines []types.OrderLine
}

// GroupAndSort groups lines by order number and orders the groups by the
// parsed flat of each group's first line: tower, then floor, then apartment.
// Equal keys keep their first-occurrence order. When emptyLast is set, groups
// whose first line has a blank flat go after all others.
//
// The returned slice is the flattened group sequence; lines inside a group
// keep their original order.
func GroupAndSort(lines []types.OrderLine, emptyLast bool) []types.OrderLine {
	g := GroupLines(lines)

	groups := make([]orderGroup, 0, g.Len())
	g.Each(func(_ string, ls []types.OrderLine) {
		groups = append(groups, orderGroup{key: flat.Parse(ls[0].FlatNumber), lines: ls})
	})

	sort.SliceStable(groups, func(i, j int) bool {
		a, b := groups[i].key, groups[j].key
		if emptyLast && a.IsEmpty != b.IsEmpty {
			return b.IsEmpty
		}
		if emptyLast && a.IsEmpty && b.IsEmpty {
			return false
		}
		return flat.Compare(a, b) < 0
	})

	out := make([]types.OrderLine, 0, len(lines))
	for _, grp := range groups {
		out = append(out, grp.lines...)
	}
	return out
}

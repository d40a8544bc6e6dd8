package reconcile

import (
	"strings"

	"github.com/ginjaninja78/community-order-filter/internal/types"
)

// DefaultTowerLabels are the tower letters that get their own sheet.
// I and O are not used as tower letters.
var DefaultTowerLabels = []string{"A", "B", "C", "D", "E", "F", "G", "H", "J", "K", "L", "M", "N", "P"}

// TowerRows is the slice of report rows belonging to one tower.
type TowerRows struct {
	Label string
	Rows  []types.OutputRow
}

// PartitionTowers assigns each row to the label its flat starts with
// (case-insensitive). Towers without rows are omitted; the result follows
// label order, and rows keep their input order within a tower. A row whose
// flat starts with no label lands nowhere.
func PartitionTowers(rows []types.OutputRow, labels []string) []TowerRows {
	var out []TowerRows
	for _, label := range labels {
		prefix := strings.ToUpper(strings.TrimSpace(label))
		if prefix == "" {
			continue
		}
		var matched []types.OutputRow
		for _, r := range rows {
			if strings.HasPrefix(strings.ToUpper(strings.TrimSpace(r.Flat)), prefix) {
				matched = append(matched, r)
			}
		}
		if len(matched) > 0 {
			out = append(out, TowerRows{Label: prefix, Rows: matched})
		}
	}
	return out
}

package directory

import (
	"strings"

	"github.com/ginjaninja78/community-order-filter/internal/types"
)

// Update returns the directory entries followed by one new entry for each
// mobile number in rows that the directory does not already know and that
// carries a non-blank flat. A number listed with a blank flat counts as
// known. Each number is added at most once, with the flat of its first
// qualifying row. The second return value holds only the additions.
//
// Feeding the result back in as the directory adds nothing further.
func (d *Directory) Update(rows []types.OutputRow) (updated, added []types.DirectoryEntry) {
	seen := make(map[string]struct{})

	for _, r := range rows {
		mobile := strings.TrimSpace(r.Mobile)
		flat := strings.TrimSpace(r.Flat)
		if mobile == "" || flat == "" || d.Known(mobile) {
			continue
		}
		if _, ok := seen[mobile]; ok {
			continue
		}
		seen[mobile] = struct{}{}
		added = append(added, types.DirectoryEntry{Mobile: mobile, Flat: flat})
	}

	updated = make([]types.DirectoryEntry, 0, len(d.entries)+len(added))
	updated = append(updated, d.entries...)
	updated = append(updated, added...)
	return updated, added
}

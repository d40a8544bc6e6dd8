// =============================================================================
// Community Order Filter - Customer Directory
// =============================================================================
//
// The directory maps a resident's mobile number to their flat identifier. It
// is read once per run from the directory sheet and is never mutated; the
// Updater produces a new entry list instead.
//
// LOOKUP RULES:
//   - Mobile and flat values are trimmed.
//   - Rows with a blank mobile number are ignored.
//   - Duplicate mobile numbers: the last row wins.
//   - An entry whose flat is blank is kept (it still counts as a known
//     customer for the Updater) but Lookup reports it as absent.
//
// =============================================================================

package directory

import (
	"strings"

	"github.com/ginjaninja78/community-order-filter/internal/tabular"
	"github.com/ginjaninja78/community-order-filter/internal/types"
)

// Directory is an immutable mobile -> flat mapping.
type Directory struct {
	entries    []types.DirectoryEntry
	flats      map[string]string
	duplicates []string
}

// ReadEntries extracts directory rows from a sheet, in sheet order, with
// values trimmed. Missing columns read as empty.
func ReadEntries(t *tabular.Table) []types.DirectoryEntry {
	mobileCol := t.Column(types.ColDirMobile)
	flatCol := t.Column(types.ColDirFlat)

	rows := t.Rows()
	out := make([]types.DirectoryEntry, 0, len(rows))
	for _, r := range rows {
		out = append(out, types.DirectoryEntry{
			Mobile: r.Text(mobileCol),
			Flat:   r.Text(flatCol),
		})
	}
	return out
}

// New builds a Directory from entries in source order.
func New(entries []types.DirectoryEntry) *Directory {
	d := &Directory{
		entries: entries,
		flats:   make(map[string]string, len(entries)),
	}
	for _, e := range entries {
		mobile := strings.TrimSpace(e.Mobile)
		if mobile == "" {
			continue
		}
		if _, seen := d.flats[mobile]; seen {
			d.duplicates = append(d.duplicates, mobile)
		}
		d.flats[mobile] = strings.TrimSpace(e.Flat)
	}
	return d
}

// Lookup returns the flat for mobile. ok is false when the number is unknown
// or its flat is blank.
func (d *Directory) Lookup(mobile string) (flat string, ok bool) {
	flat = d.flats[strings.TrimSpace(mobile)]
	return flat, flat != ""
}

// Known reports whether mobile appears in the directory at all.
func (d *Directory) Known(mobile string) bool {
	_, ok := d.flats[strings.TrimSpace(mobile)]
	return ok
}

// Len is the number of distinct mobile numbers.
func (d *Directory) Len() int {
	return len(d.flats)
}

// Duplicates lists mobile numbers that appeared more than once, in the order
// their repeats were seen.
func (d *Directory) Duplicates() []string {
	return d.duplicates
}

// =============================================================================
// Community Order Filter - Order Reconciliation Engine
// =============================================================================
//
// The engine takes the raw order lines and the customer directory and splits
// the lines into three buckets:
//
//   - main:       the mobile number resolves to a flat in the directory and
//                 the shipping address does not contradict it
//   - new number: the mobile number is unknown to the directory
//   - flagged:    the digits in the shipping address differ from the digits
//                 of the directory flat
//
// PROCESSING ORDER:
//   1. Drop lines with an excluded status (COMPLETED / REJECTED)
//   2. Validate each line's address against the directory
//   3. Split valid lines into main / new number
//   4. Replace the flat of main lines with the directory flat
//   5. Aggregate totals: one table for valid lines, one for flagged lines
//   6. Group by order number and sort each valid bucket by flat
//
// The engine holds no state between runs. Totals are returned as read-only
// tables for the row transformer.
//
// =============================================================================

package reconcile

import (
	"strings"

	"github.com/ginjaninja78/community-order-filter/internal/directory"
	"github.com/ginjaninja78/community-order-filter/internal/flat"
	"github.com/ginjaninja78/community-order-filter/internal/types"
)

// DefaultExcludedStatuses are the order statuses that never reach a report.
var DefaultExcludedStatuses = []string{"COMPLETED", "REJECTED"}

// Options configures a reconciliation run.
type Options struct {
	// ExcludedStatuses are compared trimmed and case-insensitively.
	ExcludedStatuses []string
}

// DefaultOptions returns the standard exclusion list.
func DefaultOptions() Options {
	return Options{ExcludedStatuses: DefaultExcludedStatuses}
}

// Result is the outcome of one reconciliation.
type Result struct {
	// Input is the number of lines received; Excluded were dropped by status.
	Input    int
	Excluded int

	// Main and NewNumber are grouped by order and sorted by flat.
	Main      []types.OrderLine
	NewNumber []types.OrderLine

	// Flagged keeps the order in which lines were read.
	Flagged []types.OrderLine

	// Totals covers main and new-number lines; FlaggedTotals covers
	// flagged lines only.
	Totals        types.OrderTotals
	FlaggedTotals types.OrderTotals
}

// Valid returns the main lines followed by the new-number lines.
func (r *Result) Valid() []types.OrderLine {
	out := make([]types.OrderLine, 0, len(r.Main)+len(r.NewNumber))
	out = append(out, r.Main...)
	return append(out, r.NewNumber...)
}

// bucketOf reports which bucket a line was assigned to, by source row number.
func (r *Result) bucketOf(rowNumber int) (types.Bucket, bool) {
	for _, set := range []struct {
		b     types.Bucket
		lines []types.OrderLine
	}{
		{types.BucketMain, r.Main},
		{types.BucketNewNumber, r.NewNumber},
		{types.BucketFlagged, r.Flagged},
	} {
		for _, l := range set.lines {
			if l.RowNumber == rowNumber {
				return set.b, true
			}
		}
	}
	return 0, false
}

// Engine reconciles order lines against a directory.
type Engine struct {
	opts     Options
	excluded map[string]struct{}
}

// NewEngine builds an engine from opts; an empty exclusion list falls back
// to DefaultExcludedStatuses.
func NewEngine(opts Options) *Engine {
	if len(opts.ExcludedStatuses) == 0 {
		opts.ExcludedStatuses = DefaultExcludedStatuses
	}
	e := &Engine{opts: opts, excluded: make(map[string]struct{})}
	for _, s := range opts.ExcludedStatuses {
		e.excluded[strings.ToUpper(strings.TrimSpace(s))] = struct{}{}
	}
	return e
}

// Excluded reports whether status removes a line from the run.
func (e *Engine) Excluded(status string) bool {
	_, ok := e.excluded[strings.ToUpper(strings.TrimSpace(status))]
	return ok
}

// Reconcile runs the full bucket / aggregate / sort sequence. The input
// slice is not modified.
func (e *Engine) Reconcile(lines []types.OrderLine, dir *directory.Directory) *Result {
	res := &Result{Input: len(lines)}

	var main, newNumber []types.OrderLine
	for _, line := range lines {
		if e.Excluded(line.Status) {
			res.Excluded++
			continue
		}

		dirFlat, known := dir.Lookup(line.Mobile)
		if !AddressMatches(line.ShippingAddress, dirFlat, known) {
			res.Flagged = append(res.Flagged, line)
			continue
		}

		if known {
			line.FlatNumber = dirFlat
			main = append(main, line)
		} else {
			newNumber = append(newNumber, line)
		}
	}

	valid := make([]types.OrderLine, 0, len(main)+len(newNumber))
	valid = append(valid, main...)
	valid = append(valid, newNumber...)
	res.Totals = types.TotalsOf(valid)
	res.FlaggedTotals = types.TotalsOf(res.Flagged)

	res.Main = GroupAndSort(main, true)
	res.NewNumber = GroupAndSort(newNumber, false)
	return res
}

// AddressMatches decides whether a line is valid against the directory flat
// for its mobile number. Lines without a directory flat, and lines without
// an address, are always valid. Otherwise the first digit run of the
// address must equal the first digit run of the flat.
func AddressMatches(address, dirFlat string, known bool) bool {
	if !known {
		return true
	}
	address = strings.TrimSpace(address)
	if address == "" {
		return true
	}
	a := flat.ExtractLeadingDigits(address)
	f := flat.ExtractLeadingDigits(dirFlat)
	return a != "" && f != "" && a == f
}

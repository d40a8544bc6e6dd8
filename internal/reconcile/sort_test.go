package reconcile

import (
	"testing"

	"github.com/ginjaninja78/community-order-filter/internal/types"
)

func TestGroupAndSortOrdersByFlat(t *testing.T) {
	lines := []types.OrderLine{
		{OrderNumber: "O1", FlatNumber: "B101"},
		{OrderNumber: "O2", FlatNumber: "A1007"},
		{OrderNumber: "O1", FlatNumber: "Z999"},
		{OrderNumber: "O3", FlatNumber: "A204"},
		{OrderNumber: "O4", FlatNumber: "a204"},
		{OrderNumber: "O5", FlatNumber: "A301"},
	}

	got := orderNumbers(GroupAndSort(lines, false))
	want := []string{"O3", "O4", "O5", "O2", "O1", "O1"}
	if !equalStrings(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestGroupAndSortKeepsGroupLineOrder(t *testing.T) {
	lines := []types.OrderLine{
		{OrderNumber: "O1", FlatNumber: "B101", ProductName: "first"},
		{OrderNumber: "O2", FlatNumber: "A101"},
		{OrderNumber: "O1", FlatNumber: "A000", ProductName: "second"},
	}
	out := GroupAndSort(lines, false)
	if out[1].ProductName != "first" || out[2].ProductName != "second" {
		t.Errorf("group lines reordered: %+v", out)
	}
}

func TestGroupAndSortEmptyLast(t *testing.T) {
	lines := []types.OrderLine{
		{OrderNumber: "E1", FlatNumber: ""},
		{OrderNumber: "O1", FlatNumber: "P101"},
		{OrderNumber: "E2", FlatNumber: "  "},
		{OrderNumber: "O2", FlatNumber: "A101"},
	}

	if got := orderNumbers(GroupAndSort(lines, true)); !equalStrings(got, []string{"O2", "O1", "E1", "E2"}) {
		t.Errorf("emptyLast order = %v", got)
	}
	// without emptyLast a blank tower sorts before any letter
	if got := orderNumbers(GroupAndSort(lines, false)); !equalStrings(got, []string{"E1", "E2", "O2", "O1"}) {
		t.Errorf("default order = %v", got)
	}
}

func TestPartitionTowers(t *testing.T) {
	rows := []types.OutputRow{
		{OrderNumber: "1", Flat: "b101"},
		{OrderNumber: "2", Flat: "A204"},
		{OrderNumber: "3", Flat: "I101"},
		{OrderNumber: "4", Flat: "O202"},
		{OrderNumber: "5", Flat: ""},
		{OrderNumber: "6", Flat: "B102"},
	}

	got := PartitionTowers(rows, DefaultTowerLabels)
	if len(got) != 2 {
		t.Fatalf("towers = %+v, want A and B only", got)
	}
	if got[0].Label != "A" || len(got[0].Rows) != 1 {
		t.Errorf("tower A = %+v", got[0])
	}
	if got[1].Label != "B" || len(got[1].Rows) != 2 || got[1].Rows[0].OrderNumber != "1" {
		t.Errorf("tower B = %+v", got[1])
	}
}

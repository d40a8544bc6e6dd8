package validation

import (
	"strings"
	"testing"

	"github.com/ginjaninja78/community-order-filter/internal/types"
)

type headerSet map[string]bool

func (h headerSet) MissingColumns(want []string) []string {
	var missing []string
	for _, name := range want {
		if !h[name] {
			missing = append(missing, name)
		}
	}
	return missing
}

func TestCheckHeaders(t *testing.T) {
	res := CheckHeaders("Cust_Data", headerSet{"Mb No": true}, []string{"Mb No", "Flat No"})
	if !res.IsValid {
		t.Error("missing columns must not invalidate the run")
	}
	if res.WarningCount != 1 || res.Errors[0].Field != "Flat No" {
		t.Fatalf("warnings = %+v", res.Errors)
	}
	if !strings.Contains(res.Errors[0].Error(), "Sheet 'Cust_Data', Field 'Flat No'") {
		t.Errorf("message = %q", res.Errors[0].Error())
	}
}

func TestCheckOrderLines(t *testing.T) {
	lines := []types.OrderLine{
		{RowNumber: 2, OrderNumber: "O1", Mobile: "900", ItemCount: "2 pcs", Price: "1,200"},
		{RowNumber: 3, OrderNumber: "", Mobile: "", ItemCount: "two", Price: ""},
	}
	res := CheckOrderLines("Orders", lines)

	if res.WarningCount != 3 {
		t.Fatalf("warnings = %d, want 3:\n%s", res.WarningCount, FormatErrors(res.Errors))
	}
	for _, e := range res.Errors {
		if e.RowNumber != 3 {
			t.Errorf("unexpected finding on row %d: %s", e.RowNumber, e.Error())
		}
	}
}

func TestMerge(t *testing.T) {
	a := CheckHeaders("s", headerSet{}, []string{"x"})
	b := CheckHeaders("s", headerSet{}, []string{"y", "z"})
	a.Merge(b)
	if a.WarningCount != 3 || len(a.Errors) != 3 {
		t.Errorf("merged = %d/%d", a.WarningCount, len(a.Errors))
	}
}

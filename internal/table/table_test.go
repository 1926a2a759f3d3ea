package table

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

/*
TestNormalizeName covers the canonicalization contract:
  - lowercase,
  - every maximal run of non-alphanumeric runes becomes one underscore,
  - leading/trailing separators are stripped,
  - the function is idempotent.
*/
func TestNormalizeName(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"Lineitem quantity", "lineitem_quantity"},
		{"Financial Status", "financial_status"},
		{"  Billing -- ZIP  ", "billing_zip"},
		{"a__b", "a_b"},
		{"QTY", "qty"},
		{"Total (USD)", "total_usd"},
		{"__x__", "x"},
		{"", ""},
		{"###", ""},
		{"Straße", "straße"},
	}
	for _, c := range cases {
		got := NormalizeName(c.in)
		if got != c.want {
			t.Errorf("NormalizeName(%q)=%q; want %q", c.in, got, c.want)
		}
		if again := NormalizeName(got); again != got {
			t.Errorf("NormalizeName not idempotent for %q: %q -> %q", c.in, got, again)
		}
	}
}

func TestRowGetDefault(t *testing.T) {
	r := Row{"sku": "A-1"}
	if got := r.Get("sku"); got != "A-1" {
		t.Fatalf("Get(sku)=%q; want A-1", got)
	}
	if got := r.Get("nope"); got != "" {
		t.Fatalf("Get on unknown column = %q; want empty", got)
	}
}

/*
TestRenameColumn verifies the documented collision policy: renaming onto an
existing name drops the old target column, and the renamed column keeps its
own position in the order.
*/
func TestRenameColumn(t *testing.T) {
	tbl := &Table{
		Columns: []string{"a", "b", "c"},
		Rows: []Row{
			{"a": "1", "b": "2", "c": "3"},
		},
	}

	tbl.RenameColumn("b", "c") // c already exists; last rename wins
	wantCols := []string{"a", "c"}
	if diff := cmp.Diff(wantCols, tbl.Columns); diff != "" {
		t.Fatalf("columns mismatch (-want +got):\n%s", diff)
	}
	if got := tbl.Rows[0].Get("c"); got != "2" {
		t.Fatalf("c=%q after rename; want value from b (2)", got)
	}

	// Renaming a missing column is a no-op.
	tbl.RenameColumn("missing", "x")
	if diff := cmp.Diff(wantCols, tbl.Columns); diff != "" {
		t.Fatalf("no-op rename changed columns (-want +got):\n%s", diff)
	}
}

func TestSetColumn(t *testing.T) {
	tbl := &Table{
		Columns: []string{"a"},
		Rows:    []Row{{"a": "1"}, {"a": "2"}},
	}
	tbl.SetColumn("b", []string{"x", "y"})
	if diff := cmp.Diff([]string{"a", "b"}, tbl.Columns); diff != "" {
		t.Fatalf("columns mismatch (-want +got):\n%s", diff)
	}
	if tbl.Rows[1].Get("b") != "y" {
		t.Fatalf("row 1 b=%q; want y", tbl.Rows[1].Get("b"))
	}

	// Overwriting keeps the column's position.
	tbl.SetColumn("a", []string{"9", "8"})
	if diff := cmp.Diff([]string{"a", "b"}, tbl.Columns); diff != "" {
		t.Fatalf("overwrite moved columns (-want +got):\n%s", diff)
	}
	if tbl.Rows[0].Get("a") != "9" {
		t.Fatalf("row 0 a=%q; want 9", tbl.Rows[0].Get("a"))
	}
}

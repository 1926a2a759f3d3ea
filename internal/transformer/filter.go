package transformer

import (
	"strconv"
	"strings"

	"supplierfeed/internal/table"
)

// StatusFilter keeps or drops rows by matching a status column against a
// configured set. Matching is case-insensitive on both sides.
type StatusFilter struct {
	// Column is the normalized status column, e.g. "financial_status".
	Column string

	// Statuses is the configured status set.
	Statuses []string

	// Exclude inverts the match: rows whose status is in the set are dropped.
	Exclude bool
}

func (f StatusFilter) Name() string {
	if f.Exclude {
		return "exclude_" + f.Column
	}
	return "include_" + f.Column
}

func (f StatusFilter) Apply(t *table.Table) (*table.Table, error) {
	if len(f.Statuses) == 0 {
		return t, nil
	}
	if !t.HasColumn(f.Column) {
		return nil, &MissingColumnError{Column: f.Column, Stage: f.Name()}
	}
	want := make(map[string]struct{}, len(f.Statuses))
	for _, s := range f.Statuses {
		want[strings.ToLower(s)] = struct{}{}
	}
	out := &table.Table{Columns: t.Columns}
	for _, row := range t.Rows {
		_, in := want[strings.ToLower(row.Get(f.Column))]
		if in != f.Exclude {
			out.Rows = append(out.Rows, row)
		}
	}
	return out, nil
}

// quantityColumns are tried in order by MinQuantity.
var quantityColumns = []string{"lineitem_quantity", "qty"}

// MinQuantity keeps rows whose quantity is at least Threshold (inclusive).
// Non-numeric and missing quantities count as zero, and the coerced integer
// is written back so the output carries canonical quantities.
type MinQuantity struct {
	Threshold int
}

func (MinQuantity) Name() string { return "min_quantity" }

func (f MinQuantity) Apply(t *table.Table) (*table.Table, error) {
	col := ""
	for _, c := range quantityColumns {
		if t.HasColumn(c) {
			col = c
			break
		}
	}
	if col == "" {
		return nil, &MissingColumnError{
			Column: strings.Join(quantityColumns, " or "),
			Stage:  f.Name(),
		}
	}
	out := &table.Table{Columns: t.Columns}
	for _, row := range t.Rows {
		qty := 0
		if v, err := strconv.ParseFloat(strings.TrimSpace(row.Get(col)), 64); err == nil {
			qty = int(v)
		}
		if qty >= f.Threshold {
			row[col] = strconv.Itoa(qty)
			out.Rows = append(out.Rows, row)
		}
	}
	return out, nil
}

package transformer

import "supplierfeed/internal/table"

// Shape restricts and reorders the table's columns to exactly Order. Names
// absent from the table are created empty in every row; columns not listed
// are dropped. An empty Order leaves the table untouched.
type Shape struct {
	Order []string
}

func (Shape) Name() string { return "columns_order" }

func (s Shape) Apply(t *table.Table) (*table.Table, error) {
	if len(s.Order) == 0 {
		return t, nil
	}
	out := &table.Table{
		Columns: append([]string(nil), s.Order...),
		Rows:    make([]table.Row, len(t.Rows)),
	}
	for i, row := range t.Rows {
		shaped := make(table.Row, len(s.Order))
		for _, c := range s.Order {
			shaped[c] = row.Get(c)
		}
		out.Rows[i] = shaped
	}
	return out, nil
}

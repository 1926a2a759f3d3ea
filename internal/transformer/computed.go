package transformer

import (
	"supplierfeed/internal/config"
	"supplierfeed/internal/expr"
	"supplierfeed/internal/table"
)

// Computed evaluates configured expressions to populate new columns (or
// overwrite existing ones). Columns are produced in declaration order, each
// fully before the next, so a later expression can reference an earlier
// computed column's value for the same row.
//
// Expressions run in the sandbox defined by internal/expr: the only
// resolvable names are the table's current columns and the helpers in Funcs.
type Computed struct {
	// Fields holds (column name, expression source) in declaration order.
	Fields config.OrderedMap

	// Funcs is the helper allow-list. Nil means expr.Builtins().
	Funcs map[string]expr.Func
}

func (Computed) Name() string { return "computed" }

func (c Computed) Apply(t *table.Table) (*table.Table, error) {
	if len(c.Fields) == 0 {
		return t, nil
	}
	funcs := c.Funcs
	if funcs == nil {
		funcs = expr.Builtins()
	}
	for _, f := range c.Fields {
		prog, err := expr.Parse(f.Value)
		if err != nil {
			return nil, &ComputationError{Column: f.Key, Row: -1, Err: err}
		}
		values := make([]string, len(t.Rows))
		for i, row := range t.Rows {
			env := expr.Env{
				Funcs: funcs,
				Lookup: func(name string) (string, bool) {
					if !t.HasColumn(name) {
						return "", false
					}
					return row.Get(name), true
				},
			}
			v, err := prog.Eval(env)
			if err != nil {
				return nil, &ComputationError{Column: f.Key, Row: i, Err: err}
			}
			values[i] = expr.Text(v)
		}
		t.SetColumn(f.Key, values)
	}
	return t, nil
}

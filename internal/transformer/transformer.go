// Package transformer contains the pipeline stages applied to a loaded order
// table: row filters, column renames, computed columns, output shaping, and
// the pre-write validator. Each stage is a small struct with typed fields,
// constructed from the supplier configuration by the pipeline.
package transformer

import "supplierfeed/internal/table"

// Stage transforms a table into its successor or fails the run with a typed
// error. Stages never retry and never partially apply.
type Stage interface {
	// Name identifies the stage in logs and error messages.
	Name() string

	Apply(*table.Table) (*table.Table, error)
}

// Chain is an ordered list of stages.
type Chain []Stage

// Apply runs each stage in order, feeding the output of one into the next.
// The first error aborts the chain.
func (c Chain) Apply(t *table.Table) (*table.Table, error) {
	out := t
	for _, s := range c {
		if s == nil {
			continue
		}
		var err error
		out, err = s.Apply(out)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

package transformer

import (
	"strconv"
	"strings"

	"supplierfeed/internal/table"
)

// Validate checks the shaped table against the supplier's declared
// constraints. It runs last, immediately before the writer, and stops at the
// first failing check so no output file is produced from bad data.
type Validate struct {
	// Required columns must exist and have a non-blank value in every row.
	Required []string

	// PositiveInt columns must hold a number > 0 in every row. A value that
	// does not parse as a number fails the check.
	PositiveInt []string

	// NonEmpty columns, when present in the table, must have no blank values.
	// Unlike Required, an absent column is fine.
	NonEmpty []string
}

func (Validate) Name() string { return "validate" }

func (v Validate) Apply(t *table.Table) (*table.Table, error) {
	for _, c := range v.Required {
		if !t.HasColumn(c) || anyBlank(t, c) {
			return nil, &ValidationError{Column: c, Reason: ReasonMissingValues}
		}
	}
	for _, c := range v.PositiveInt {
		if !t.HasColumn(c) {
			continue
		}
		for _, row := range t.Rows {
			n, err := strconv.ParseFloat(strings.TrimSpace(row.Get(c)), 64)
			if err != nil || n <= 0 {
				return nil, &ValidationError{Column: c, Reason: ReasonNotPositive}
			}
		}
	}
	for _, c := range v.NonEmpty {
		if t.HasColumn(c) && anyBlank(t, c) {
			return nil, &ValidationError{Column: c, Reason: ReasonEmptyValues}
		}
	}
	return t, nil
}

func anyBlank(t *table.Table, col string) bool {
	for _, row := range t.Rows {
		if strings.TrimSpace(row.Get(col)) == "" {
			return true
		}
	}
	return false
}

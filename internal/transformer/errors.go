package transformer

import "fmt"

// MissingColumnError reports a filter that needs a column the source table
// does not have. Renames deliberately do not raise this; a rename pair whose
// source is absent is skipped so one configuration can serve slightly
// different exports.
type MissingColumnError struct {
	// Column is the missing column's normalized name. For filters that try
	// several columns it lists the alternatives tried.
	Column string

	// Stage names the filter that needed the column.
	Stage string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("%s: requires column %q in source data", e.Stage, e.Column)
}

// ComputationError reports a computed-column expression that failed to
// compile or to evaluate for some row. Row is -1 for compile failures.
type ComputationError struct {
	Column string
	Row    int
	Err    error
}

func (e *ComputationError) Error() string {
	if e.Row < 0 {
		return fmt.Sprintf("computed column %q: %v", e.Column, e.Err)
	}
	return fmt.Sprintf("computed column %q, row %d: %v", e.Column, e.Row, e.Err)
}

func (e *ComputationError) Unwrap() error { return e.Err }

// Validation failure reasons.
const (
	ReasonMissingValues = "missing_values"
	ReasonNotPositive   = "not_positive"
	ReasonEmptyValues   = "empty_values"
)

// ValidationError reports a shaped-table constraint violation. The validator
// stops at the first failing check, so a run surfaces one violation at a time.
type ValidationError struct {
	Column string
	Reason string
}

func (e *ValidationError) Error() string {
	switch e.Reason {
	case ReasonMissingValues:
		return fmt.Sprintf("validation failed: required column %q has missing values", e.Column)
	case ReasonNotPositive:
		return fmt.Sprintf("validation failed: column %q must be > 0", e.Column)
	case ReasonEmptyValues:
		return fmt.Sprintf("validation failed: column %q has empty values", e.Column)
	}
	return fmt.Sprintf("validation failed: column %q: %s", e.Column, e.Reason)
}

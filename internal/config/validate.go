// This file adds a lightweight linter for supplier configurations. It
// performs static checks over a decoded Config and returns a list of issues
// (errors and warnings) that the CLI surfaces before a run, or on demand via
// the -validate flag.
package config

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/encoding/htmlindex"

	"supplierfeed/internal/expr"
)

// IssueSeverity represents the severity of a configuration issue.
type IssueSeverity string

const (
	// SeverityError indicates an issue that will make the run fail.
	SeverityError IssueSeverity = "error"
	// SeverityWarning indicates an issue worth surfacing that does not block
	// execution.
	SeverityWarning IssueSeverity = "warning"
)

// Issue describes a single lint finding. Path is a dotted path into the
// configuration (e.g. "mappings.computed.po_date").
type Issue struct {
	Severity IssueSeverity
	Path     string
	Message  string
}

// Error implements the error interface so an Issue can be treated as a
// single error where convenient.
func (i Issue) Error() string {
	return fmt.Sprintf("%s at %s: %s", i.Severity, i.Path, i.Message)
}

var placeholder = regexp.MustCompile(`\{[^{}]*\}`)

// Validate statically lints a configuration. It does not mutate cfg; callers
// decide whether warnings block execution.
func Validate(cfg *Config) []Issue {
	var issues []Issue

	if cfg.Source.Encoding != "" {
		if _, err := htmlindex.Get(cfg.Source.Encoding); err != nil {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     "source.encoding",
				Message:  fmt.Sprintf("unknown charset %q", cfg.Source.Encoding),
			})
		}
	}
	if len(cfg.Source.Delimiter) > 0 && len([]rune(cfg.Source.Delimiter)) > 1 {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "source.delimiter",
			Message:  fmt.Sprintf("delimiter %q is longer than one character; only the first is used", cfg.Source.Delimiter),
		})
	}

	if mq := cfg.Filters.MinQuantity; mq != nil && *mq < 0 {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "filters.min_quantity",
			Message:  fmt.Sprintf("threshold %d is negative; every row passes", *mq),
		})
	}
	switch strings.ToLower(strings.TrimSpace(cfg.Filters.DedupeKeep)) {
	case "", "first", "last":
	default:
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "filters.dedupe_keep",
			Message:  fmt.Sprintf("unknown policy %q; falling back to \"last\"", cfg.Filters.DedupeKeep),
		})
	}
	if len(cfg.Filters.DedupeOn) == 0 && cfg.Filters.DedupeKeep != "" {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "filters.dedupe_keep",
			Message:  "dedupe_keep has no effect without dedupe_on",
		})
	}

	issues = append(issues, lintMapKeys(cfg.Mappings.Rename, "mappings.rename")...)
	issues = append(issues, lintMapKeys(cfg.Output.RenameFinal, "output.rename_final")...)
	issues = append(issues, lintComputed(cfg.Mappings.Computed)...)
	issues = append(issues, lintOutput(cfg.Output, cfg.Validation)...)
	issues = append(issues, lintDelivery(cfg.Delivery)...)

	return issues
}

// lintMapKeys flags duplicate sources in a rename map; the last one wins,
// which is rarely what the author meant.
func lintMapKeys(m OrderedMap, path string) []Issue {
	var issues []Issue
	seen := map[string]struct{}{}
	for _, e := range m {
		if _, dup := seen[e.Key]; dup {
			issues = append(issues, Issue{
				Severity: SeverityWarning,
				Path:     path + "." + e.Key,
				Message:  "duplicate source name; the last occurrence wins",
			})
		}
		seen[e.Key] = struct{}{}
	}
	return issues
}

// lintComputed compiles every computed expression so syntax errors surface at
// validate time rather than mid-run.
func lintComputed(m OrderedMap) []Issue {
	var issues []Issue
	for _, e := range m {
		if _, err := expr.Parse(e.Value); err != nil {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     "mappings.computed." + e.Key,
				Message:  fmt.Sprintf("expression does not parse: %v", err),
			})
		}
	}
	return issues
}

func lintOutput(out Output, val Validation) []Issue {
	var issues []Issue

	seen := map[string]struct{}{}
	for _, c := range out.ColumnsOrder {
		if _, dup := seen[c]; dup {
			issues = append(issues, Issue{
				Severity: SeverityWarning,
				Path:     "output.columns_order",
				Message:  fmt.Sprintf("column %q listed more than once", c),
			})
		}
		seen[c] = struct{}{}
	}

	// Validation against columns that the shaping step will have dropped is
	// either always-failing (required) or a silent no-op; both deserve a nudge.
	if len(out.ColumnsOrder) > 0 {
		for _, c := range val.Required {
			if _, ok := seen[c]; !ok {
				issues = append(issues, Issue{
					Severity: SeverityError,
					Path:     "validation.required",
					Message:  fmt.Sprintf("column %q is not in columns_order; validation will always fail", c),
				})
			}
		}
		for _, c := range append(append([]string{}, val.PositiveInt...), val.NonEmpty...) {
			if _, ok := seen[c]; !ok {
				issues = append(issues, Issue{
					Severity: SeverityWarning,
					Path:     "validation",
					Message:  fmt.Sprintf("column %q is not in columns_order; its check never runs", c),
				})
			}
		}
	}
	return issues
}

func lintDelivery(d Delivery) []Issue {
	var issues []Issue

	switch strings.ToLower(strings.TrimSpace(d.Format)) {
	case "", "csv", "xlsx":
	default:
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "delivery.format",
			Message:  fmt.Sprintf("unknown format %q; falling back to csv", d.Format),
		})
	}

	for _, ph := range placeholder.FindAllString(d.FilenamePattern, -1) {
		if ph != "{today}" {
			issues = append(issues, Issue{
				Severity: SeverityWarning,
				Path:     "delivery.filename_pattern",
				Message:  fmt.Sprintf("unknown placeholder %s is written literally", ph),
			})
		}
	}
	return issues
}

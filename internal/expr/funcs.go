package expr

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// InvalidDateError reports a non-empty date argument that could not be parsed
// where a parseable date was required.
type InvalidDateError struct {
	Value string
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("invalid date %q (want YYYY-MM-DD)", e.Value)
}

// Builtins returns the helper allow-list exposed to computed-column
// expressions. The returned map is fresh on every call so callers may extend
// it without affecting others.
func Builtins() map[string]Func {
	return map[string]Func{
		"to_date":      toDate,
		"po_date_plus": poDatePlus,
		"concat":       concatFn,
	}
}

// dateLayouts are tried in order by to_date. Timestamps from order exports
// commonly carry a time-of-day and sometimes a zone offset.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05 -0700",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	time.RFC3339,
	"2006/01/02",
	"01/02/2006",
	"02.01.2006",
	"Jan 2, 2006",
}

// toDate turns any date-like value into "YYYY-MM-DD". Empty input and values
// no layout can parse (including impossible calendar dates) degrade to "".
func toDate(args []Value) (Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("want 1 argument, got %d", len(args))
	}
	s := strings.TrimSpace(Text(args[0]))
	if s == "" {
		return "", nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02"), nil
		}
	}
	return "", nil
}

// poDatePlus shifts a YYYY-MM-DD date by a number of calendar days. Empty in,
// empty out; a non-empty unparseable date is an error, since it means the
// upstream expression produced garbage rather than a blank.
func poDatePlus(args []Value) (Value, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("want 2 arguments, got %d", len(args))
	}
	s := strings.TrimSpace(Text(args[0]))
	if s == "" {
		return "", nil
	}
	days, ok := args[1].(float64)
	if !ok {
		return nil, fmt.Errorf("days must be a number, got %s", typeName(args[1]))
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, &InvalidDateError{Value: s}
	}
	return t.AddDate(0, 0, int(days)).Format("2006-01-02"), nil
}

var innerSpace = regexp.MustCompile(`\s+`)

// concatFn joins all non-empty, non-"nan" parts with single spaces and
// collapses any internal runs of whitespace. "nan" shows up when a numeric
// cell was blank in the source export.
func concatFn(args []Value) (Value, error) {
	parts := make([]string, 0, len(args))
	for _, a := range args {
		s := Text(a)
		if s == "" || strings.EqualFold(s, "nan") {
			continue
		}
		parts = append(parts, s)
	}
	out := strings.Join(parts, " ")
	return strings.TrimSpace(innerSpace.ReplaceAllString(out, " ")), nil
}

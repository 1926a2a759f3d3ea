// Package table defines the in-memory tabular model shared by every pipeline
// stage: an ordered list of column names plus rows stored as string maps. All
// cell values are text; empty string doubles as the "absent" marker so stages
// can use a uniform lookup-with-default accessor instead of key probing.
package table

import (
	"regexp"
	"strings"
)

// Row maps column name to cell value. Missing keys and empty strings are
// equivalent from the stages' point of view.
type Row map[string]string

// Get returns the cell value for col, or "" when the row has no such column.
func (r Row) Get(col string) string {
	return r[col]
}

// Table is an ordered set of named columns over a slice of rows. Row order is
// preserved from the source except where a stage removes rows.
type Table struct {
	Columns []string
	Rows    []Row
}

// New returns an empty table with the given column order.
func New(columns []string) *Table {
	return &Table{Columns: columns}
}

// HasColumn reports whether name is one of the table's columns.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// ColumnIndex returns the position of name in the column order, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// SetColumn writes values[i] into column name of row i, appending the column
// to the order when it does not exist yet. len(values) must equal len(t.Rows).
func (t *Table) SetColumn(name string, values []string) {
	if !t.HasColumn(name) {
		t.Columns = append(t.Columns, name)
	}
	for i, row := range t.Rows {
		row[name] = values[i]
	}
}

// DropColumn removes name from the column order and from every row. It is a
// no-op when the column does not exist.
func (t *Table) DropColumn(name string) {
	idx := t.ColumnIndex(name)
	if idx < 0 {
		return
	}
	t.Columns = append(t.Columns[:idx], t.Columns[idx+1:]...)
	for _, row := range t.Rows {
		delete(row, name)
	}
}

// RenameColumn changes old to new in place, keeping old's position. When a
// column named new already exists it is dropped first, so the last applied
// rename wins. No-op when old does not exist.
func (t *Table) RenameColumn(old, new string) {
	idx := t.ColumnIndex(old)
	if idx < 0 || old == new {
		return
	}
	if t.HasColumn(new) {
		t.DropColumn(new)
		idx = t.ColumnIndex(old)
	}
	t.Columns[idx] = new
	for _, row := range t.Rows {
		row[new] = row[old]
		delete(row, old)
	}
}

var nonAlnum = regexp.MustCompile(`[^\pL\pN]+`)

// NormalizeName canonicalizes a column name: lowercase, every maximal run of
// non-alphanumeric runes collapsed to a single underscore, leading and
// trailing underscores stripped. Idempotent, so configured names and source
// headers can be compared after one pass each.
func NormalizeName(name string) string {
	s := nonAlnum.ReplaceAllString(strings.ToLower(name), "_")
	return strings.Trim(s, "_")
}

// Package loader reads a raw order export (CSV or XLSX) into a text-only
// table. Every cell stays a string exactly as exported, so values like ZIP
// codes keep their leading zeros, and every column name is normalized before
// any stage sees it.
package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"supplierfeed/internal/config"
	"supplierfeed/internal/table"
)

// UnreadableInputError reports a source file that could not be parsed in its
// declared format.
type UnreadableInputError struct {
	Path   string
	Format string
	Err    error
}

func (e *UnreadableInputError) Error() string {
	return fmt.Sprintf("cannot read %s input %s: %v", e.Format, e.Path, e.Err)
}

func (e *UnreadableInputError) Unwrap() error { return e.Err }

// Load reads the export at path, picking the format from the file extension
// (.xlsx/.xls => spreadsheet, anything else => CSV).
func Load(path string, src config.Source) (*table.Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xls":
		return loadXLSX(path, src)
	default:
		return loadCSV(path, src)
	}
}

func loadCSV(path string, src config.Source) (*table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &UnreadableInputError{Path: path, Format: "csv", Err: err}
	}
	defer f.Close()

	dec, err := decoderFor(src.Encoding)
	if err != nil {
		return nil, fmt.Errorf("source.encoding: %w", err)
	}
	cr := csv.NewReader(transform.NewReader(f, dec))
	if d := []rune(src.Delimiter); len(d) > 0 {
		cr.Comma = d[0]
	}

	header, err := cr.Read()
	if err != nil {
		return nil, &UnreadableInputError{Path: path, Format: "csv", Err: err}
	}
	names := headerNames(header)
	t := table.New(uniqueColumns(names))
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &UnreadableInputError{Path: path, Format: "csv", Err: err}
		}
		t.Rows = append(t.Rows, rowFromCells(names, rec))
	}
	return t, nil
}

func loadXLSX(path string, src config.Source) (*table.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &UnreadableInputError{Path: path, Format: "xlsx", Err: err}
	}
	defer f.Close()

	sheet := src.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, &UnreadableInputError{Path: path, Format: "xlsx", Err: fmt.Errorf("workbook has no sheets")}
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, &UnreadableInputError{Path: path, Format: "xlsx", Err: err}
	}
	if len(rows) == 0 {
		return nil, &UnreadableInputError{Path: path, Format: "xlsx", Err: fmt.Errorf("sheet %q has no header row", sheet)}
	}
	names := headerNames(rows[0])
	t := table.New(uniqueColumns(names))
	for _, rec := range rows[1:] {
		t.Rows = append(t.Rows, rowFromCells(names, rec))
	}
	return t, nil
}

// decoderFor resolves an IANA charset name to a transformer that also strips
// a leading BOM (and honors a BOM that contradicts the declared charset).
// An empty name means UTF-8.
func decoderFor(name string) (transform.Transformer, error) {
	if name == "" {
		return unicode.BOMOverride(unicode.UTF8.NewDecoder()), nil
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("unknown charset %q", name)
	}
	return unicode.BOMOverride(enc.NewDecoder()), nil
}

// headerNames normalizes a header row. Two raw names that normalize
// identically share one column; headers that normalize to nothing get a
// synthetic col_N name.
func headerNames(header []string) []string {
	names := make([]string, len(header))
	for i, h := range header {
		n := table.NormalizeName(h)
		if n == "" {
			n = fmt.Sprintf("col_%d", i)
		}
		names[i] = n
	}
	return names
}

// uniqueColumns keeps the first occurrence of each name, preserving order.
func uniqueColumns(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	cols := make([]string, 0, len(names))
	for _, n := range names {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		cols = append(cols, n)
	}
	return cols
}

// rowFromCells builds a row by assigning cells left to right, so when two
// source headers normalize to the same column the rightmost cell wins. Cells
// beyond the header width are dropped; short rows leave the remaining
// columns absent.
func rowFromCells(names []string, cells []string) table.Row {
	row := make(table.Row, len(names))
	for i, v := range cells {
		if i >= len(names) {
			break
		}
		row[names[i]] = v
	}
	return row
}

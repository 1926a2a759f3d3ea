package writer

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/xuri/excelize/v2"

	"supplierfeed/internal/config"
	"supplierfeed/internal/table"
)

var runDate = time.Date(2024, 3, 9, 15, 0, 0, 0, time.UTC)

func sampleTable() *table.Table {
	return &table.Table{
		Columns: []string{"Item Number", "qty"},
		Rows: []table.Row{
			{"Item Number": "A-1", "qty": "2"},
			{"Item Number": "B-2", "qty": "1"},
		},
	}
}

/*
TestWriteCSV: pattern substitution, directory creation, and the serialized
shape (header row + data rows in column order).
*/
func TestWriteCSV(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "nested", "out")
	d := config.Delivery{Format: "csv", FilenamePattern: "acme_{today}.csv"}

	path, err := Write(sampleTable(), outDir, d, runDate)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if filepath.Base(path) != "acme_20240309.csv" {
		t.Fatalf("filename=%s; want acme_20240309.csv", filepath.Base(path))
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	want := "Item Number,qty\nA-1,2\nB-2,1\n"
	if string(raw) != want {
		t.Fatalf("content=%q; want %q", raw, want)
	}
}

func TestWrite_Defaults(t *testing.T) {
	outDir := t.TempDir()

	// Unset format falls back to csv with the default dated name.
	path, err := Write(sampleTable(), outDir, config.Delivery{}, runDate)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if filepath.Base(path) != "supplier_20240309.csv" {
		t.Fatalf("filename=%s; want supplier_20240309.csv", filepath.Base(path))
	}

	// Unrecognized formats fall back to csv as well.
	path, err = Write(sampleTable(), outDir, config.Delivery{Format: "parquet", FilenamePattern: "x.out"}, runDate)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(raw[:16]) != "Item Number,qty\n" {
		t.Fatalf("fallback output is not csv: %q", raw[:16])
	}

	// Default xlsx name carries the xlsx extension.
	path, err = Write(sampleTable(), outDir, config.Delivery{Format: "xlsx"}, runDate)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if filepath.Base(path) != "supplier_20240309.xlsx" {
		t.Fatalf("filename=%s; want supplier_20240309.xlsx", filepath.Base(path))
	}
}

func TestWriteXLSX_RoundTrip(t *testing.T) {
	outDir := t.TempDir()
	d := config.Delivery{Format: "xlsx", FilenamePattern: "po_{today}.xlsx"}

	path, err := Write(sampleTable(), outDir, d, runDate)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer f.Close()
	rows, err := f.GetRows(sheetName)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	want := [][]string{
		{"Item Number", "qty"},
		{"A-1", "2"},
		{"B-2", "1"},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Fatalf("sheet mismatch (-want +got):\n%s", diff)
	}
}

func TestWrite_EmptyTableStillWrites(t *testing.T) {
	empty := &table.Table{Columns: []string{"a", "b"}}
	path, err := Write(empty, t.TempDir(), config.Delivery{}, runDate)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(raw) != "a,b\n" {
		t.Fatalf("content=%q; want header only", raw)
	}
}

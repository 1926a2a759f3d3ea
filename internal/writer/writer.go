// Package writer persists the shaped table as the supplier-facing file. The
// filename comes from the configured pattern, with "{today}" replaced by the
// run date; the format is CSV unless the configuration asks for xlsx.
package writer

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"supplierfeed/internal/config"
	"supplierfeed/internal/table"
)

const sheetName = "Sheet1"

// Write serializes t under outDir and returns the written path. The
// destination directory is created if needed. today is the run date used for
// filename substitution.
func Write(t *table.Table, outDir string, d config.Delivery, today time.Time) (string, error) {
	format := strings.ToLower(strings.TrimSpace(d.Format))
	if format != "xlsx" {
		format = "csv"
	}

	pattern := d.FilenamePattern
	if pattern == "" {
		pattern = "supplier_{today}." + format
	}
	name := strings.ReplaceAll(pattern, "{today}", today.Format("20060102"))

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	out := filepath.Join(outDir, name)

	var err error
	if format == "xlsx" {
		err = writeXLSX(t, out)
	} else {
		err = writeCSV(t, out)
	}
	if err != nil {
		return "", err
	}
	return out, nil
}

func writeCSV(t *table.Table, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(t.Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	rec := make([]string, len(t.Columns))
	for _, row := range t.Rows {
		for i, c := range t.Columns {
			rec[i] = row.Get(c)
		}
		if err := w.Write(rec); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return f.Close()
}

func writeXLSX(t *table.Table, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	header := make([]any, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, row := range t.Rows {
		rec := make([]any, len(t.Columns))
		for j, c := range t.Columns {
			rec[j] = row.Get(c)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("write row: %w", err)
		}
		if err := f.SetSheetRow(sheetName, cell, &rec); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

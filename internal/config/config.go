// Package config defines the typed, defaulted configuration model for a
// supplier feed run. One YAML document per supplier selects which rows of the
// raw order export survive, how columns are renamed and derived, the final
// column layout, the constraints checked before writing, and the output
// format/filename.
//
// Every section is optional; a zero value means "no-op for that stage". The
// document is decoded once into this struct at the start of a run, so stages
// never probe a raw map. Mappings whose application order is part of the
// contract (rename, computed, rename_final) decode through OrderedMap, which
// preserves YAML document order instead of Go map iteration order.
//
// Example (trimmed):
//
//	filters:
//	  include_financial_status: [paid]
//	  min_quantity: 1
//	mappings:
//	  rename: {"Lineitem sku": sku}
//	  computed:
//	    po_date: to_date(created_at)
//	    ship_by: po_date_plus(po_date, 5)
//	output:
//	  columns_order: [sku, po_date, ship_by]
//	delivery:
//	  format: csv
//	  filename_pattern: "acme_{today}.csv"
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrEmptyConfig reports a configuration file whose document is absent or
// null (for example a file someone created but never filled in).
var ErrEmptyConfig = errors.New("configuration is empty; add the supplier rules")

// Config is the top-level supplier configuration.
type Config struct {
	// Source tunes how the raw export is read. All fields optional.
	Source Source `yaml:"source"`

	// Filters selects which rows survive.
	Filters Filters `yaml:"filters"`

	// Mappings renames source columns and declares computed columns.
	Mappings Mappings `yaml:"mappings"`

	// Output controls the supplier-facing column names and order.
	Output Output `yaml:"output"`

	// Validation lists post-shaping constraints checked before writing.
	Validation Validation `yaml:"validation"`

	// Delivery selects the output format and filename.
	Delivery Delivery `yaml:"delivery"`
}

// Source holds reader options for the raw export file.
type Source struct {
	// Encoding is an IANA charset name (e.g. "windows-1252") applied when
	// reading CSV input. Empty means UTF-8.
	Encoding string `yaml:"encoding"`

	// Delimiter overrides the CSV field separator. First rune is used.
	Delimiter string `yaml:"delimiter"`

	// Sheet names the worksheet to read from XLSX input. Empty means the
	// workbook's first sheet.
	Sheet string `yaml:"sheet"`
}

// Filters holds the row-selection rules, applied in the field order below.
type Filters struct {
	// IncludeFinancialStatus keeps rows whose financial_status (lower-cased)
	// is in this set. Empty means keep all.
	IncludeFinancialStatus []string `yaml:"include_financial_status"`

	// ExcludeFulfillmentStatus drops rows whose fulfillment_status
	// (lower-cased) is in this set.
	ExcludeFulfillmentStatus []string `yaml:"exclude_fulfillment_status"`

	// MinQuantity keeps rows whose quantity column (lineitem_quantity, then
	// qty) is >= the threshold. Nil disables the filter; zero still runs it,
	// which also canonicalizes the quantity column to integers.
	MinQuantity *int `yaml:"min_quantity"`

	// DedupeOn collapses rows sharing the same values in these columns.
	DedupeOn []string `yaml:"dedupe_on"`

	// DedupeKeep selects the surviving duplicate: "first" or "last"
	// (default "last").
	DedupeKeep string `yaml:"dedupe_keep"`
}

// Mappings holds the column rename map and the computed-column expressions.
type Mappings struct {
	// Rename maps normalized source column names to intermediate names.
	// Pairs whose source is absent from the table are skipped; on target
	// collisions the last pair in document order wins.
	Rename OrderedMap `yaml:"rename"`

	// Computed maps new column names to expressions evaluated once per row,
	// in document order. Later columns may reference earlier ones.
	Computed OrderedMap `yaml:"computed"`
}

// Output holds the final shaping rules.
type Output struct {
	// RenameFinal applies a last rename pass before ordering.
	RenameFinal OrderedMap `yaml:"rename_final"`

	// ColumnsOrder, when non-empty, becomes the exact output column list:
	// missing columns are created empty, extras are dropped.
	ColumnsOrder []string `yaml:"columns_order"`
}

// Validation lists the constraint checks run against the shaped table.
type Validation struct {
	// Required columns must exist and have a non-blank value in every row.
	Required []string `yaml:"required"`

	// PositiveInt columns must parse as a number > 0 in every row.
	PositiveInt []string `yaml:"positive_int"`

	// NonEmpty columns, when present, must have no blank values.
	NonEmpty []string `yaml:"nonempty"`
}

// Delivery selects the output file format and name.
type Delivery struct {
	// Format is "csv" or "xlsx". Unset or unrecognized falls back to csv.
	Format string `yaml:"format"`

	// FilenamePattern names the output file; "{today}" is replaced with the
	// run date as YYYYMMDD. Empty means "supplier_{today}.<ext>".
	FilenamePattern string `yaml:"filename_pattern"`
}

// Entry is one key/value pair of an OrderedMap.
type Entry struct {
	Key   string
	Value string
}

// OrderedMap is a YAML mapping decoded into a slice of pairs so that
// document order survives. Go maps would shuffle it, and for rename and
// computed mappings the order is part of the configuration contract.
type OrderedMap []Entry

// UnmarshalYAML implements yaml.Unmarshaler by walking the mapping node's
// key/value children in document order.
func (m *OrderedMap) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == 0 || node.Tag == "!!null" {
		*m = nil
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping, got %s", node.Line, node.Tag)
	}
	out := make(OrderedMap, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		var k, v string
		if err := node.Content[i].Decode(&k); err != nil {
			return err
		}
		if err := node.Content[i+1].Decode(&v); err != nil {
			return err
		}
		out = append(out, Entry{Key: k, Value: v})
	}
	*m = out
	return nil
}

// Get returns the value for key and whether it was present.
func (m OrderedMap) Get(key string) (string, bool) {
	for _, e := range m {
		if e.Key == key {
			return e.Value, true
		}
	}
	return "", false
}

// Load reads and decodes the supplier configuration at path. A file whose
// YAML document is missing or null fails with ErrEmptyConfig.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(raw)
}

// Parse decodes a supplier configuration from raw YAML bytes.
func Parse(raw []byte) (*Config, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if doc.Kind == 0 || len(doc.Content) == 0 || doc.Content[0].Tag == "!!null" {
		return nil, ErrEmptyConfig
	}
	var cfg Config
	if err := doc.Content[0].Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, nil
}

package config

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

/*
TestParse_FullDocument decodes a representative supplier configuration and
checks each typed section, including that ordered mappings preserve YAML
document order (Go maps would not).
*/
func TestParse_FullDocument(t *testing.T) {
	raw := []byte(`
source:
  encoding: windows-1252
  delimiter: ";"
filters:
  include_financial_status: [paid, partially_refunded]
  exclude_fulfillment_status: [fulfilled]
  min_quantity: 2
  dedupe_on: [name, lineitem_sku]
mappings:
  rename:
    "Lineitem sku": sku
    "Lineitem quantity": qty
  computed:
    po_date: to_date(created_at)
    ship_by: po_date_plus(po_date, 7)
    zz_first_anyway: concat(sku)
output:
  rename_final:
    sku: "Item Number"
  columns_order: ["Item Number", qty]
validation:
  required: ["Item Number"]
  positive_int: [qty]
delivery:
  format: xlsx
  filename_pattern: "acme_{today}.xlsx"
`)
	cfg, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if cfg.Source.Encoding != "windows-1252" || cfg.Source.Delimiter != ";" {
		t.Fatalf("source mismatch: %+v", cfg.Source)
	}
	if cfg.Filters.MinQuantity == nil || *cfg.Filters.MinQuantity != 2 {
		t.Fatalf("min_quantity=%v; want 2", cfg.Filters.MinQuantity)
	}
	if diff := cmp.Diff([]string{"paid", "partially_refunded"}, cfg.Filters.IncludeFinancialStatus); diff != "" {
		t.Fatalf("include_financial_status mismatch (-want +got):\n%s", diff)
	}

	wantComputed := OrderedMap{
		{Key: "po_date", Value: "to_date(created_at)"},
		{Key: "ship_by", Value: "po_date_plus(po_date, 7)"},
		{Key: "zz_first_anyway", Value: "concat(sku)"},
	}
	if diff := cmp.Diff(wantComputed, cfg.Mappings.Computed); diff != "" {
		t.Fatalf("computed order mismatch (-want +got):\n%s", diff)
	}

	if v, ok := cfg.Mappings.Rename.Get("Lineitem sku"); !ok || v != "sku" {
		t.Fatalf("rename lookup = (%q, %v); want (sku, true)", v, ok)
	}
	if cfg.Delivery.Format != "xlsx" {
		t.Fatalf("delivery.format=%q; want xlsx", cfg.Delivery.Format)
	}
}

func TestParse_MissingSectionsDefault(t *testing.T) {
	cfg, err := Parse([]byte("delivery:\n  format: csv\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Filters.MinQuantity != nil {
		t.Fatalf("absent min_quantity decoded as %v; want nil", *cfg.Filters.MinQuantity)
	}
	if len(cfg.Mappings.Rename) != 0 || len(cfg.Output.ColumnsOrder) != 0 {
		t.Fatalf("absent sections not zero-valued: %+v", cfg)
	}
}

/*
TestParse_Empty: an empty or null document is ErrEmptyConfig — the file
exists but nobody filled it in, which deserves its own message.
*/
func TestParse_Empty(t *testing.T) {
	for _, raw := range []string{"", "\n", "# only a comment\n", "null\n", "~\n"} {
		_, err := Parse([]byte(raw))
		if !errors.Is(err, ErrEmptyConfig) {
			t.Errorf("Parse(%q) err=%v; want ErrEmptyConfig", raw, err)
		}
	}
}

func TestParse_MinQuantityZeroIsConfigured(t *testing.T) {
	cfg, err := Parse([]byte("filters:\n  min_quantity: 0\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Filters.MinQuantity == nil || *cfg.Filters.MinQuantity != 0 {
		t.Fatalf("min_quantity=%v; want explicit 0", cfg.Filters.MinQuantity)
	}
}

func TestParse_BadYAML(t *testing.T) {
	if _, err := Parse([]byte("filters: [not\n  a map")); err == nil {
		t.Fatalf("malformed YAML parsed successfully")
	}
	// A scalar where a mapping is expected is also an error.
	if _, err := Parse([]byte("mappings:\n  rename: just-a-string\n")); err == nil {
		t.Fatalf("scalar rename parsed successfully; want mapping error")
	}
}

func findIssue(issues []Issue, path string) (Issue, bool) {
	for _, i := range issues {
		if i.Path == path {
			return i, true
		}
	}
	return Issue{}, false
}

/*
TestValidate_Lint exercises the static checks: expression syntax, unknown
format/charset, duplicate order entries, and validation columns that shaping
will have dropped.
*/
func TestValidate_Lint(t *testing.T) {
	cfg, err := Parse([]byte(`
source:
  encoding: no-such-charset
mappings:
  computed:
    bad: "concat("
output:
  columns_order: [a, a, b]
validation:
  required: [missing]
  nonempty: [also_missing]
delivery:
  format: parquet
  filename_pattern: "x_{tomorrow}.csv"
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	issues := Validate(cfg)

	for _, want := range []struct {
		path     string
		severity IssueSeverity
	}{
		{"source.encoding", SeverityError},
		{"mappings.computed.bad", SeverityError},
		{"output.columns_order", SeverityWarning},
		{"validation.required", SeverityError},
		{"validation", SeverityWarning},
		{"delivery.format", SeverityWarning},
		{"delivery.filename_pattern", SeverityWarning},
	} {
		iss, ok := findIssue(issues, want.path)
		if !ok {
			t.Errorf("no issue at %s; got %v", want.path, issues)
			continue
		}
		if iss.Severity != want.severity {
			t.Errorf("issue at %s has severity %s; want %s", want.path, iss.Severity, want.severity)
		}
	}
}

func TestValidate_CleanConfig(t *testing.T) {
	cfg, err := Parse([]byte(`
filters:
  include_financial_status: [paid]
  min_quantity: 1
mappings:
  computed:
    po_date: to_date(created_at)
output:
  columns_order: [po_date]
delivery:
  filename_pattern: "po_{today}.csv"
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if issues := Validate(cfg); len(issues) != 0 {
		t.Fatalf("clean config produced issues: %v", issues)
	}
}

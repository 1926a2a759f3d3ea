// Package pipeline wires the supplier feed stages into one sequential run:
// load, filter, rename, compute, shape, validate, write. Every stage either
// produces the next table or aborts the run; nothing is retried and no file
// is written after a pre-write failure.
package pipeline

import (
	"log"
	"time"

	"supplierfeed/internal/config"
	"supplierfeed/internal/loader"
	"supplierfeed/internal/table"
	"supplierfeed/internal/transformer"
	"supplierfeed/internal/writer"
)

// Run executes one supplier feed conversion and returns the written path.
// When verbose is true, per-stage row counts go to the standard logger.
func Run(ordersPath string, cfg *config.Config, outDir string, verbose bool) (string, error) {
	return runAt(ordersPath, cfg, outDir, time.Now(), verbose)
}

// runAt is Run with an injected run date, so tests can pin the filename and
// get byte-identical output across runs.
func runAt(ordersPath string, cfg *config.Config, outDir string, today time.Time, verbose bool) (string, error) {
	t, err := loader.Load(ordersPath, cfg.Source)
	if err != nil {
		return "", err
	}
	if verbose {
		log.Printf("loaded %d rows, %d columns from %s", len(t.Rows), len(t.Columns), ordersPath)
	}

	t, err = apply(t, buildChain(cfg), verbose)
	if err != nil {
		return "", err
	}

	out, err := writer.Write(t, outDir, cfg.Delivery, today)
	if err != nil {
		return "", err
	}
	if verbose {
		log.Printf("wrote %d rows to %s", len(t.Rows), out)
	}
	return out, nil
}

// buildChain maps the configuration onto the fixed stage order. Stages whose
// section is absent are no-ops and are skipped here.
func buildChain(cfg *config.Config) transformer.Chain {
	var chain transformer.Chain

	if len(cfg.Filters.IncludeFinancialStatus) > 0 {
		chain = append(chain, transformer.StatusFilter{
			Column:   "financial_status",
			Statuses: cfg.Filters.IncludeFinancialStatus,
		})
	}
	if len(cfg.Filters.ExcludeFulfillmentStatus) > 0 {
		chain = append(chain, transformer.StatusFilter{
			Column:   "fulfillment_status",
			Statuses: cfg.Filters.ExcludeFulfillmentStatus,
			Exclude:  true,
		})
	}
	if cfg.Filters.MinQuantity != nil {
		chain = append(chain, transformer.MinQuantity{Threshold: *cfg.Filters.MinQuantity})
	}
	if len(cfg.Filters.DedupeOn) > 0 {
		chain = append(chain, transformer.DeDup{
			Keys: cfg.Filters.DedupeOn,
			Keep: cfg.Filters.DedupeKeep,
		})
	}
	if len(cfg.Mappings.Rename) > 0 {
		chain = append(chain, transformer.Rename{Pairs: cfg.Mappings.Rename})
	}
	if len(cfg.Mappings.Computed) > 0 {
		chain = append(chain, transformer.Computed{Fields: cfg.Mappings.Computed})
	}
	if len(cfg.Output.RenameFinal) > 0 {
		chain = append(chain, transformer.Rename{Pairs: cfg.Output.RenameFinal, Label: "rename_final"})
	}
	if len(cfg.Output.ColumnsOrder) > 0 {
		chain = append(chain, transformer.Shape{Order: cfg.Output.ColumnsOrder})
	}
	chain = append(chain, transformer.Validate{
		Required:    cfg.Validation.Required,
		PositiveInt: cfg.Validation.PositiveInt,
		NonEmpty:    cfg.Validation.NonEmpty,
	})
	return chain
}

func apply(t *table.Table, chain transformer.Chain, verbose bool) (*table.Table, error) {
	for _, s := range chain {
		var err error
		t, err = s.Apply(t)
		if err != nil {
			return nil, err
		}
		if verbose {
			log.Printf("stage %s: %d rows, %d columns", s.Name(), len(t.Rows), len(t.Columns))
		}
	}
	return t, nil
}

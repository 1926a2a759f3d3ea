package transformer

import (
	"supplierfeed/internal/config"
	"supplierfeed/internal/table"
)

// Rename maps source column names to new names. Pairs are applied in
// configuration document order; a pair whose normalized source is absent is
// silently skipped so one configuration can serve slightly different exports.
// When two pairs map onto the same target, or the target already exists, the
// last applied pair wins and the previous target column is dropped.
type Rename struct {
	// Pairs holds (source, target) in document order. Sources are normalized
	// before lookup; targets are used verbatim.
	Pairs config.OrderedMap

	// Label distinguishes the intermediate and final rename passes in logs.
	Label string
}

func (r Rename) Name() string {
	if r.Label != "" {
		return r.Label
	}
	return "rename"
}

func (r Rename) Apply(t *table.Table) (*table.Table, error) {
	for _, p := range r.Pairs {
		src := table.NormalizeName(p.Key)
		if !t.HasColumn(src) {
			continue
		}
		t.RenameColumn(src, p.Value)
	}
	return t, nil
}

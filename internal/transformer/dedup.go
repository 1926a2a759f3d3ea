package transformer

import (
	"strings"

	"github.com/zeebo/xxh3"

	"supplierfeed/internal/table"
)

// DeDup collapses rows that agree on every key column, keeping either the
// first or the last occurrence. Rows are keyed by an xxh3 hash of the key
// cells joined with an unlikely separator; missing key columns read as empty,
// so a row is never excluded from the de-dup domain.
type DeDup struct {
	// Keys are the columns forming the business key.
	Keys []string

	// Keep selects the winner among duplicates: "first" or "last"
	// (default "last").
	Keep string
}

func (DeDup) Name() string { return "dedupe" }

func (d DeDup) Apply(t *table.Table) (*table.Table, error) {
	if len(d.Keys) == 0 || len(t.Rows) == 0 {
		return t, nil
	}
	keepFirst := strings.EqualFold(strings.TrimSpace(d.Keep), "first")

	keyOf := func(row table.Row) uint64 {
		var b strings.Builder
		for i, k := range d.Keys {
			if i > 0 {
				b.WriteByte('\x1f')
			}
			b.WriteString(row.Get(k))
		}
		return xxh3.HashString(b.String())
	}

	// winner index per key; output preserves the winning row's position.
	winner := make(map[uint64]int, len(t.Rows))
	for i, row := range t.Rows {
		k := keyOf(row)
		if _, seen := winner[k]; seen && keepFirst {
			continue
		}
		winner[k] = i
	}

	keep := make(map[int]struct{}, len(winner))
	for _, i := range winner {
		keep[i] = struct{}{}
	}
	out := &table.Table{Columns: t.Columns}
	for i, row := range t.Rows {
		if _, ok := keep[i]; ok {
			out.Rows = append(out.Rows, row)
		}
	}
	return out, nil
}

package enrich

import (
	"fmt"
	"sort"

	"genoscope/domain/core"
	"genoscope/domain/gene"
)

// stableSortByP orders rows ascending by p-value, keeping prior relative
// order on ties. The reducer depends on this order being deterministic.
func stableSortByP(table Table) {
	sort.SliceStable(table, func(i, j int) bool {
		return table[i].PValue < table[j].PValue
	})
}

// Simplify removes rows whose raw hit set overlaps too strongly with a
// more significant row that was already kept. Greedy and order-sensitive
// on purpose: rows are visited ascending by p-value, and a row is dropped
// when its Jaccard similarity to ANY kept row strictly exceeds tau.
// A similarity exactly equal to tau keeps both rows.
//
// Manually forced labels never participate here: the comparison runs on
// raw hit sets, which overrides do not touch.
func Simplify(table Table, tau float64) (Table, error) {
	if tau <= 0 || tau > 1 {
		return nil, fmt.Errorf("%w: %v (want 0 < tau <= 1)", core.ErrInvalidThreshold, tau)
	}

	sorted := table.Clone()
	stableSortByP(sorted)

	kept := make(Table, 0, len(sorted))
	keptSets := make([]map[gene.ID]bool, 0, len(sorted))

	for _, row := range sorted {
		set := row.HitSet()
		redundant := false
		for _, keptSet := range keptSets {
			if Jaccard(set, keptSet) > tau {
				redundant = true
				break
			}
		}
		if redundant {
			continue
		}
		kept = append(kept, row)
		keptSets = append(keptSets, set)
	}

	return kept, nil
}

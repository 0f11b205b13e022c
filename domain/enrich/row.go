package enrich

import (
	"genoscope/domain/gene"
)

// Row is one candidate term/pathway from the enrichment service. The
// exported cells are primitive-typed so exporters can serialize the table
// without special-casing.
//
// Evidence is the wire-aligned vector; Genes and Hits are derived by Decode.
// Genes is the human-readable hit list, Hits the canonical identifiers
// actually responsible. After an override the two can diverge: a forced
// label lives only in Genes (and IntersectionSize), never in Hits.
type Row struct {
	Source           string     `json:"source"`
	TermID           string     `json:"term_id"`
	Name             string     `json:"name"`
	PValue           float64    `json:"p_value"`
	TermSize         int        `json:"term_size"`
	IntersectionSize int        `json:"intersection_size"`
	Evidence         []Evidence `json:"evidence,omitempty"`
	Genes            []string   `json:"genes"`
	Hits             []gene.ID  `json:"hits"`
}

// HitSet returns the row's raw hit identifiers as a set.
func (r Row) HitSet() map[gene.ID]bool {
	set := make(map[gene.ID]bool, len(r.Hits))
	for _, id := range r.Hits {
		set[id] = true
	}
	return set
}

// Clone deep-copies the row so transforms never alias caller-held slices.
func (r Row) Clone() Row {
	out := r
	if r.Evidence != nil {
		out.Evidence = make([]Evidence, len(r.Evidence))
		copy(out.Evidence, r.Evidence)
		for i, ev := range r.Evidence {
			if ev.Codes != nil {
				out.Evidence[i].Codes = append([]string(nil), ev.Codes...)
			}
		}
	}
	if r.Genes != nil {
		out.Genes = append([]string(nil), r.Genes...)
	}
	if r.Hits != nil {
		out.Hits = append([]gene.ID(nil), r.Hits...)
	}
	return out
}

// Table is the ordered result collection. Ascending p-value is the
// canonical order at every exposed stage.
type Table []Row

// Clone deep-copies the table.
func (t Table) Clone() Table {
	out := make(Table, len(t))
	for i, row := range t {
		out[i] = row.Clone()
	}
	return out
}

// SortByPValue stable-sorts ascending by p-value, preserving prior relative
// order on ties.
func (t Table) SortByPValue() {
	stableSortByP(t)
}

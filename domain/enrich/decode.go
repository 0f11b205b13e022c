package enrich

import (
	"genoscope/domain/gene"
)

// Decode derives the label list and raw hit set for one row from its
// evidence vector. Position i of the vector corresponds to position i of
// the universe the query was built from; callers must pass the universe in
// that exact order.
//
// A vector shorter than the universe is tolerated: positions past its end
// are non-hits. A nil vector degrades the row to empty hit data without
// touching the intersection size the service reported.
func Decode(row Row, universe gene.Universe, labels gene.LabelMap) Row {
	out := row.Clone()
	out.Genes = []string{}
	out.Hits = []gene.ID{}

	for i, id := range universe {
		if i >= len(row.Evidence) {
			break
		}
		if !row.Evidence[i].IsHit() {
			continue
		}
		out.Hits = append(out.Hits, id)
		out.Genes = append(out.Genes, labels.Label(id))
	}
	return out
}

// DecodeTable decodes every row against the same universe.
func DecodeTable(table Table, universe gene.Universe, labels gene.LabelMap) Table {
	out := make(Table, len(table))
	for i, row := range table {
		out[i] = Decode(row, universe, labels)
	}
	return out
}

package enrich

// ForceAdd asserts that label should count as a hit for the row whose
// TermID exactly matches termID: a manual false-negative correction for a
// gene the external service failed to report.
//
// The operation is idempotent (a label already present changes nothing) and
// a no-op when no row matches. It adjusts the label list and the
// intersection size in lockstep but deliberately leaves the raw hit set
// alone: a forced label has no canonical identifier backing it, so it is
// always visible in the output yet never participates in similarity
// reduction.
func ForceAdd(table Table, termID, label string) Table {
	if termID == "" || label == "" {
		return table.Clone()
	}

	out := table.Clone()
	for i := range out {
		if out[i].TermID != termID {
			continue
		}
		if containsLabel(out[i].Genes, label) {
			continue
		}
		out[i].Genes = append(out[i].Genes, label)
		out[i].IntersectionSize++
	}
	return out
}

func containsLabel(labels []string, label string) bool {
	for _, existing := range labels {
		if existing == label {
			return true
		}
	}
	return false
}

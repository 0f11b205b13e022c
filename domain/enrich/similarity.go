package enrich

import (
	"genoscope/domain/gene"
)

// Jaccard computes |A∩B| / |A∪B| over two identifier sets. If either set
// is empty the similarity is 0.0: two empty hit sets are never treated as
// maximally similar, and there is no division by zero.
func Jaccard(a, b map[gene.ID]bool) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}

	intersection := 0
	for id := range a {
		if b[id] {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	return float64(intersection) / float64(union)
}

package ports

import (
	"context"

	"genoscope/domain/enrich"
	"genoscope/domain/gene"
)

// EnrichmentQuery is one request to the external enrichment collaborator.
// Universe order is significant: the returned evidence vectors align to it
// position by position.
type EnrichmentQuery struct {
	Species    gene.Species
	Universe   gene.Universe
	Sources    []string
	Threshold  float64
	Correction string
	NoIEA      bool
}

// Enricher runs the statistical pathway-enrichment query. Implementations
// normalize the service's loose wire shapes into enrich.Rows at the
// boundary; a well-formed empty response is an empty table, not an error.
type Enricher interface {
	Profile(ctx context.Context, query EnrichmentQuery) (enrich.Table, error)
}

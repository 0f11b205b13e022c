package ports

import (
	"context"

	"genoscope/domain/gene"
)

// GeneResolver is the external identifier-resolution collaborator: it maps
// free-text gene tokens onto the canonical ID namespace for one species.
// Implementations must return one Resolution per input token, matched by
// token rather than position, and must tolerate partial resolution.
type GeneResolver interface {
	Resolve(ctx context.Context, tokens []string, species gene.Species) ([]gene.Resolution, error)
}

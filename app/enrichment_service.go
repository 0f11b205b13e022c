package app

import (
	"context"
	"time"

	"genoscope/domain/core"
	"genoscope/domain/gene"
	"genoscope/internal"
	"genoscope/internal/config"
	"genoscope/internal/errors"
	"genoscope/models"
	"genoscope/ports"
)

// RunRequest is one user-submitted enrichment run. RawText is the pasted
// gene list; explicit Tokens win when both are present. Zero-valued query
// parameters fall back to the configured defaults.
type RunRequest struct {
	RawText    string   `json:"raw_text"`
	Tokens     []string `json:"tokens,omitempty"`
	SpeciesKey string   `json:"species"`
	Sources    []string `json:"sources,omitempty"`
	Threshold  float64  `json:"threshold,omitempty"`
	Correction string   `json:"correction,omitempty"`
	NoIEA      *bool    `json:"no_iea,omitempty"`
}

// EnrichmentService orchestrates the full pipeline: parse tokens, resolve
// them against the annotation collaborator, build the identifier universe,
// run the enrichment query, and store the run for later presentation.
// All statistics happen inside the external services; this service only
// sequences the calls and applies the error taxonomy at the boundary.
type EnrichmentService struct {
	resolver ports.GeneResolver
	enricher ports.Enricher
	cache    ports.ResultCache
	repo     ports.RunRepository
	defaults config.EnrichmentConfig
	logger   *internal.Logger
}

// NewEnrichmentService creates the pipeline orchestrator. repo may be nil
// when no durable run history is configured.
func NewEnrichmentService(
	resolver ports.GeneResolver,
	enricher ports.Enricher,
	cache ports.ResultCache,
	repo ports.RunRepository,
	defaults config.EnrichmentConfig,
	logger *internal.Logger,
) *EnrichmentService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &EnrichmentService{
		resolver: resolver,
		enricher: enricher,
		cache:    cache,
		repo:     repo,
		defaults: defaults,
		logger:   logger,
	}
}

// Run executes one query/response cycle and returns the stored run.
func (s *EnrichmentService) Run(ctx context.Context, req RunRequest) (*models.Run, error) {
	tokens := req.Tokens
	if len(tokens) == 0 {
		tokens = gene.ParseTokens(req.RawText)
	}
	if len(tokens) == 0 {
		return nil, errors.InvalidInput("no gene identifiers provided")
	}

	speciesKey := req.SpeciesKey
	var species gene.Species
	if speciesKey == "" {
		species = gene.DefaultSpecies()
	} else {
		var err error
		species, err = gene.SpeciesByKey(speciesKey)
		if err != nil {
			return nil, errors.Wrap(err, "invalid species")
		}
	}

	// A new run explicitly invalidates the previous session state before
	// anything else can fail.
	s.cache.Invalidate()

	s.logger.Info("[Pipeline] Starting run: %d token(s), species=%s", len(tokens), species.Key)

	resolutions, err := s.resolver.Resolve(ctx, tokens, species)
	if err != nil {
		return nil, errors.Wrap(err, "identifier resolution failed")
	}

	universe, labels, diag := gene.BuildUniverse(resolutions)
	s.logger.Info("[Pipeline] Resolved %d of %d token(s)", diag.Resolved, diag.Attempted)
	if len(universe) == 0 {
		return nil, errors.Wrap(core.NewResolutionError(diag.Attempted, diag.Resolved), "no valid identifiers")
	}

	query := ports.EnrichmentQuery{
		Species:    species,
		Universe:   universe,
		Sources:    s.defaults.Sources,
		Threshold:  s.defaults.Threshold,
		Correction: s.defaults.Correction,
		NoIEA:      s.defaults.NoIEA,
	}
	if len(req.Sources) > 0 {
		query.Sources = req.Sources
	}
	if req.Threshold > 0 {
		query.Threshold = req.Threshold
	}
	if req.Correction != "" {
		query.Correction = req.Correction
	}
	if req.NoIEA != nil {
		query.NoIEA = *req.NoIEA
	}

	table, err := s.enricher.Profile(ctx, query)
	if err != nil {
		return nil, errors.Wrap(err, "enrichment query failed")
	}
	if len(table) == 0 {
		s.logger.Info("[Pipeline] No significant pathways for this run")
	}

	now := time.Now().UTC()
	run := &models.Run{
		ID:          core.NewRunID(),
		Species:     species,
		Sources:     query.Sources,
		Threshold:   query.Threshold,
		Correction:  query.Correction,
		NoIEA:       query.NoIEA,
		Diagnostics: diag,
		Universe:    universe,
		Labels:      labels,
		Raw:         table,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	s.cache.Put(run)
	if s.repo != nil {
		if err := s.repo.Save(ctx, run); err != nil {
			// History is best-effort; the run is already cached.
			s.logger.Warn("[Pipeline] Failed to persist run %s: %v", run.ID, err)
		}
	}

	s.logger.Info("[Pipeline] Run %s complete: %d result row(s)", run.ID, len(table))
	return run, nil
}

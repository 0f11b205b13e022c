package app

import (
	"context"
	"time"

	"genoscope/domain/core"
	"genoscope/domain/enrich"
	"genoscope/internal"
	"genoscope/internal/errors"
	"genoscope/models"
	"genoscope/ports"
)

// RunService serves stored runs to the presentation layer and applies the
// post-hoc transforms (redundancy reduction, manual overrides) as pure
// functions over a run's raw table. The raw table itself is never edited,
// so every transform is reversible by changing the options.
type RunService struct {
	cache  ports.ResultCache
	repo   ports.RunRepository
	logger *internal.Logger
}

// NewRunService creates a run access service. repo may be nil (cache-only
// deployments).
func NewRunService(cache ports.ResultCache, repo ports.RunRepository, logger *internal.Logger) *RunService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &RunService{cache: cache, repo: repo, logger: logger}
}

// Get returns a run from the cache, falling back to durable history.
func (s *RunService) Get(ctx context.Context, id core.RunID) (*models.Run, error) {
	if run, ok := s.cache.Get(id); ok {
		return run, nil
	}
	if s.repo == nil {
		return nil, core.NewNotFoundError("run", id.String())
	}

	run, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cache.Put(run)
	return run, nil
}

// Latest returns the most recent run, if any.
func (s *RunService) Latest(ctx context.Context) (*models.Run, error) {
	if run, ok := s.cache.Latest(); ok {
		return run, nil
	}
	if s.repo == nil {
		return nil, core.ErrRunNotFound
	}

	summaries, err := s.repo.ListRecent(ctx, 1)
	if err != nil {
		return nil, err
	}
	if len(summaries) == 0 {
		return nil, core.ErrRunNotFound
	}
	return s.Get(ctx, summaries[0].ID)
}

// ListRecent returns run summaries from history, or the cached run when no
// durable store exists.
func (s *RunService) ListRecent(ctx context.Context, limit int) ([]models.RunSummary, error) {
	if s.repo != nil {
		return s.repo.ListRecent(ctx, limit)
	}
	if run, ok := s.cache.Latest(); ok {
		return []models.RunSummary{run.Summary()}, nil
	}
	return []models.RunSummary{}, nil
}

// View assembles the presented table for a run under its current options.
func (s *RunService) View(ctx context.Context, id core.RunID) (*models.Run, enrich.Table, error) {
	run, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	table, err := run.View()
	if err != nil {
		return nil, nil, err
	}
	return run, table, nil
}

// SetSimplify sets the similarity threshold for redundancy reduction.
// tau = 0 turns reduction off; valid thresholds are in (0, 1].
func (s *RunService) SetSimplify(ctx context.Context, id core.RunID, tau float64) (enrich.Table, error) {
	if tau < 0 || tau > 1 {
		return nil, errors.InvalidInput("similarity threshold must be in (0, 1], or 0 to disable")
	}

	run, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	// Cached runs are shared across concurrent requests: mutate a private
	// clone and publish it, never the shared pointer.
	run = run.Clone()
	run.Options.SimplifyTau = tau
	return s.store(ctx, run)
}

// AddOverride records a manual force-add for the run. Duplicate overrides
// collapse; a term ID matching no row is accepted and simply has no
// visible effect.
func (s *RunService) AddOverride(ctx context.Context, id core.RunID, termID, label string) (enrich.Table, error) {
	if termID == "" || label == "" {
		return nil, errors.InvalidInput("override needs both a term ID and a gene label")
	}

	run, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	for _, existing := range run.Options.Overrides {
		if existing.TermID == termID && existing.Label == label {
			return run.View()
		}
	}

	// Same sharing rule as SetSimplify: append on a private clone only.
	run = run.Clone()
	run.Options.Overrides = append(run.Options.Overrides, enrich.Override{TermID: termID, Label: label})

	s.logger.Info("[Runs] Override on run %s: term=%s label=%s", run.ID, termID, label)
	return s.store(ctx, run)
}

// store re-validates the view, updates timestamps, and writes the run back
// to cache and history.
func (s *RunService) store(ctx context.Context, run *models.Run) (enrich.Table, error) {
	table, err := run.View()
	if err != nil {
		return nil, err
	}

	run.UpdatedAt = time.Now().UTC()
	s.cache.Put(run)
	if s.repo != nil {
		if err := s.repo.Save(ctx, run); err != nil {
			s.logger.Warn("[Runs] Failed to persist run %s: %v", run.ID, err)
		}
	}
	return table, nil
}

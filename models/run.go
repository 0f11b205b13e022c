package models

import (
	"time"

	"genoscope/domain/core"
	"genoscope/domain/enrich"
	"genoscope/domain/gene"
)

// Run is one complete query/response cycle: the resolved identifier
// universe, the raw table the enrichment service returned (evidence
// vectors included), and the presentation options currently applied to it.
//
// The raw table is never mutated after the run is created. The presented
// view is recomputed functionally from it, so a new similarity threshold
// or a manual override never loses information.
type Run struct {
	ID          core.RunID             `json:"id"`
	Species     gene.Species           `json:"species"`
	Sources     []string               `json:"sources"`
	Threshold   float64                `json:"threshold"`
	Correction  string                 `json:"correction"`
	NoIEA       bool                   `json:"no_iea"`
	Diagnostics gene.Diagnostics       `json:"diagnostics"`
	Universe    gene.Universe          `json:"universe"`
	Labels      gene.LabelMap          `json:"labels"`
	Raw         enrich.Table           `json:"raw"`
	Options     enrich.AssembleOptions `json:"options"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
}

// View assembles the presented table from the raw service table under the
// run's current options.
func (r *Run) View() (enrich.Table, error) {
	return enrich.Assemble(r.Raw, r.Universe, r.Labels, r.Options)
}

// Clone returns a copy that is safe to mutate while other goroutines hold
// the original. The raw table, universe and labels never change after the
// run is created, so they are shared; the mutable presentation options are
// deep-copied.
func (r *Run) Clone() *Run {
	out := *r
	out.Options = r.Options.Clone()
	if r.Sources != nil {
		out.Sources = append([]string(nil), r.Sources...)
	}
	return &out
}

// RunSummary is the lightweight listing shape for run history views.
type RunSummary struct {
	ID          core.RunID       `json:"id"`
	Species     string           `json:"species"`
	Sources     []string         `json:"sources"`
	RowCount    int              `json:"row_count"`
	Diagnostics gene.Diagnostics `json:"diagnostics"`
	CreatedAt   time.Time        `json:"created_at"`
}

// Summary derives the listing shape from a full run.
func (r *Run) Summary() RunSummary {
	return RunSummary{
		ID:          r.ID,
		Species:     r.Species.Key,
		Sources:     r.Sources,
		RowCount:    len(r.Raw),
		Diagnostics: r.Diagnostics,
		CreatedAt:   r.CreatedAt,
	}
}

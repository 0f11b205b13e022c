package ports

import (
	"genoscope/domain/core"
	"genoscope/models"
)

// ResultCache holds the last successful runs for the lifetime of the
// process. It is the explicit, single-owner replacement for ambient
// session state: a new run calls Invalidate first, then Put, so stale
// results never leak across runs implicitly.
type ResultCache interface {
	Put(run *models.Run)
	Get(id core.RunID) (*models.Run, bool)
	Latest() (*models.Run, bool)
	Invalidate()
}

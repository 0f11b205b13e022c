package ports

import (
	"context"

	"genoscope/domain/core"
	"genoscope/models"
)

// RunRepository persists completed runs so the UI can re-render, re-filter
// and export without re-querying the external services.
type RunRepository interface {
	Save(ctx context.Context, run *models.Run) error
	Get(ctx context.Context, id core.RunID) (*models.Run, error)
	ListRecent(ctx context.Context, limit int) ([]models.RunSummary, error)
	Delete(ctx context.Context, id core.RunID) error
}

package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"genoscope/domain/core"
	"genoscope/domain/gene"
	"genoscope/models"
	"genoscope/ports"
)

// RunRepositoryImpl implements RunRepository for PostgreSQL. The full run
// (universe, labels, raw table, options) is stored as one JSONB payload;
// the summary columns exist only for cheap listing queries.
type RunRepositoryImpl struct {
	db *sqlx.DB
}

// NewRunRepository creates a new PostgreSQL run repository
func NewRunRepository(db *sqlx.DB) ports.RunRepository {
	return &RunRepositoryImpl{db: db}
}

type runRow struct {
	ID              string         `db:"id"`
	Species         string         `db:"species"`
	Sources         pq.StringArray `db:"sources"`
	RowCount        int            `db:"row_count"`
	TokensAttempted int            `db:"tokens_attempted"`
	TokensResolved  int            `db:"tokens_resolved"`
	Payload         []byte         `db:"payload"`
	CreatedAt       time.Time      `db:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at"`
}

// Save upserts a run and its JSONB payload.
func (r *RunRepositoryImpl) Save(ctx context.Context, run *models.Run) error {
	payload, err := json.Marshal(run)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO runs (id, species, sources, row_count, tokens_attempted, tokens_resolved, payload, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		ON CONFLICT (id) DO UPDATE SET
			payload = EXCLUDED.payload,
			row_count = EXCLUDED.row_count,
			updated_at = NOW()
	`, run.ID.String(), run.Species.Key, pq.StringArray(run.Sources), len(run.Raw),
		run.Diagnostics.Attempted, run.Diagnostics.Resolved, payload, run.CreatedAt)
	return err
}

// Get retrieves a run by its ID.
func (r *RunRepositoryImpl) Get(ctx context.Context, id core.RunID) (*models.Run, error) {
	var row runRow
	err := r.db.GetContext(ctx, &row, `
		SELECT id, species, sources, row_count, tokens_attempted, tokens_resolved, payload, created_at, updated_at
		FROM runs
		WHERE id = $1
	`, id.String())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.NewNotFoundError("run", id.String())
	}
	if err != nil {
		return nil, err
	}

	var run models.Run
	if err := json.Unmarshal(row.Payload, &run); err != nil {
		return nil, err
	}
	return &run, nil
}

// ListRecent returns run summaries newest first.
func (r *RunRepositoryImpl) ListRecent(ctx context.Context, limit int) ([]models.RunSummary, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}

	var rows []runRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT id, species, sources, row_count, tokens_attempted, tokens_resolved, payload, created_at, updated_at
		FROM runs
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}

	summaries := make([]models.RunSummary, 0, len(rows))
	for _, row := range rows {
		summaries = append(summaries, models.RunSummary{
			ID:       core.RunID(row.ID),
			Species:  row.Species,
			Sources:  row.Sources,
			RowCount: row.RowCount,
			Diagnostics: gene.Diagnostics{
				Attempted:  row.TokensAttempted,
				Resolved:   row.TokensResolved,
				Unresolved: row.TokensAttempted - row.TokensResolved,
			},
			CreatedAt: row.CreatedAt,
		})
	}
	return summaries, nil
}

// Delete removes a run from history.
func (r *RunRepositoryImpl) Delete(ctx context.Context, id core.RunID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM runs WHERE id = $1`, id.String())
	return err
}

package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"
)

const runsSchema = `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	species TEXT NOT NULL,
	sources TEXT[] NOT NULL DEFAULT '{}',
	row_count INTEGER NOT NULL DEFAULT 0,
	tokens_attempted INTEGER NOT NULL DEFAULT 0,
	tokens_resolved INTEGER NOT NULL DEFAULT 0,
	payload JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs (created_at DESC);
`

// EnsureSchema creates the run-history tables if they do not exist.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, runsSchema)
	return err
}

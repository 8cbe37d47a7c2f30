package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/duosplit/receipt-split-service/internal/split"
)

// PostgresPreferenceRepository implements PreferenceRepository using
// PostgreSQL.
type PostgresPreferenceRepository struct {
	db *pgxpool.Pool
}

// NewPostgresPreferenceRepository creates the repository and ensures
// its schema exists.
func NewPostgresPreferenceRepository(ctx context.Context, db *pgxpool.Pool) (*PostgresPreferenceRepository, error) {
	_, err := db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS label_preferences (
			canonical_label TEXT PRIMARY KEY,
			attribution     TEXT NOT NULL,
			updated_at      TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`)
	if err != nil {
		return nil, &RepositoryError{
			Op:  "ensure_schema",
			Err: fmt.Errorf("failed to create label_preferences table: %w", err),
		}
	}
	return &PostgresPreferenceRepository{db: db}, nil
}

// Get looks up the remembered attribution for a canonical label.
func (r *PostgresPreferenceRepository) Get(ctx context.Context, key string) (split.Attribution, bool, error) {
	var stored string
	err := r.db.QueryRow(ctx, `
		SELECT attribution FROM label_preferences WHERE canonical_label = $1
	`, key).Scan(&stored)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, &RepositoryError{
			Op:  "get_preference",
			Err: fmt.Errorf("failed to query preference: %w", err),
		}
	}

	attribution, err := split.ParseAttribution(stored)
	if err != nil {
		// A row written by an older build; treat as absent.
		return "", false, nil
	}
	return attribution, true, nil
}

// Set upserts the attribution for a canonical label.
func (r *PostgresPreferenceRepository) Set(ctx context.Context, key string, attribution split.Attribution) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO label_preferences (canonical_label, attribution, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (canonical_label)
		DO UPDATE SET attribution = EXCLUDED.attribution, updated_at = now()
	`, key, string(attribution))
	if err != nil {
		return &RepositoryError{
			Op:  "set_preference",
			Err: fmt.Errorf("failed to upsert preference: %w", err),
		}
	}
	return nil
}

// Close is a no-op; the pool is owned by the caller.
func (r *PostgresPreferenceRepository) Close() error {
	return nil
}

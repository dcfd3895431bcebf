package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/devlens/devlens/internal/talent"
)

// GetPipeline retrieves the saved talent pipeline for an identity key.
// Returns an empty pipeline when the identity has no row yet.
func (db *DB) GetPipeline(ctx context.Context, identityKey string) (talent.Pipeline, error) {
	var foldersJSON []byte
	err := db.pool.QueryRow(ctx,
		`SELECT folders FROM pipelines WHERE identity_key = $1`,
		identityKey,
	).Scan(&foldersJSON)
	if err != nil {
		if err == pgx.ErrNoRows {
			return talent.Pipeline{}, nil
		}
		return talent.Pipeline{}, fmt.Errorf("failed to get pipeline: %w", err)
	}

	var pipeline talent.Pipeline
	if err := json.Unmarshal(foldersJSON, &pipeline.Folders); err != nil {
		return talent.Pipeline{}, fmt.Errorf("failed to decode pipeline folders: %w", err)
	}
	return pipeline, nil
}

// UpsertPipeline writes the talent pipeline for an identity key as a single
// JSONB blob. The newest write wins unconditionally.
func (db *DB) UpsertPipeline(ctx context.Context, identityKey string, pipeline talent.Pipeline) error {
	folders := pipeline.Folders
	if folders == nil {
		folders = []talent.Folder{}
	}
	foldersJSON, err := json.Marshal(folders)
	if err != nil {
		return fmt.Errorf("failed to encode pipeline folders: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO pipelines (identity_key, folders)
		 VALUES ($1, $2)
		 ON CONFLICT (identity_key) DO UPDATE SET folders = $2, updated_at = NOW()`,
		identityKey, foldersJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert pipeline: %w", err)
	}
	return nil
}

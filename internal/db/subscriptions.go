package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/devlens/devlens/internal/ledger"
)

// GetSubscription retrieves the subscription row for an identity key.
// Returns nil when the identity has no row yet.
func (db *DB) GetSubscription(ctx context.Context, identityKey string) (*ledger.Subscription, error) {
	var sub ledger.Subscription
	err := db.pool.QueryRow(ctx,
		`SELECT tier, credits_remaining, total_analyses FROM subscriptions WHERE identity_key = $1`,
		identityKey,
	).Scan(&sub.Tier, &sub.CreditsRemaining, &sub.TotalAnalyses)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	return &sub, nil
}

// UpsertSubscription writes the subscription row for an identity key.
// The newest write wins unconditionally.
func (db *DB) UpsertSubscription(ctx context.Context, identityKey string, sub ledger.Subscription) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO subscriptions (identity_key, tier, credits_remaining, total_analyses)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (identity_key) DO UPDATE
		 SET tier = $2, credits_remaining = $3, total_analyses = $4, updated_at = NOW()`,
		identityKey, sub.Tier, sub.CreditsRemaining, sub.TotalAnalyses,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert subscription: %w", err)
	}
	return nil
}

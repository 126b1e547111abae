package database

import (
	"context"
	"database/sql"
	"fmt"
)

type execQueryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// nextSequence bumps the per-year counter for a scope ("lead", "task")
// atomically. The upsert-increment runs as a single statement, so two
// concurrent creations can never draw the same number.
func nextSequence(ctx context.Context, q execQueryer, scope string, year int) (int, error) {
	query := `
		INSERT INTO id_counters (scope, year, seq)
		VALUES ($1, $2, 1)
		ON CONFLICT (scope, year)
		DO UPDATE SET seq = id_counters.seq + 1
		RETURNING seq
	`

	var seq int
	if err := q.QueryRowContext(ctx, query, scope, year).Scan(&seq); err != nil {
		return 0, fmt.Errorf("failed to bump %s counter: %w", scope, err)
	}

	return seq, nil
}

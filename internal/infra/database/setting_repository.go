package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/partpeople/lead-portal/internal/entity"
)

type SettingRepository struct {
	DB *sql.DB
}

func NewSettingRepository(db *sql.DB) *SettingRepository {
	return &SettingRepository{DB: db}
}

func (r *SettingRepository) List(ctx context.Context) ([]*entity.Setting, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT key, value FROM settings ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("failed to list settings: %w", err)
	}
	defer rows.Close()

	var settings []*entity.Setting
	for rows.Next() {
		var s entity.Setting
		if err := rows.Scan(&s.Key, &s.Value); err != nil {
			return nil, err
		}
		settings = append(settings, &s)
	}

	return settings, rows.Err()
}

func (r *SettingRepository) Upsert(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO settings (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value
	`

	if _, err := r.DB.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("failed to upsert setting: %w", err)
	}

	return nil
}

func (r *SettingRepository) Delete(ctx context.Context, key string) error {
	if _, err := r.DB.ExecContext(ctx, `DELETE FROM settings WHERE key = $1`, key); err != nil {
		return fmt.Errorf("failed to delete setting: %w", err)
	}
	return nil
}

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/partpeople/lead-portal/internal/entity"
)

type ApiKeyRepository struct {
	DB *sql.DB
}

func NewApiKeyRepository(db *sql.DB) *ApiKeyRepository {
	return &ApiKeyRepository{DB: db}
}

const apiKeyColumns = `id, name, service, is_active, key_encrypted, last_used, created_at, updated_at`

func (r *ApiKeyRepository) List(ctx context.Context) ([]*entity.ApiKey, error) {
	query := `SELECT ` + apiKeyColumns + ` FROM api_keys ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list api keys: %w", err)
	}
	defer rows.Close()

	var keys []*entity.ApiKey
	for rows.Next() {
		key, err := scanApiKey(rows)
		if err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}

	return keys, rows.Err()
}

func (r *ApiKeyRepository) FindByID(ctx context.Context, id string) (*entity.ApiKey, error) {
	query := `SELECT ` + apiKeyColumns + ` FROM api_keys WHERE id = $1`

	key, err := scanApiKey(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrApiKeyNotFound
		}
		return nil, err
	}

	return key, nil
}

func (r *ApiKeyRepository) Create(ctx context.Context, key *entity.ApiKey) error {
	query := `
		INSERT INTO api_keys (id, name, service, is_active, key_encrypted, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.DB.ExecContext(ctx, query,
		key.ID,
		key.Name,
		key.Service,
		key.IsActive,
		key.KeyEncrypted,
		key.CreatedAt,
		key.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create api key: %w", err)
	}

	return nil
}

func (r *ApiKeyRepository) Update(ctx context.Context, id, name, service, keyEncrypted string) error {
	query := `
		UPDATE api_keys SET name = $2, service = $3,
			key_encrypted = CASE WHEN $4 = '' THEN key_encrypted ELSE $4 END,
			updated_at = NOW()
		WHERE id = $1
	`

	res, err := r.DB.ExecContext(ctx, query, id, name, service, keyEncrypted)
	if err != nil {
		return fmt.Errorf("failed to update api key: %w", err)
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return entity.ErrApiKeyNotFound
	}

	return nil
}

func (r *ApiKeyRepository) SetActive(ctx context.Context, id string, active bool) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE api_keys SET is_active = $2, updated_at = NOW() WHERE id = $1`, id, active)
	if err != nil {
		return fmt.Errorf("failed to toggle api key: %w", err)
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return entity.ErrApiKeyNotFound
	}

	return nil
}

func (r *ApiKeyRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM api_keys WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete api key: %w", err)
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return entity.ErrApiKeyNotFound
	}

	return nil
}

func scanApiKey(s rowScanner) (*entity.ApiKey, error) {
	var key entity.ApiKey
	var lastUsed sql.NullTime

	err := s.Scan(
		&key.ID, &key.Name, &key.Service, &key.IsActive, &key.KeyEncrypted,
		&lastUsed, &key.CreatedAt, &key.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if lastUsed.Valid {
		t := lastUsed.Time
		key.LastUsed = &t
	}

	return &key, nil
}

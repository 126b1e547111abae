package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ApiKey stores third-party credentials. KeyEncrypted holds the vault
// envelope; the plaintext key is never persisted and only a short preview
// of it is ever exposed to callers.
type ApiKey struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Service      string     `json:"service"`
	IsActive     bool       `json:"is_active"`
	KeyEncrypted string     `json:"-"`
	KeyPreview   string     `json:"key_preview,omitempty"`
	LastUsed     *time.Time `json:"last_used,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func NewApiKey(name, service, keyEncrypted string) (*ApiKey, error) {
	key := &ApiKey{
		ID:           uuid.New().String(),
		Name:         name,
		Service:      service,
		IsActive:     true,
		KeyEncrypted: keyEncrypted,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := key.Validate(); err != nil {
		return nil, err
	}

	return key, nil
}

func (k *ApiKey) Validate() error {
	if k.Name == "" {
		return errors.New("name is required")
	}
	if k.Service == "" {
		return errors.New("service is required")
	}
	if k.KeyEncrypted == "" {
		return errors.New("key is required")
	}
	return nil
}

type ApiKeyRepository interface {
	List(ctx context.Context) ([]*ApiKey, error)
	FindByID(ctx context.Context, id string) (*ApiKey, error)
	Create(ctx context.Context, key *ApiKey) error
	// Update replaces name/service and, when keyEncrypted is non-empty, the
	// stored envelope.
	Update(ctx context.Context, id, name, service, keyEncrypted string) error
	SetActive(ctx context.Context, id string, active bool) error
	Delete(ctx context.Context, id string) error
}

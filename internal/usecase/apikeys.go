package usecase

import (
	"context"
	"errors"

	"github.com/partpeople/lead-portal/internal/entity"
	"github.com/partpeople/lead-portal/internal/vault"
)

// ApiKeyUseCase keeps plaintext keys out of the store: everything written
// goes through the vault, and reads only ever expose a short preview.
type ApiKeyUseCase struct {
	Keys  entity.ApiKeyRepository
	Vault *vault.Vault
}

func NewApiKeyUseCase(keys entity.ApiKeyRepository, v *vault.Vault) *ApiKeyUseCase {
	return &ApiKeyUseCase{
		Keys:  keys,
		Vault: v,
	}
}

// List returns keys with KeyPreview filled in and the envelope blanked.
func (uc *ApiKeyUseCase) List(ctx context.Context) ([]*entity.ApiKey, error) {
	keys, err := uc.Keys.List(ctx)
	if err != nil {
		return nil, err
	}

	for _, key := range keys {
		key.KeyPreview = uc.Vault.Preview(key.KeyEncrypted)
		key.KeyEncrypted = ""
	}

	return keys, nil
}

func (uc *ApiKeyUseCase) Create(ctx context.Context, input CreateApiKeyInput) (*entity.ApiKey, error) {
	if input.Name == "" || input.Service == "" || input.Key == "" {
		return nil, NewValidation("name, service and key are all required")
	}

	envelope, err := uc.Vault.Encrypt(input.Key)
	if err != nil {
		return nil, err
	}

	key, err := entity.NewApiKey(input.Name, input.Service, envelope)
	if err != nil {
		return nil, NewValidation(err.Error())
	}

	if err := uc.Keys.Create(ctx, key); err != nil {
		return nil, err
	}

	return key, nil
}

func (uc *ApiKeyUseCase) Update(ctx context.Context, id string, input UpdateApiKeyInput) error {
	if id == "" || input.Name == "" || input.Service == "" {
		return NewValidation("id, name and service are required")
	}

	var envelope string
	if input.Key != "" {
		var err error
		envelope, err = uc.Vault.Encrypt(input.Key)
		if err != nil {
			return err
		}
	}

	if err := uc.Keys.Update(ctx, id, input.Name, input.Service, envelope); err != nil {
		if errors.Is(err, entity.ErrApiKeyNotFound) {
			return NewNotFound("API key not found")
		}
		return err
	}

	return nil
}

func (uc *ApiKeyUseCase) SetActive(ctx context.Context, id string, active bool) error {
	if err := uc.Keys.SetActive(ctx, id, active); err != nil {
		if errors.Is(err, entity.ErrApiKeyNotFound) {
			return NewNotFound("API key not found")
		}
		return err
	}
	return nil
}

func (uc *ApiKeyUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.Keys.Delete(ctx, id); err != nil {
		if errors.Is(err, entity.ErrApiKeyNotFound) {
			return NewNotFound("API key not found")
		}
		return err
	}
	return nil
}

package entity

import "context"

// Setting is a flat key -> string mapping for global configuration.
type Setting struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type SettingRepository interface {
	List(ctx context.Context) ([]*Setting, error)
	Upsert(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

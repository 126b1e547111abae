package entity

import (
	"context"
	"time"
)

// User is an operator account for the portal.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*User, error)
}

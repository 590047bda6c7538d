package model

import (
	"time"

	"github.com/google/uuid"
)

// DefaultTokenName labels tokens issued by register and login
const DefaultTokenName = "API_TOKEN"

// Token is a personal access token. Only the sha256 hash of the plaintext is stored.
type Token struct {
	ID         uuid.UUID  `json:"id" db:"id"`
	UserID     uuid.UUID  `json:"user_id" db:"user_id"`
	Name       string     `json:"name" db:"name"`
	TokenHash  string     `json:"-" db:"token_hash"`
	LastUsedAt *time.Time `json:"last_used_at" db:"last_used_at"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
}

package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"product-api/pkg/database"
	"product-api/pkg/model"
	"time"

	"github.com/google/uuid"
)

// Repository defines the auth repository interface
type Repository interface {
	StoreToken(ctx context.Context, token *model.Token) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*model.Token, *model.User, error)
	TouchToken(ctx context.Context, tokenID uuid.UUID, usedAt time.Time) error
	DeleteAllUserTokens(ctx context.Context, userID uuid.UUID) (int64, error)
	WithTx(tx *sql.Tx) Repository
}

// repository implements the auth repository
type repository struct {
	db database.DBTX
}

// NewRepository creates a new auth repository
func NewRepository(db *sql.DB) Repository {
	return &repository{
		db: db,
	}
}

// WithTx returns a repository bound to the given transaction
func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{
		db: tx,
	}
}

// StoreToken stores a token hash in the database
func (r *repository) StoreToken(ctx context.Context, token *model.Token) error {
	query := `
		INSERT INTO tokens (id, user_id, name, token_hash, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.ExecContext(ctx, query,
		token.ID, token.UserID, token.Name, token.TokenHash, token.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to store token: %w", err)
	}
	return nil
}

// GetByTokenHash resolves a token hash to the token and the user that owns it
func (r *repository) GetByTokenHash(ctx context.Context, tokenHash string) (*model.Token, *model.User, error) {
	query := `
		SELECT t.id, t.user_id, t.name, t.token_hash, t.last_used_at, t.created_at,
		       u.id, u.name, u.email, u.password_hash, u.created_at, u.updated_at
		FROM tokens t
		JOIN users u ON u.id = t.user_id
		WHERE t.token_hash = $1`

	token := &model.Token{}
	user := &model.User{}
	var lastUsedAt sql.NullTime

	err := r.db.QueryRowContext(ctx, query, tokenHash).Scan(
		&token.ID, &token.UserID, &token.Name, &token.TokenHash, &lastUsedAt, &token.CreatedAt,
		&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, nil // Token not found or revoked
		}
		return nil, nil, err
	}

	if lastUsedAt.Valid {
		token.LastUsedAt = &lastUsedAt.Time
	}

	return token, user, nil
}

// TouchToken records when a token was last presented
func (r *repository) TouchToken(ctx context.Context, tokenID uuid.UUID, usedAt time.Time) error {
	query := `UPDATE tokens SET last_used_at = $1 WHERE id = $2`
	_, err := r.db.ExecContext(ctx, query, usedAt, tokenID)
	return err
}

// DeleteAllUserTokens deletes every token of a user and reports how many were removed
func (r *repository) DeleteAllUserTokens(ctx context.Context, userID uuid.UUID) (int64, error) {
	query := `DELETE FROM tokens WHERE user_id = $1`
	res, err := r.db.ExecContext(ctx, query, userID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

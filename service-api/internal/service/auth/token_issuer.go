package auth

import (
	"context"
	"database/sql"
	"errors"
	"product-api/pkg/auth"
	"product-api/pkg/model"
	authRepo "product-api/service-api/internal/repository/auth"
	"time"

	"github.com/google/uuid"
)

// TokenIssuer mints opaque bearer tokens and revokes them.
// Only the sha256 hash of a token is persisted; the plaintext is returned once.
type TokenIssuer struct {
	repo authRepo.Repository
	now  func() time.Time
}

// NewTokenIssuer creates a token issuer on top of the token repository
func NewTokenIssuer(repo authRepo.Repository) *TokenIssuer {
	return &TokenIssuer{
		repo: repo,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// Issue creates a new token for user
func (i *TokenIssuer) Issue(ctx context.Context, user *model.User) (string, error) {
	return i.issue(ctx, i.repo, user)
}

// IssueTx creates a new token for user inside an existing transaction
func (i *TokenIssuer) IssueTx(ctx context.Context, tx *sql.Tx, user *model.User) (string, error) {
	return i.issue(ctx, i.repo.WithTx(tx), user)
}

// RevokeAll deletes every token of the user and returns how many were removed
func (i *TokenIssuer) RevokeAll(ctx context.Context, userID uuid.UUID) (int64, error) {
	return i.repo.DeleteAllUserTokens(ctx, userID)
}

func (i *TokenIssuer) issue(ctx context.Context, repo authRepo.Repository, user *model.User) (string, error) {
	if user == nil {
		return "", errors.New("cannot issue a token without a user")
	}

	plainText, err := auth.NewPlainTextToken()
	if err != nil {
		return "", err
	}

	token := &model.Token{
		ID:        uuid.New(),
		UserID:    user.ID,
		Name:      model.DefaultTokenName,
		TokenHash: auth.HashToken(plainText),
		CreatedAt: i.now(),
	}
	if err := repo.StoreToken(ctx, token); err != nil {
		return "", err
	}

	return plainText, nil
}

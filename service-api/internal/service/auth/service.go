package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"product-api/pkg/auth"
	"product-api/pkg/database"
	"product-api/pkg/logger"
	"product-api/pkg/model"
	authRepo "product-api/service-api/internal/repository/auth"
	userRepo "product-api/service-api/internal/repository/user"
	userService "product-api/service-api/internal/service/user"
	"time"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email has already been taken")
)

// Service defines the auth service interface
type Service interface {
	Register(ctx context.Context, name, email, password string) (*model.User, string, error)
	Login(ctx context.Context, email, password string) (*model.User, string, error)
	Logout(ctx context.Context, user *model.User) error
	Authenticate(ctx context.Context, plainTextToken string) (*model.User, error)
}

// authService provides auth-related services.
type authService struct {
	tx          database.TxRunner
	userService userService.Service
	userRepo    userRepo.Repository
	authRepo    authRepo.Repository
	issuer      *TokenIssuer
	now         func() time.Time
}

var _ auth.Authenticator = (*authService)(nil)

// NewAuthService creates a new auth service instance.
func NewAuthService(
	tx database.TxRunner,
	userService userService.Service,
	userRepo userRepo.Repository,
	authRepo authRepo.Repository,
) Service {
	return &authService{
		tx:          tx,
		userService: userService,
		userRepo:    userRepo,
		authRepo:    authRepo,
		issuer:      NewTokenIssuer(authRepo),
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Register creates a user and its first token in one transaction
func (s *authService) Register(ctx context.Context, name, email, password string) (*model.User, string, error) {
	_, err := s.userService.GetUserByEmail(ctx, email)
	if err == nil {
		return nil, "", ErrEmailTaken
	}
	if !errors.Is(err, userService.ErrUserNotFound) {
		return nil, "", err
	}

	user, err := s.userService.NewUser(name, email, password)
	if err != nil {
		return nil, "", err
	}

	var plainText string
	err = s.tx.RunInTx(ctx, func(tx *sql.Tx) error {
		if err := s.userRepo.WithTx(tx).Create(ctx, user); err != nil {
			if errors.Is(err, userRepo.ErrDuplicateEmail) {
				return ErrEmailTaken
			}
			return err
		}

		var err error
		plainText, err = s.issuer.IssueTx(ctx, tx, user)
		return err
	})
	if err != nil {
		return nil, "", err
	}

	logger.Infof("registered user %s", user.ID)
	return user, plainText, nil
}

// Login verifies credentials and issues a new token
func (s *authService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	user, err := s.userService.GetUserByEmail(ctx, email)
	if err != nil && !errors.Is(err, userService.ErrUserNotFound) {
		return nil, "", err
	}

	// runs bcrypt even for unknown emails
	if err := s.userService.VerifyPassword(user, password); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	plainText, err := s.issuer.Issue(ctx, user)
	if err != nil {
		return nil, "", err
	}

	return user, plainText, nil
}

// Logout revokes every token of the user, not only the presented one
func (s *authService) Logout(ctx context.Context, user *model.User) error {
	if user == nil {
		return auth.ErrUnauthenticated
	}

	revoked, err := s.issuer.RevokeAll(ctx, user.ID)
	if err != nil {
		return fmt.Errorf("failed to revoke tokens: %w", err)
	}

	logger.Debugf("revoked %d tokens for user %s", revoked, user.ID)
	return nil
}

// Authenticate resolves a plaintext bearer token to its user
func (s *authService) Authenticate(ctx context.Context, plainTextToken string) (*model.User, error) {
	if plainTextToken == "" {
		return nil, auth.ErrUnauthenticated
	}

	token, user, err := s.authRepo.GetByTokenHash(ctx, auth.HashToken(plainTextToken))
	if err != nil {
		return nil, err
	}
	if token == nil || user == nil {
		return nil, auth.ErrUnauthenticated
	}

	if err := s.authRepo.TouchToken(ctx, token.ID, s.now()); err != nil {
		logger.Warnf("failed to record token usage for %s: %v", token.ID, err)
	}

	return user, nil
}

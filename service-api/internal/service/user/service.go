package user

import (
	"context"
	"errors"
	"product-api/pkg/model"
	userRepo "product-api/service-api/internal/repository/user"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrInvalidPassword = errors.New("invalid password")
)

// Service defines the user service interface
type Service interface {
	NewUser(name, email, password string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	VerifyPassword(user *model.User, password string) error
}

// userService provides user-related services.
type userService struct {
	userRepo   userRepo.Repository
	bcryptCost int
	dummyHash  []byte
}

// NewUserService creates a new user service instance.
func NewUserService(userRepo userRepo.Repository, bcryptCost int) Service {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}

	// compared against when the email is unknown so both login paths cost one bcrypt round
	dummyHash, _ := bcrypt.GenerateFromPassword([]byte("product-api-dummy-password"), bcryptCost)

	return &userService{
		userRepo:   userRepo,
		bcryptCost: bcryptCost,
		dummyHash:  dummyHash,
	}
}

// NewUser builds an unsaved user with a hashed password
func (s *userService) NewUser(name, email, password string) (*model.User, error) {
	hashedPassword, err := s.hashPassword(password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &model.User{
		ID:           uuid.New(),
		Name:         strings.TrimSpace(name),
		Email:        strings.TrimSpace(email),
		PasswordHash: hashedPassword,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// GetUserByEmail retrieves a user by email
func (s *userService) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// GetUserByID retrieves a user by ID
func (s *userService) GetUserByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// VerifyPassword checks password against the user's hash. A nil user is
// checked against a dummy hash and always fails.
func (s *userService) VerifyPassword(user *model.User, password string) error {
	if user == nil {
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
		return ErrInvalidPassword
	}
	if err := userRepo.VerifyPassword(user.PasswordHash, password); err != nil {
		return ErrInvalidPassword
	}
	return nil
}

// hashPassword hashes a password using bcrypt
func (s *userService) hashPassword(password string) (string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hashedPassword), nil
}

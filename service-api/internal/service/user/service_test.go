package user

import (
	"context"
	"database/sql"
	"strings"
	"testing"

	"product-api/pkg/model"
	userRepo "product-api/service-api/internal/repository/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeRepo struct {
	users map[uuid.UUID]*model.User
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{users: make(map[uuid.UUID]*model.User)}
}

func (f *fakeRepo) Create(_ context.Context, user *model.User) error {
	for _, u := range f.users {
		if strings.EqualFold(u.Email, user.Email) {
			return userRepo.ErrDuplicateEmail
		}
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range f.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	return f.users[id], nil
}

func (f *fakeRepo) WithTx(*sql.Tx) userRepo.Repository { return f }

func TestNewUser(t *testing.T) {
	svc := NewUserService(newFakeRepo(), bcrypt.MinCost)

	user, err := svc.NewUser(" Jane ", "jane@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, "Jane", user.Name)
	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.NotEqual(t, "password123", user.PasswordHash)
	assert.NoError(t, svc.VerifyPassword(user, "password123"))
}

func TestNewUser_InvalidCostFallsBack(t *testing.T) {
	svc := NewUserService(newFakeRepo(), 99).(*userService)
	assert.Equal(t, bcrypt.DefaultCost, svc.bcryptCost)
}

func TestGetUserByEmail(t *testing.T) {
	repo := newFakeRepo()
	svc := NewUserService(repo, bcrypt.MinCost)
	user, err := svc.NewUser("Jane", "jane@example.com", "password123")
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), user))

	found, err := svc.GetUserByEmail(context.Background(), "JANE@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	_, err = svc.GetUserByEmail(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestGetUserByID(t *testing.T) {
	repo := newFakeRepo()
	svc := NewUserService(repo, bcrypt.MinCost)
	user, err := svc.NewUser("Jane", "jane@example.com", "password123")
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), user))

	found, err := svc.GetUserByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jane", found.Name)

	_, err = svc.GetUserByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestVerifyPassword(t *testing.T) {
	svc := NewUserService(newFakeRepo(), bcrypt.MinCost)
	user, err := svc.NewUser("Jane", "jane@example.com", "password123")
	require.NoError(t, err)

	assert.ErrorIs(t, svc.VerifyPassword(user, "wrong-password"), ErrInvalidPassword)
	assert.ErrorIs(t, svc.VerifyPassword(nil, "password123"), ErrInvalidPassword)
}

package auth

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"product-api/pkg/auth"
	"product-api/pkg/model"
	authRepo "product-api/service-api/internal/repository/auth"
	userRepo "product-api/service-api/internal/repository/user"
	userService "product-api/service-api/internal/service/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// store backs both fake repositories and can be snapshotted to emulate rollback
type store struct {
	users         map[uuid.UUID]*model.User
	tokens        map[string]*model.Token
	failStore     bool
	failTouch     bool
	failLookup    bool
	touchedTokens []uuid.UUID
}

func newStore() *store {
	return &store{
		users:  make(map[uuid.UUID]*model.User),
		tokens: make(map[string]*model.Token),
	}
}

type fakeUserRepo struct{ s *store }

func (f fakeUserRepo) Create(_ context.Context, user *model.User) error {
	for _, u := range f.s.users {
		if strings.EqualFold(u.Email, user.Email) {
			return userRepo.ErrDuplicateEmail
		}
	}
	f.s.users[user.ID] = user
	return nil
}

func (f fakeUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range f.s.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, nil
}

func (f fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	return f.s.users[id], nil
}

func (f fakeUserRepo) WithTx(*sql.Tx) userRepo.Repository { return f }

type fakeAuthRepo struct{ s *store }

func (f fakeAuthRepo) StoreToken(_ context.Context, token *model.Token) error {
	if f.s.failStore {
		return errors.New("insert failed")
	}
	f.s.tokens[token.TokenHash] = token
	return nil
}

func (f fakeAuthRepo) GetByTokenHash(_ context.Context, hash string) (*model.Token, *model.User, error) {
	if f.s.failLookup {
		return nil, nil, errors.New("db down")
	}
	token, ok := f.s.tokens[hash]
	if !ok {
		return nil, nil, nil
	}
	return token, f.s.users[token.UserID], nil
}

func (f fakeAuthRepo) TouchToken(_ context.Context, id uuid.UUID, _ time.Time) error {
	if f.s.failTouch {
		return errors.New("touch failed")
	}
	f.s.touchedTokens = append(f.s.touchedTokens, id)
	return nil
}

func (f fakeAuthRepo) DeleteAllUserTokens(_ context.Context, userID uuid.UUID) (int64, error) {
	var n int64
	for hash, token := range f.s.tokens {
		if token.UserID == userID {
			delete(f.s.tokens, hash)
			n++
		}
	}
	return n, nil
}

func (f fakeAuthRepo) WithTx(*sql.Tx) authRepo.Repository { return f }

// fakeTx restores the store when fn fails
type fakeTx struct{ s *store }

func (f fakeTx) RunInTx(_ context.Context, fn func(tx *sql.Tx) error) error {
	users := make(map[uuid.UUID]*model.User, len(f.s.users))
	for k, v := range f.s.users {
		users[k] = v
	}
	tokens := make(map[string]*model.Token, len(f.s.tokens))
	for k, v := range f.s.tokens {
		tokens[k] = v
	}

	if err := fn(nil); err != nil {
		f.s.users, f.s.tokens = users, tokens
		return err
	}
	return nil
}

func newService(s *store) Service {
	users := fakeUserRepo{s: s}
	return NewAuthService(fakeTx{s: s}, userService.NewUserService(users, bcrypt.MinCost), users, fakeAuthRepo{s: s})
}

func TestRegister(t *testing.T) {
	s := newStore()
	svc := newService(s)

	user, token, err := svc.Register(context.Background(), "Jane", "jane@example.com", "password123")
	require.NoError(t, err)
	assert.Len(t, token, 40)
	assert.Equal(t, "jane@example.com", user.Email)

	stored, ok := s.tokens[auth.HashToken(token)]
	require.True(t, ok)
	assert.Equal(t, user.ID, stored.UserID)
	assert.Equal(t, model.DefaultTokenName, stored.Name)
	assert.NotContains(t, s.tokens, token)
}

func TestRegister_DuplicateEmailIgnoresCase(t *testing.T) {
	svc := newService(newStore())

	_, _, err := svc.Register(context.Background(), "Jane", "jane@example.com", "password123")
	require.NoError(t, err)

	_, _, err = svc.Register(context.Background(), "Other", "JANE@example.com", "password123")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegister_TokenFailureRollsBackUser(t *testing.T) {
	s := newStore()
	s.failStore = true
	svc := newService(s)

	_, _, err := svc.Register(context.Background(), "Jane", "jane@example.com", "password123")
	require.Error(t, err)
	assert.Empty(t, s.users)
	assert.Empty(t, s.tokens)
}

func TestLogin(t *testing.T) {
	s := newStore()
	svc := newService(s)
	registered, first, err := svc.Register(context.Background(), "Jane", "jane@example.com", "password123")
	require.NoError(t, err)

	user, second, err := svc.Login(context.Background(), "jane@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	assert.NotEqual(t, first, second)
	assert.Len(t, s.tokens, 2)
}

func TestLogin_WrongCredentials(t *testing.T) {
	s := newStore()
	svc := newService(s)
	_, _, err := svc.Register(context.Background(), "Jane", "jane@example.com", "password123")
	require.NoError(t, err)

	_, _, err = svc.Login(context.Background(), "jane@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(context.Background(), "nobody@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	assert.Len(t, s.tokens, 1)
}

func TestLogout_RevokesAllTokens(t *testing.T) {
	s := newStore()
	svc := newService(s)
	user, first, err := svc.Register(context.Background(), "Jane", "jane@example.com", "password123")
	require.NoError(t, err)
	_, second, err := svc.Login(context.Background(), "jane@example.com", "password123")
	require.NoError(t, err)

	other, otherToken, err := svc.Register(context.Background(), "John", "john@example.com", "password123")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), user))

	for _, token := range []string{first, second} {
		_, err := svc.Authenticate(context.Background(), token)
		assert.ErrorIs(t, err, auth.ErrUnauthenticated)
	}

	found, err := svc.Authenticate(context.Background(), otherToken)
	require.NoError(t, err)
	assert.Equal(t, other.ID, found.ID)
}

func TestLogout_NilUser(t *testing.T) {
	svc := newService(newStore())
	assert.ErrorIs(t, svc.Logout(context.Background(), nil), auth.ErrUnauthenticated)
}

func TestAuthenticate(t *testing.T) {
	s := newStore()
	svc := newService(s)
	user, token, err := svc.Register(context.Background(), "Jane", "jane@example.com", "password123")
	require.NoError(t, err)

	found, err := svc.Authenticate(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)
	assert.Len(t, s.touchedTokens, 1)

	_, err = svc.Authenticate(context.Background(), "unknown")
	assert.ErrorIs(t, err, auth.ErrUnauthenticated)

	_, err = svc.Authenticate(context.Background(), "")
	assert.ErrorIs(t, err, auth.ErrUnauthenticated)
}

func TestAuthenticate_TouchFailureIsIgnored(t *testing.T) {
	s := newStore()
	svc := newService(s)
	_, token, err := svc.Register(context.Background(), "Jane", "jane@example.com", "password123")
	require.NoError(t, err)

	s.failTouch = true
	_, err = svc.Authenticate(context.Background(), token)
	assert.NoError(t, err)
}

func TestAuthenticate_LookupFailure(t *testing.T) {
	s := newStore()
	s.failLookup = true
	svc := newService(s)

	_, err := svc.Authenticate(context.Background(), "whatever")
	require.Error(t, err)
	assert.NotErrorIs(t, err, auth.ErrUnauthenticated)
}

func TestTokenIssuer(t *testing.T) {
	s := newStore()
	issuer := NewTokenIssuer(fakeAuthRepo{s: s})
	user := &model.User{ID: uuid.New()}

	first, err := issuer.Issue(context.Background(), user)
	require.NoError(t, err)
	second, err := issuer.IssueTx(context.Background(), nil, user)
	require.NoError(t, err)

	assert.Len(t, first, 40)
	assert.NotEqual(t, first, second)
	assert.Len(t, s.tokens, 2)
	assert.Equal(t, auth.HashToken(first), s.tokens[auth.HashToken(first)].TokenHash)

	n, err := issuer.RevokeAll(context.Background(), user.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
	assert.Empty(t, s.tokens)

	_, err = issuer.Issue(context.Background(), nil)
	assert.Error(t, err)
}

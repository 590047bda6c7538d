package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"product-api/pkg/database"
	"product-api/pkg/model"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// ErrDuplicateEmail is returned when the email is already registered
var ErrDuplicateEmail = errors.New("email already registered")

// Repository defines the user repository interface
type Repository interface {
	Create(ctx context.Context, user *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	WithTx(tx *sql.Tx) Repository
}

// repository implements the user repository
type repository struct {
	db database.DBTX
}

// NewRepository creates a new user repository
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

// Create creates a new user in the database
func (r *repository) Create(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO users (id, name, email, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.Name, user.Email, user.PasswordHash, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}

// GetByEmail retrieves a user by email, ignoring case
func (r *repository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `
		SELECT id, name, email, password_hash, created_at, updated_at
		FROM users
		WHERE LOWER(email) = LOWER($1)`

	return r.scanOne(r.db.QueryRowContext(ctx, query, email))
}

// GetByID retrieves a user by ID
func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	query := `
		SELECT id, name, email, password_hash, created_at, updated_at
		FROM users
		WHERE id = $1`

	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *repository) scanOne(row *sql.Row) (*model.User, error) {
	user := &model.User{}
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // User not found
		}
		return nil, err
	}

	return user, nil
}

// VerifyPassword verifies a password against its hash
func VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

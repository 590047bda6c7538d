package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/google/uuid"
)

// User represents a user in the system
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"` // Never include in JSON responses
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Password length bounds; bcrypt ignores everything past 72 bytes
const (
	PasswordMinLength = 8
	PasswordMaxLength = 72
)

// RegisterRequest represents the request payload for user registration.
// Fields are decoded loosely so type mismatches surface as field errors.
type RegisterRequest struct {
	Name     interface{} `json:"name"`
	Email    interface{} `json:"email"`
	Password interface{} `json:"password"`
}

// Validate checks the registration payload
func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			Present("name"), IsString("name"), MaxChars("name", 255)),
		validation.Field(&r.Email,
			Present("email"), IsString("email"), MaxChars("email", 255),
			is.Email.Error("The email field must be a valid email address.")),
		validation.Field(&r.Password,
			Present("password"), IsString("password"),
			MinChars("password", PasswordMinLength), MaxChars("password", PasswordMaxLength)),
	)
}

// Credentials returns the typed values of a validated request
func (r RegisterRequest) Credentials() (name, email, password string) {
	name, _ = r.Name.(string)
	email, _ = r.Email.(string)
	password, _ = r.Password.(string)
	return name, email, password
}

// LoginRequest represents the request payload for user login
type LoginRequest struct {
	Email    interface{} `json:"email"`
	Password interface{} `json:"password"`
}

// Validate checks the login payload
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, Present("email"), IsString("email")),
		validation.Field(&r.Password, Present("password"), IsString("password")),
	)
}

// Credentials returns the typed values of a validated request
func (r LoginRequest) Credentials() (email, password string) {
	email, _ = r.Email.(string)
	password, _ = r.Password.(string)
	return email, password
}

// AuthResponse is the body of register, login and logout responses.
// Token is always present and null unless a token was issued.
type AuthResponse struct {
	Message string       `json:"message"`
	User    *UserProfile `json:"user,omitempty"`
	Token   *string      `json:"token"`
}

// NewAuthResponse builds the response for a freshly issued token
func NewAuthResponse(message string, user *User, token string) AuthResponse {
	profile := user.ToProfile()
	return AuthResponse{
		Message: message,
		User:    &profile,
		Token:   &token,
	}
}

// UserProfile represents user profile information
type UserProfile struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToProfile converts User to UserProfile (safe for public consumption)
func (u *User) ToProfile() UserProfile {
	return UserProfile{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

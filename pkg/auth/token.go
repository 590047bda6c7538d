package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// tokenBytes is the entropy of a plaintext token; hex encoding doubles it to 40 characters
const tokenBytes = 20

// NewPlainTextToken generates a cryptographically random opaque token
func NewPlainTextToken() (string, error) {
	buf := make([]byte, tokenBytes)
	_, err := rand.Read(buf)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// HashToken creates a SHA-256 hash of a token for storage
func HashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}

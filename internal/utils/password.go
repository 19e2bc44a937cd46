package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

const (
	saltBytes        = 32
	pbkdf2Iterations = 64_000
	pbkdf2KeyLength  = 32
)

// GenerateSalt returns a hex-encoded random salt for password hashing.
func GenerateSalt() (string, error) {
	buf := make([]byte, saltBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// HashPassword derives a hex-encoded PBKDF2-SHA256 hash from the password
// and the stored per-user salt.
func HashPassword(password, salt string) string {
	key := pbkdf2.Key([]byte(password), []byte(salt), pbkdf2Iterations, pbkdf2KeyLength, sha256.New)
	return hex.EncodeToString(key)
}

// VerifyPassword compares a candidate password against the stored hash in
// constant time.
func VerifyPassword(password, salt, storedHash string) bool {
	candidate := HashPassword(password, salt)
	return subtle.ConstantTimeCompare([]byte(candidate), []byte(storedHash)) == 1
}

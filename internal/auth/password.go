package auth

import (
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 7

// HashPassword derives a bcrypt digest from the plaintext. The plaintext
// is never persisted.
func HashPassword(plain string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// CheckPassword reports whether the plaintext matches the stored digest.
// The comparison is constant time; a mismatch is false, not an error.
func CheckPassword(plain, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain)) == nil
}

// validPassword enforces the signup/update password rules: minimum length
// and not containing the word "password" in any case.
func validPassword(plain string) bool {
	if len(plain) < minPasswordLength {
		return false
	}
	return !strings.Contains(strings.ToLower(plain), "password")
}

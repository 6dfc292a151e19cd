package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenClaims are the verified contents of a session token.
type TokenClaims struct {
	UserID    string
	ExpiresAt time.Time
}

// TokenIssuer signs and verifies session tokens with a process-wide
// secret. The secret is injected once at construction and never rotated.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenIssuer(secret string, ttl time.Duration) (*TokenIssuer, error) {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return nil, ErrSecretRequired
	}
	if ttl == 0 {
		ttl = 24 * time.Hour
	}

	return &TokenIssuer{secret: []byte(secret), ttl: ttl}, nil
}

// Issue creates a signed token bound to the user. The jti claim keeps two
// tokens issued in the same second distinct.
func (i *TokenIssuer) Issue(userID string) (string, error) {
	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
}

// Verify checks the signature and expiry. It returns ErrExpiredToken for a
// well-signed token past its expiry and ErrInvalidToken for anything else.
func (i *TokenIssuer) Verify(token string) (*TokenClaims, error) {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return i.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || !parsed.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	verified := &TokenClaims{UserID: claims.Subject}
	if claims.ExpiresAt != nil {
		verified.ExpiresAt = claims.ExpiresAt.Time
	}
	return verified, nil
}

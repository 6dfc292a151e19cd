package auth_test

import (
	"errors"
	"testing"
	"time"

	"github.com/taskhive/taskhive/internal/auth"
)

func TestTokenIssuerRequiresSecret(t *testing.T) {
	if _, err := auth.NewTokenIssuer("   ", time.Hour); !errors.Is(err, auth.ErrSecretRequired) {
		t.Fatalf("expected ErrSecretRequired, got %v", err)
	}
}

func TestIssueAndVerify(t *testing.T) {
	issuer, err := auth.NewTokenIssuer("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("unexpected error creating issuer: %v", err)
	}

	token, err := issuer.Issue("user-123")
	if err != nil {
		t.Fatalf("issue returned error: %v", err)
	}

	claims, err := issuer.Verify(token)
	if err != nil {
		t.Fatalf("verify returned error: %v", err)
	}

	if claims.UserID != "user-123" {
		t.Fatalf("expected user-123 subject, got %s", claims.UserID)
	}

	if remaining := time.Until(claims.ExpiresAt); remaining <= 0 || remaining > time.Hour {
		t.Fatalf("unexpected expiry %v", claims.ExpiresAt)
	}
}

func TestIssueProducesDistinctTokens(t *testing.T) {
	issuer, err := auth.NewTokenIssuer("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("unexpected error creating issuer: %v", err)
	}

	first, err := issuer.Issue("user-123")
	if err != nil {
		t.Fatalf("issue returned error: %v", err)
	}
	second, err := issuer.Issue("user-123")
	if err != nil {
		t.Fatalf("issue returned error: %v", err)
	}

	// Both issued within the same second; the jti claim keeps them apart.
	if first == second {
		t.Fatalf("expected distinct tokens for separate issuances")
	}
}

func TestVerifyExpiredToken(t *testing.T) {
	issuer, err := auth.NewTokenIssuer("test-secret", time.Second)
	if err != nil {
		t.Fatalf("unexpected error creating issuer: %v", err)
	}

	token, err := issuer.Issue("user-123")
	if err != nil {
		t.Fatalf("issue returned error: %v", err)
	}

	time.Sleep(2 * time.Second)

	if _, err := issuer.Verify(token); !errors.Is(err, auth.ErrExpiredToken) {
		t.Fatalf("expected ErrExpiredToken, got %v", err)
	}
}

func TestVerifyRejectsTamperedToken(t *testing.T) {
	issuer, err := auth.NewTokenIssuer("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("unexpected error creating issuer: %v", err)
	}

	token, err := issuer.Issue("user-123")
	if err != nil {
		t.Fatalf("issue returned error: %v", err)
	}

	tampered := token + "x"
	if _, err := issuer.Verify(tampered); !errors.Is(err, auth.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for tampered token, got %v", err)
	}

	if _, err := issuer.Verify("not-a-token"); !errors.Is(err, auth.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for malformed token, got %v", err)
	}
}

func TestVerifyRejectsForeignSignature(t *testing.T) {
	issuer, err := auth.NewTokenIssuer("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("unexpected error creating issuer: %v", err)
	}
	other, err := auth.NewTokenIssuer("other-secret", time.Hour)
	if err != nil {
		t.Fatalf("unexpected error creating issuer: %v", err)
	}

	token, err := other.Issue("user-123")
	if err != nil {
		t.Fatalf("issue returned error: %v", err)
	}

	if _, err := issuer.Verify(token); !errors.Is(err, auth.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for foreign signature, got %v", err)
	}
}

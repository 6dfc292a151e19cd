package auth_test

import (
	"testing"

	"github.com/taskhive/taskhive/internal/auth"
)

func TestHashPasswordNeverStoresPlaintext(t *testing.T) {
	const plain = "correct-horse-battery"

	digest, err := auth.HashPassword(plain)
	if err != nil {
		t.Fatalf("hash returned error: %v", err)
	}

	if digest == plain {
		t.Fatalf("digest must not equal the plaintext")
	}

	if !auth.CheckPassword(plain, digest) {
		t.Fatalf("expected digest to verify against the original plaintext")
	}

	if auth.CheckPassword("wrong-guess", digest) {
		t.Fatalf("expected mismatched plaintext to fail verification")
	}
}

func TestHashPasswordProducesDistinctDigests(t *testing.T) {
	first, err := auth.HashPassword("same-input-1")
	if err != nil {
		t.Fatalf("hash returned error: %v", err)
	}
	second, err := auth.HashPassword("same-input-1")
	if err != nil {
		t.Fatalf("hash returned error: %v", err)
	}

	// bcrypt salts every call, so equal inputs still diverge.
	if first == second {
		t.Fatalf("expected salted digests to differ")
	}
}

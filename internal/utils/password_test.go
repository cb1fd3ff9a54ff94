package utils

import (
	"strings"
	"testing"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("password1", 4) // minimum cost keeps the test fast
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if hash == "password1" || strings.Contains(hash, "password1") {
		t.Fatalf("hash must not contain the plaintext: %q", hash)
	}
	if !VerifyPassword(hash, "password1") {
		t.Fatalf("expected hash to verify against original plaintext")
	}
	if VerifyPassword(hash, "password2") {
		t.Fatalf("expected verification to fail for a different password")
	}
}

func TestHashPassword_SaltedPerCall(t *testing.T) {
	t.Parallel()

	a, err := HashPassword("password1", 4)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	b, err := HashPassword("password1", 4)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if a == b {
		t.Fatalf("two hashes of the same plaintext must differ (random salt)")
	}
}

func TestVerifyPassword_GarbageHash(t *testing.T) {
	t.Parallel()

	if VerifyPassword("not-a-bcrypt-hash", "whatever") {
		t.Fatalf("garbage hash must never verify")
	}
}

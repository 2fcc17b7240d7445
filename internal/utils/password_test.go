package utils

import "testing"

func TestHashPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("Secret123")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "Secret123" {
		t.Fatalf("hash must not equal the raw password")
	}
	if !CheckPasswordHash("Secret123", hash) {
		t.Fatalf("expected hash check to pass for correct password")
	}
	if CheckPasswordHash("Secret124", hash) {
		t.Fatalf("expected hash check to fail for wrong password")
	}
}

func TestHashPasswordRejectsEmpty(t *testing.T) {
	if _, err := HashPassword(""); err == nil {
		t.Fatalf("expected error for empty password")
	}
}

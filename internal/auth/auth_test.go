package auth

import (
	"errors"
	"testing"
	"time"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hash == "correct horse battery" {
		t.Fatal("password stored in plaintext")
	}

	if err := VerifyPassword(hash, "correct horse battery"); err != nil {
		t.Errorf("VerifyPassword rejected correct password: %v", err)
	}
	if err := VerifyPassword(hash, "wrong password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("VerifyPassword error = %v; want ErrInvalidCredentials", err)
	}
}

func TestHashPasswordRejectsWeak(t *testing.T) {
	if _, err := HashPassword("short"); !errors.Is(err, ErrWeakPassword) {
		t.Errorf("HashPassword error = %v; want ErrWeakPassword", err)
	}
}

func TestJWTRoundTrip(t *testing.T) {
	manager := NewJWTManager("test-secret-key-for-tests", time.Hour)

	token, err := manager.Generate(42, "alice@example.com")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	claims, err := manager.Validate(token)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("UserID = %d; want 42", claims.UserID)
	}
	if claims.Email != "alice@example.com" {
		t.Errorf("Email = %q; want alice@example.com", claims.Email)
	}
}

func TestJWTValidateRejects(t *testing.T) {
	manager := NewJWTManager("test-secret-key-for-tests", time.Hour)

	if _, err := manager.Validate("not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Validate(garbage) error = %v; want ErrInvalidToken", err)
	}

	other := NewJWTManager("a-different-secret", time.Hour)
	token, err := other.Generate(1, "bob@example.com")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if _, err := manager.Validate(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Validate(wrong key) error = %v; want ErrInvalidToken", err)
	}

	expired := NewJWTManager("test-secret-key-for-tests", -time.Minute)
	token, err = expired.Generate(1, "bob@example.com")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if _, err := manager.Validate(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Validate(expired) error = %v; want ErrInvalidToken", err)
	}
}

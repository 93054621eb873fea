package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/tiendaonline/backend/internal/entity"
)

func TestTokenRoundTrip(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)

	token, err := m.Issue(entity.Identity{UserID: "u1", Name: "Ana"})
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	id, tokenID, expiry, err := m.Validate(token)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if id.UserID != "u1" || id.Name != "Ana" {
		t.Fatalf("unexpected identity: %+v", id)
	}
	if tokenID == "" {
		t.Fatal("token must carry a revocable ID")
	}
	if time.Until(expiry) < 59*time.Minute {
		t.Fatalf("unexpected expiry: %v", expiry)
	}
}

func TestTokenWrongSecret(t *testing.T) {
	token, err := NewTokenManager("secret-a", time.Hour).Issue(entity.Identity{UserID: "u1"})
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	_, _, _, err = NewTokenManager("secret-b", time.Hour).Validate(token)
	if !errors.Is(err, entity.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestTokenExpired(t *testing.T) {
	m := NewTokenManager("secret", -time.Minute)

	token, err := m.Issue(entity.Identity{UserID: "u1"})
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	if _, _, _, err := m.Validate(token); !errors.Is(err, entity.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated for expired token, got %v", err)
	}
}

func TestPasswordHashing(t *testing.T) {
	digest, err := HashPassword("hunter2")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if digest == "hunter2" {
		t.Fatal("digest must not equal the plaintext")
	}
	if !CheckPassword("hunter2", digest) {
		t.Fatal("correct password rejected")
	}
	if CheckPassword("hunter3", digest) {
		t.Fatal("wrong password accepted")
	}
}

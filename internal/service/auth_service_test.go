package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tiendaonline/backend/internal/auth"
	"github.com/tiendaonline/backend/internal/entity"
)

type fakeUserRepo struct {
	byEmail map[string]entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: map[string]entity.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, user entity.User) error {
	if _, ok := r.byEmail[user.Email]; ok {
		return entity.ErrConflict
	}
	r.byEmail[user.Email] = user
	return nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (entity.User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return entity.User{}, entity.ErrNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id string) (entity.User, error) {
	for _, u := range r.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return entity.User{}, entity.ErrNotFound
}

func newAuthFixture(t *testing.T) *AuthService {
	t.Helper()
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	return NewAuthService(newFakeUserRepo(), tokens, auth.NewMemoryRevocationStore())
}

func TestRegisterValidation(t *testing.T) {
	svc := newAuthFixture(t)

	cases := []struct {
		name string
		in   RegisterInput
	}{
		{"missing name", RegisterInput{Email: "a@b.com", Password: "pw"}},
		{"missing email", RegisterInput{Name: "Ana", Password: "pw"}},
		{"missing password", RegisterInput{Name: "Ana", Email: "a@b.com"}},
		{"malformed email", RegisterInput{Name: "Ana", Email: "not-an-email", Password: "pw"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Register(context.Background(), tc.in); !errors.Is(err, entity.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newAuthFixture(t)
	in := RegisterInput{Name: "Ana", Email: "ana@example.com", Password: "secret"}

	if _, err := svc.Register(context.Background(), in); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, err := svc.Register(context.Background(), in); !errors.Is(err, entity.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestLoginAndAuthenticate(t *testing.T) {
	svc := newAuthFixture(t)
	in := RegisterInput{Name: "Ana", Email: "ana@example.com", Password: "secret"}
	if _, err := svc.Register(context.Background(), in); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	t.Run("wrong password -> unauthenticated", func(t *testing.T) {
		_, _, err := svc.Login(context.Background(), "ana@example.com", "nope")
		if !errors.Is(err, entity.ErrUnauthenticated) {
			t.Fatalf("expected ErrUnauthenticated, got %v", err)
		}
	})

	t.Run("unknown email -> same unauthenticated error", func(t *testing.T) {
		_, _, err := svc.Login(context.Background(), "ghost@example.com", "secret")
		if !errors.Is(err, entity.ErrUnauthenticated) {
			t.Fatalf("expected ErrUnauthenticated, got %v", err)
		}
	})

	t.Run("valid credentials -> token round-trips", func(t *testing.T) {
		token, id, err := svc.Login(context.Background(), "ana@example.com", "secret")
		if err != nil {
			t.Fatalf("login failed: %v", err)
		}
		if id.Name != "Ana" {
			t.Fatalf("expected identity name Ana, got %q", id.Name)
		}

		got, err := svc.Authenticate(context.Background(), token)
		if err != nil {
			t.Fatalf("authenticate failed: %v", err)
		}
		if got.UserID != id.UserID {
			t.Fatalf("expected user %s, got %s", id.UserID, got.UserID)
		}
	})
}

func TestProfileReturnsAccountForIdentity(t *testing.T) {
	svc := newAuthFixture(t)
	user, err := svc.Register(context.Background(), RegisterInput{Name: "Ana", Email: "ana@example.com", Password: "secret", Phone: "555-0101"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	got, err := svc.Profile(context.Background(), entity.Identity{UserID: user.ID})
	if err != nil {
		t.Fatalf("profile failed: %v", err)
	}
	if got.ID != user.ID || got.Email != "ana@example.com" || got.Phone != "555-0101" {
		t.Fatalf("unexpected profile: %+v", got)
	}

	if _, err := svc.Profile(context.Background(), entity.Identity{UserID: "ghost"}); !errors.Is(err, entity.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown user, got %v", err)
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	svc := newAuthFixture(t)
	if _, err := svc.Register(context.Background(), RegisterInput{Name: "Ana", Email: "ana@example.com", Password: "secret"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	token, _, err := svc.Login(context.Background(), "ana@example.com", "secret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if err := svc.Logout(context.Background(), token); err != nil {
		t.Fatalf("logout failed: %v", err)
	}

	if _, err := svc.Authenticate(context.Background(), token); !errors.Is(err, entity.ErrUnauthenticated) {
		t.Fatalf("expected revoked token to be rejected, got %v", err)
	}
}

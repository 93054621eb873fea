package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tiendaonline/backend/internal/auth"
	"github.com/tiendaonline/backend/internal/entity"
	"github.com/tiendaonline/backend/internal/repository"
)

// AuthService handles registration, login and logout.
type AuthService struct {
	users   repository.UserRepository
	tokens  *auth.TokenManager
	revoked auth.RevocationStore
}

func NewAuthService(users repository.UserRepository, tokens *auth.TokenManager, revoked auth.RevocationStore) *AuthService {
	return &AuthService{
		users:   users,
		tokens:  tokens,
		revoked: revoked,
	}
}

// RegisterInput carries the fields of a registration request.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
}

// Register creates a new customer account. Returns entity.ErrConflict
// if the email is already registered.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (entity.User, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))

	if in.Name == "" || in.Email == "" || in.Password == "" {
		return entity.User{}, fmt.Errorf("%w: name, email and password are required", entity.ErrInvalidInput)
	}
	if !strings.Contains(in.Email, "@") {
		return entity.User{}, fmt.Errorf("%w: malformed email", entity.ErrInvalidInput)
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return entity.User{}, err
	}

	user := entity.User{
		ID:           uuid.New().String(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		Phone:        strings.TrimSpace(in.Phone),
		Role:         "customer",
		CreatedAt:    time.Now(),
	}

	if err := s.users.Create(ctx, user); err != nil {
		return entity.User{}, err
	}

	slog.Info("user registered", "user_id", user.ID)
	return user, nil
}

// Login verifies credentials and issues a session token. Unknown email
// and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, entity.Identity, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return "", entity.Identity{}, fmt.Errorf("%w: email and password are required", entity.ErrInvalidInput)
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return "", entity.Identity{}, fmt.Errorf("%w: invalid credentials", entity.ErrUnauthenticated)
		}
		return "", entity.Identity{}, err
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return "", entity.Identity{}, fmt.Errorf("%w: invalid credentials", entity.ErrUnauthenticated)
	}

	id := entity.Identity{UserID: user.ID, Name: user.Name}
	token, err := s.tokens.Issue(id)
	if err != nil {
		return "", entity.Identity{}, err
	}

	slog.Info("user logged in", "user_id", user.ID)
	return token, id, nil
}

// Authenticate validates a presented token and rejects tokens revoked
// by an earlier logout.
func (s *AuthService) Authenticate(ctx context.Context, token string) (entity.Identity, error) {
	id, tokenID, _, err := s.tokens.Validate(token)
	if err != nil {
		return entity.Identity{}, err
	}

	revoked, err := s.revoked.IsRevoked(ctx, tokenID)
	if err != nil {
		return entity.Identity{}, err
	}
	if revoked {
		return entity.Identity{}, fmt.Errorf("%w: token revoked", entity.ErrUnauthenticated)
	}
	return id, nil
}

// Profile returns the account record backing an authenticated
// identity.
func (s *AuthService) Profile(ctx context.Context, id entity.Identity) (entity.User, error) {
	return s.users.FindByID(ctx, id.UserID)
}

// Logout revokes the presented token until its natural expiry.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	id, tokenID, expiry, err := s.tokens.Validate(token)
	if err != nil {
		return err
	}
	if err := s.revoked.Revoke(ctx, tokenID, expiry); err != nil {
		return err
	}
	slog.Info("user logged out", "user_id", id.UserID)
	return nil
}

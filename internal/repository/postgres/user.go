package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tiendaonline/backend/internal/entity"
	"github.com/tiendaonline/backend/internal/repository"
)

type userRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new UserRepository backed by Postgres.
func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user entity.User) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO users (id, name, email, password_hash, phone, role, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7)",
		user.ID, user.Name, user.Email, user.PasswordHash, user.Phone, user.Role, user.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("email %s: %w", user.Email, entity.ErrConflict)
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (entity.User, error) {
	var u entity.User
	err := r.db.QueryRowContext(ctx,
		"SELECT id, name, email, password_hash, phone, role, created_at FROM users WHERE email = $1",
		email,
	).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Phone, &u.Role, &u.CreatedAt)
	if err != nil {
		return entity.User{}, notFound(err)
	}
	return u, nil
}

func (r *userRepository) FindByID(ctx context.Context, id string) (entity.User, error) {
	var u entity.User
	err := r.db.QueryRowContext(ctx,
		"SELECT id, name, email, password_hash, phone, role, created_at FROM users WHERE id = $1",
		id,
	).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Phone, &u.Role, &u.CreatedAt)
	if err != nil {
		return entity.User{}, notFound(err)
	}
	return u, nil
}

// Package repository provides the postgres persistence layer. All queries use
// schema-qualified tables under finplan.* and wrap failures with context.
package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/niveshak/finplan/internal/models"
)

// Repository provides database operations
type Repository struct {
	db *sql.DB
}

// NewRepository initializes a new repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// CreateUser creates a new user in the database
func (r *Repository) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO finplan.users (username, email, password_hash, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id, created_at, updated_at`
	if user.Role == "" {
		user.Role = models.RoleUser
	}
	err := r.db.QueryRowContext(ctx, query, user.Username, user.Email, user.PasswordHash, user.Role).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindUserByEmail retrieves a user by email
func (r *Repository) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, username, email, password_hash, role, role_expires_at, created_at, updated_at
		FROM finplan.users
		WHERE email = $1`
	err := r.db.QueryRowContext(ctx, query, email).
		Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.Role, &user.RoleExpiresAt, &user.CreatedAt, &user.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// FindUserByID retrieves a user by id
func (r *Repository) FindUserByID(ctx context.Context, id int64) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, username, email, password_hash, role, role_expires_at, created_at, updated_at
		FROM finplan.users
		WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.Role, &user.RoleExpiresAt, &user.CreatedAt, &user.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// RevertExpiredRoles downgrades every user whose premium role has passed its
// expiry back to the base role. Returns the number of users reverted; running
// it twice in a row is a no-op the second time.
func (r *Repository) RevertExpiredRoles(ctx context.Context) (int64, error) {
	query := `
		UPDATE finplan.users
		SET role = $1, role_expires_at = NULL, updated_at = CURRENT_TIMESTAMP
		WHERE role = $2 AND role_expires_at IS NOT NULL AND role_expires_at < CURRENT_TIMESTAMP`
	result, err := r.db.ExecContext(ctx, query, models.RoleUser, models.RolePremium)
	if err != nil {
		return 0, fmt.Errorf("failed to revert expired roles: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count reverted roles: %w", err)
	}
	return affected, nil
}

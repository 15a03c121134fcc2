package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// User is a registered account.
type User struct {
	Username  string
	CreatedAt time.Time
}

// ErrUserExists is returned by Create when the username is taken.
// Registration must not silently replace an existing user's hash;
// password changes go through ReplacePassword.
var ErrUserExists = errors.New("username already exists")

// ErrUserNotFound is returned when a username has no row.
var ErrUserNotFound = errors.New("user not found")

// UserRepo manages user rows. Users are never deleted in-app.
type UserRepo struct {
	db *sql.DB
}

// Create inserts a new user with the given bcrypt hash.
func (r *UserRepo) Create(ctx context.Context, username, passwordHash string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (username, password_hash) VALUES (?, ?)`,
		username, passwordHash,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") ||
			strings.Contains(err.Error(), "constraint failed") {
			return ErrUserExists
		}
		return fmt.Errorf("create user %q: %w", username, err)
	}
	return nil
}

// Exists reports whether a user row is present for username.
func (r *UserRepo) Exists(ctx context.Context, username string) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx,
		`SELECT 1 FROM users WHERE username = ?`, username,
	).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check user %q: %w", username, err)
	}
	return true, nil
}

// PasswordHash returns the stored bcrypt hash for username.
func (r *UserRepo) PasswordHash(ctx context.Context, username string) (string, error) {
	var hash string
	err := r.db.QueryRowContext(ctx,
		`SELECT password_hash FROM users WHERE username = ?`, username,
	).Scan(&hash)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrUserNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get hash for %q: %w", username, err)
	}
	return hash, nil
}

// List returns all users ordered by username.
func (r *UserRepo) List(ctx context.Context) ([]User, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT username, created_at FROM users ORDER BY username`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.Username, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return users, nil
}

// ReplacePassword overwrites the stored hash for an existing user.
func (r *UserRepo) ReplacePassword(ctx context.Context, username, passwordHash string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET password_hash = ? WHERE username = ?`,
		passwordHash, username,
	)
	if err != nil {
		return fmt.Errorf("replace password for %q: %w", username, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("replace password for %q: %w", username, err)
	}
	if n == 0 {
		return ErrUserNotFound
	}
	return nil
}

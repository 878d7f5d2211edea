package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"kanmind/internal/models"
)

// CreateUser inserts a new user record and returns it with its id set.
func (s *Store) CreateUser(ctx context.Context, u models.User) (models.User, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO users(email, first_name, last_name, password_hash, is_staff, is_superuser) VALUES(?, ?, ?, ?, ?, ?)`,
		u.Email, u.FirstName, u.LastName, u.PasswordHash, u.IsStaff, u.IsSuperuser)
	if err != nil {
		return models.User{}, fmt.Errorf("insert user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.User{}, fmt.Errorf("user id: %w", err)
	}
	return s.UserByID(ctx, id)
}

// UserByID fetches a single user by id.
func (s *Store) UserByID(ctx context.Context, id int64) (models.User, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	u, err := scanUser(row)
	if err != nil {
		return models.User{}, notFoundOr(err, "get user")
	}
	return u, nil
}

// UserByEmail looks a user up by their login email.
func (s *Store) UserByEmail(ctx context.Context, email string) (models.User, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	u, err := scanUser(row)
	if err != nil {
		return models.User{}, notFoundOr(err, "get user by email")
	}
	return u, nil
}

// EmailExists reports whether a user with the given email is registered.
func (s *Store) EmailExists(ctx context.Context, email string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE email = ?`, email).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("count users: %w", err)
	}
	return n > 0, nil
}

// ListUsers returns every registered user ordered by id.
func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// GetOrCreateToken returns the user's persistent token, creating it on first
// use. The unique constraint on user_id keeps concurrent logins from ever
// producing two distinct tokens: losers of the insert race fall back to the
// fetch.
func (s *Store) GetOrCreateToken(ctx context.Context, userID int64) (string, error) {
	key := strings.ReplaceAll(uuid.NewString()+uuid.NewString(), "-", "")
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO auth_tokens(key, user_id) VALUES(?, ?) ON CONFLICT(user_id) DO NOTHING`, key, userID)
	if err != nil {
		return "", fmt.Errorf("insert token: %w", err)
	}

	var stored string
	err = s.db.QueryRowContext(ctx, `SELECT key FROM auth_tokens WHERE user_id = ?`, userID).Scan(&stored)
	if err != nil {
		return "", notFoundOr(err, "get token")
	}
	return stored, nil
}

// UserByToken resolves a bearer token key to its user.
func (s *Store) UserByToken(ctx context.Context, key string) (models.User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT u.id, u.email, u.first_name, u.last_name, u.password_hash, u.is_staff, u.is_superuser, u.created_at
         FROM users u JOIN auth_tokens t ON t.user_id = u.id WHERE t.key = ?`, key)
	u, err := scanUser(row)
	if err != nil {
		return models.User{}, notFoundOr(err, "get user by token")
	}
	return u, nil
}

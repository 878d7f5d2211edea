package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"kanmind/internal/models"
	"kanmind/internal/storage/sqlite"
)

// loginFailed is deliberately identical for unknown emails and wrong
// passwords so callers cannot probe which addresses are registered.
const loginFailed = "Unable to log in with provided credentials."

// AccountService handles registration, login and user directory lookups.
type AccountService struct {
	store  *sqlite.Store
	logger *slog.Logger
}

// RegisterInput carries the registration payload.
type RegisterInput struct {
	Fullname         string
	Email            string
	Password         string
	RepeatedPassword string
}

// Session pairs a user with their persistent bearer token.
type Session struct {
	Token string
	User  models.User
}

// Register validates the input, creates the identity record with a hashed
// password and issues the user's token. Checks run in order and the first
// missing field short-circuits the rest.
func (s *AccountService) Register(ctx context.Context, in RegisterInput) (Session, error) {
	if strings.TrimSpace(in.Fullname) == "" {
		return Session{}, fieldError("fullname", "Fullname is required.")
	}
	if strings.TrimSpace(in.Email) == "" {
		return Session{}, fieldError("email", "Email is required.")
	}
	if in.Password == "" {
		return Session{}, fieldError("password", "Password is required.")
	}
	if in.RepeatedPassword == "" {
		return Session{}, fieldError("repeated_password", "Repeated password is required.")
	}

	email := strings.TrimSpace(in.Email)
	if _, err := mail.ParseAddress(email); err != nil {
		return Session{}, fieldError("email", "Enter a valid email address.")
	}
	if in.Password != in.RepeatedPassword {
		return Session{}, fieldError("password", "Passwords must match.")
	}

	taken, err := s.store.EmailExists(ctx, email)
	if err != nil {
		return Session{}, err
	}
	if taken {
		return Session{}, fieldError("email", "Email is already in use.")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return Session{}, fmt.Errorf("hash password: %w", err)
	}

	first, last := models.SplitFullName(in.Fullname)
	user, err := s.store.CreateUser(ctx, models.User{
		Email:        email,
		FirstName:    first,
		LastName:     last,
		PasswordHash: string(hash),
	})
	if err != nil {
		return Session{}, err
	}

	token, err := s.store.GetOrCreateToken(ctx, user.ID)
	if err != nil {
		return Session{}, err
	}
	s.logger.Info("user registered", slog.Int64("user_id", user.ID))
	return Session{Token: token, User: user}, nil
}

// Login verifies the credentials and returns the user's persistent token.
// Re-login never rotates the token.
func (s *AccountService) Login(ctx context.Context, email, password string) (Session, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return Session{}, fieldError("non_field_errors", `Must include "email" and "password".`)
	}

	user, err := s.store.UserByEmail(ctx, strings.TrimSpace(email))
	if errors.Is(err, sqlite.ErrNotFound) {
		return Session{}, fieldError("non_field_errors", loginFailed)
	}
	if err != nil {
		return Session{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return Session{}, fieldError("non_field_errors", loginFailed)
	}

	token, err := s.store.GetOrCreateToken(ctx, user.ID)
	if err != nil {
		return Session{}, err
	}
	return Session{Token: token, User: user}, nil
}

// EnsureAdmin creates a superuser account at startup when none exists for
// the given email. Used to bootstrap the first admin of a deployment.
func (s *AccountService) EnsureAdmin(ctx context.Context, email, password string) error {
	exists, err := s.store.EmailExists(ctx, email)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user, err := s.store.CreateUser(ctx, models.User{
		Email:        email,
		FirstName:    "Admin",
		PasswordHash: string(hash),
		IsStaff:      true,
		IsSuperuser:  true,
	})
	if err != nil {
		return err
	}
	s.logger.Info("admin account created", slog.Int64("user_id", user.ID))
	return nil
}

// CheckEmail looks a user up by email for member invitation flows.
func (s *AccountService) CheckEmail(ctx context.Context, email string) (models.User, error) {
	if _, err := mail.ParseAddress(email); err != nil {
		return models.User{}, fieldError("email", "Enter a valid email address.")
	}
	return s.store.UserByEmail(ctx, email)
}

// Users lists the user directory.
func (s *AccountService) Users(ctx context.Context) ([]models.User, error) {
	return s.store.ListUsers(ctx)
}

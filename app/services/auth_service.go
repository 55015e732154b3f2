// Package services holds the business logic between controllers and the
// persistence layer.
package services

import (
	"context"
	"errors"
	"strings"

	"github.com/freshmart/api/app/models"
	"github.com/freshmart/api/app/repositories"
	"github.com/freshmart/api/config"
	"github.com/freshmart/api/pkg/auth"
	"github.com/freshmart/api/pkg/logger"
)

const minPasswordLength = 6

// AuthService implements registration, login and the password-reset flow.
type AuthService struct {
	users  UserStore
	mailer Mailer
}

func NewAuthService(users UserStore, mailer Mailer) *AuthService {
	return &AuthService{users: users, mailer: mailer}
}

// RegisterParams is the already shape-validated registration input.
type RegisterParams struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// Register creates a user account. Check order is part of the contract:
// the validator has already handled presence and email format; here the
// duplicate check runs before the password-length check. The role is
// escalated to admin when the email is on the configured allowlist.
func (s *AuthService) Register(ctx context.Context, params RegisterParams) (*models.User, error) {
	email := strings.ToLower(params.Email)

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, ErrUserExists
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	if len(params.Password) < minPasswordLength {
		return nil, ErrWeakPassword
	}

	hash, err := auth.HashPassword(params.Password)
	if err != nil {
		return nil, err
	}

	role := models.RoleUser
	for _, admin := range config.AdminEmails() {
		if admin == email {
			role = models.RoleAdmin
			break
		}
	}

	user := &models.User{
		Email:     email,
		Password:  hash,
		FirstName: params.FirstName,
		LastName:  params.LastName,
		Role:      role,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, ErrUserExists
		}
		return nil, err
	}

	logger.WithCtx(ctx).Info("user registered", "email", user.Email, "role", user.Role)
	return user, nil
}

// Login verifies credentials and issues the access and refresh tokens.
// The refresh token is returned to the client but no endpoint consumes it.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, "", "", ErrUserNotFound
		}
		return nil, "", "", err
	}

	if !auth.CheckPassword(user.Password, password) {
		return nil, "", "", ErrInvalidCredentials
	}

	accessToken, err := auth.GenerateAccessToken(user.ID.Hex())
	if err != nil {
		return nil, "", "", err
	}
	refreshToken, err := auth.GenerateRefreshToken(user.ID.Hex())
	if err != nil {
		return nil, "", "", err
	}

	return user, accessToken, refreshToken, nil
}

// ForgotPassword emails a reset link carrying a short-lived token. The
// token holds only the user ID, never a user snapshot.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	token, err := auth.GenerateResetToken(user.ID.Hex())
	if err != nil {
		return err
	}

	if err := s.mailer.SendPasswordReset(user.Email, token); err != nil {
		return err
	}

	logger.WithCtx(ctx).Info("password reset email sent", "email", user.Email)
	return nil
}

// ResetPassword replaces the stored hash for the account with the given
// email.
func (s *AuthService) ResetPassword(ctx context.Context, email, newPassword string) error {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}

	return s.users.UpdatePassword(ctx, user.ID, hash)
}

package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sakif/contact-manager/internal/apperror"
	"github.com/sakif/contact-manager/internal/auth"
	"github.com/sakif/contact-manager/internal/model"
	"github.com/sakif/contact-manager/internal/repository"
	"github.com/sakif/contact-manager/internal/validation"
)

// AuthService handles login and logout.
type AuthService struct {
	users     repository.UserRepository
	tokens    *auth.TokenService
	passwords *auth.PasswordService
	logger    *slog.Logger
}

// NewAuthService creates an AuthService.
func NewAuthService(
	users repository.UserRepository,
	tokens *auth.TokenService,
	passwords *auth.PasswordService,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		users:     users,
		tokens:    tokens,
		passwords: passwords,
		logger:    logger,
	}
}

// Login verifies the credentials and issues a fresh session token.
//
// "Unknown username" and "wrong password" both return the same message.
// Distinguishing them would let an attacker probe which usernames exist —
// the one thing a login endpoint must never reveal.
//
// Logging in again overwrites any previous token: one active session per
// user. When two logins race, last write wins and the loser's token simply
// stops resolving.
func (s *AuthService) Login(ctx context.Context, req model.LoginUserRequest) (*model.TokenResponse, error) {
	if err := validation.Validate(
		validation.Field("username", req.Username, validation.Required(), validation.MaxLength(MaxFieldLength)),
		validation.Field("password", req.Password, validation.Required(), validation.MaxLength(MaxFieldLength)),
	); err != nil {
		return nil, err
	}

	user, err := s.users.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.Unauthorized("Username or Password wrong!")
		}
		s.logger.Error("failed to load user for login",
			slog.String("username", req.Username),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("loading user: %w", err)
	}

	if err := s.passwords.Verify(user.PasswordHash, req.Password); err != nil {
		return nil, apperror.Unauthorized("Username or Password wrong!")
	}

	token, expiresAt, err := s.tokens.Generate()
	if err != nil {
		return nil, fmt.Errorf("generating token: %w", err)
	}

	if err := s.users.UpdateToken(ctx, user.Username, token, expiresAt); err != nil {
		s.logger.Error("failed to store session token",
			slog.String("username", user.Username),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("storing token: %w", err)
	}

	s.logger.Info("user logged in", slog.String("username", user.Username))

	return &model.TokenResponse{
		Token:     token,
		ExpiredAt: expiresAt.UnixMilli(),
	}, nil
}

// Logout revokes the user's session by clearing the stored token. The next
// request carrying the old token fails authentication immediately.
func (s *AuthService) Logout(ctx context.Context, username string) error {
	if err := s.users.ClearToken(ctx, username); err != nil {
		s.logger.Error("failed to clear session token",
			slog.String("username", username),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("clearing token: %w", err)
	}

	s.logger.Info("user logged out", slog.String("username", username))
	return nil
}

// Package service contains the business logic layer of the application.
//
// THE THREE-LAYER ARCHITECTURE:
//
//	Handler (HTTP layer)     → parses requests, writes responses
//	Service (Business layer) → validates, enforces rules, orchestrates
//	Repository (Data layer)  → reads/writes to the database
//
// Services accept plain values and return domain errors (apperror), never
// HTTP types. The handlers translate both directions. Every service takes
// repository INTERFACES, so tests swap in mocks without a database.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sakif/contact-manager/internal/apperror"
	"github.com/sakif/contact-manager/internal/auth"
	"github.com/sakif/contact-manager/internal/model"
	"github.com/sakif/contact-manager/internal/repository"
	"github.com/sakif/contact-manager/internal/validation"
)

// MaxFieldLength caps the common short text fields (username, password, name).
const MaxFieldLength = 100

// UserService handles account registration and profile reads.
type UserService struct {
	users     repository.UserRepository
	passwords *auth.PasswordService
	logger    *slog.Logger
}

// NewUserService creates a UserService.
func NewUserService(users repository.UserRepository, passwords *auth.PasswordService, logger *slog.Logger) *UserService {
	return &UserService{
		users:     users,
		passwords: passwords,
		logger:    logger,
	}
}

// Register validates and creates a new account.
//
// The duplicate check runs before hashing: bcrypt costs ~250ms, and there is
// no point paying it for a username that's already taken. The PRIMARY KEY
// constraint backstops the race where two registrations slip past the check.
func (s *UserService) Register(ctx context.Context, req model.RegisterUserRequest) (*model.UserResponse, error) {
	if err := validation.Validate(
		validation.Field("username", req.Username, validation.Required(), validation.MaxLength(MaxFieldLength)),
		validation.Field("password", req.Password, validation.Required(), validation.MaxLength(MaxFieldLength)),
		validation.Field("name", req.Name, validation.Required(), validation.MaxLength(MaxFieldLength)),
	); err != nil {
		return nil, err
	}

	taken, err := s.users.ExistsByUsername(ctx, req.Username)
	if err != nil {
		s.logger.Error("failed to check username availability",
			slog.String("username", req.Username),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("checking username: %w", err)
	}
	if taken {
		return nil, apperror.BadRequest("Username already registered")
	}

	hash, err := s.passwords.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &model.User{
		Username:     req.Username,
		Name:         req.Name,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		s.logger.Error("failed to create user",
			slog.String("username", req.Username),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating user: %w", err)
	}

	s.logger.Info("user registered", slog.String("username", user.Username))

	return &model.UserResponse{
		Username: user.Username,
		Name:     user.Name,
	}, nil
}

// Current projects the authenticated user into its public view. The
// middleware already resolved the principal, so there is nothing to look up.
func (s *UserService) Current(user *model.User) model.UserResponse {
	return model.UserResponse{
		Username: user.Username,
		Name:     user.Name,
	}
}

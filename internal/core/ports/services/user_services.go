package services

import (
	"context"

	"github.com/loooooooooogp/Account/internal/core/domain"
	"github.com/loooooooooogp/Account/internal/dto"
)

// UserSvcFacade defines registration, authentication and user lookup.
type UserSvcFacade interface {
	// RegisterUser creates a new user with a hashed password.
	// Returns apperrors.ErrDuplicate when the username is taken.
	RegisterUser(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error)

	// AuthenticateUser verifies the credentials and returns the user.
	// Returns apperrors.ErrForbidden on a bad username or password.
	AuthenticateUser(ctx context.Context, username, password string) (*domain.User, error)

	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
}

package services

import (
	"context"

	"github.com/loooooooooogp/Account/internal/core/domain"
	"github.com/loooooooooogp/Account/internal/dto"
)

// AccountSvcFacade defines account lifecycle operations.
type AccountSvcFacade interface {
	// CreateAccount creates an account owned by the creator.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error)

	// GetAccountByID retrieves an account visible to the requesting user
	// (owner or any share link). Returns apperrors.ErrNotFound otherwise.
	GetAccountByID(ctx context.Context, accountID string, requestingUserID string) (*domain.Account, error)

	// ListAccounts retrieves the accounts owned by the user.
	ListAccounts(ctx context.Context, ownerUserID string) ([]domain.Account, error)

	// UpdateAccount updates name/type of an account the user owns.
	UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error)

	// DeleteAccount removes an owned account that has no transactions.
	// Returns apperrors.ErrConflict when transactions still reference it.
	DeleteAccount(ctx context.Context, accountID string, userID string) error
}

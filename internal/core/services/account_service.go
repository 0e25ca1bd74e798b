package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/loooooooooogp/Account/internal/apperrors"
	"github.com/loooooooooogp/Account/internal/core/domain"
	portsrepo "github.com/loooooooooogp/Account/internal/core/ports/repositories"
	portssvc "github.com/loooooooooogp/Account/internal/core/ports/services"
	"github.com/loooooooooogp/Account/internal/dto"
	"github.com/loooooooooogp/Account/internal/middleware"
)

// accountService handles account lifecycle operations. Name and type are the
// only mutable fields; the balance moves exclusively through the ledger.
type accountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
	txnReader   portsrepo.TransactionReader
	sharing     portssvc.SharingAuthorizerSvc
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade, txnReader portsrepo.TransactionReader, sharing portssvc.SharingAuthorizerSvc) portssvc.AccountSvcFacade {
	return &accountService{
		accountRepo: accountRepo,
		txnReader:   txnReader,
		sharing:     sharing,
	}
}

// Ensure accountService implements the portssvc.AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount creates an account owned by the creator.
func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	balance := decimal.Zero
	if req.InitialBalance != nil {
		balance = *req.InitialBalance
	}

	now := time.Now()
	account := domain.Account{
		AccountID:   uuid.NewString(),
		OwnerUserID: creatorUserID,
		Name:        req.Name,
		AccountType: req.AccountType,
		Balance:     balance,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		logger.Error("Failed to save account in repository", slog.String("error", err.Error()), slog.String("account_name", req.Name))
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	logger.Info("Account created", slog.String("account_id", account.AccountID))
	return &account, nil
}

// GetAccountByID retrieves an account the requesting user owns or holds any
// share link on. Everyone else gets not-found.
func (s *accountService) GetAccountByID(ctx context.Context, accountID string, requestingUserID string) (*domain.Account, error) {
	if err := s.sharing.AuthorizeAccountAccess(ctx, requestingUserID, accountID, domain.PermissionRead); err != nil {
		return nil, err
	}

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("account not found")
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return account, nil
}

// ListAccounts retrieves the accounts owned by the user.
func (s *accountService) ListAccounts(ctx context.Context, ownerUserID string) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccountsByOwner(ctx, ownerUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// UpdateAccount updates name and type of an account the user owns.
func (s *accountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Name == nil && req.AccountType == nil {
		return nil, fmt.Errorf("%w: no fields to update", apperrors.ErrValidation)
	}

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("account not found")
		}
		return nil, fmt.Errorf("failed to update account: %w", err)
	}
	if account.OwnerUserID != userID {
		// Non-owners are not told whether the account exists.
		return nil, apperrors.NewNotFoundError("account not found")
	}

	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.AccountType != nil {
		account.AccountType = *req.AccountType
	}
	account.LastUpdatedAt = time.Now()
	account.LastUpdatedBy = userID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		logger.Error("Failed to update account in repository", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to update account: %w", err)
	}

	return account, nil
}

// DeleteAccount removes an owned account. Accounts with transactions cannot
// be deleted, otherwise their rows would become unreadable history.
func (s *accountService) DeleteAccount(ctx context.Context, accountID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewNotFoundError("account not found")
		}
		return fmt.Errorf("failed to delete account: %w", err)
	}
	if account.OwnerUserID != userID {
		return apperrors.NewNotFoundError("account not found")
	}

	count, err := s.txnReader.CountTransactionsByAccount(ctx, accountID)
	if err != nil {
		logger.Error("Failed to count transactions for account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return fmt.Errorf("failed to delete account: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("%w: account still has %d transactions", apperrors.ErrConflict, count)
	}

	if err := s.accountRepo.DeleteAccount(ctx, accountID); err != nil {
		logger.Error("Failed to delete account in repository", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return fmt.Errorf("failed to delete account: %w", err)
	}

	logger.Info("Account deleted", slog.String("account_id", accountID))
	return nil
}

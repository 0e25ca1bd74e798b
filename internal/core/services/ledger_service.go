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

var (
	// ErrInvalidAmount is returned when a transaction amount is not positive.
	ErrInvalidAmount = fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	// ErrInvalidCategory is returned when the category does not exist or is
	// another user's private category.
	ErrInvalidCategory = fmt.Errorf("%w: category not usable by this user", apperrors.ErrValidation)
	// ErrNoChanges is returned when an amend request carries no fields.
	ErrNoChanges = fmt.Errorf("%w: no fields to update", apperrors.ErrValidation)
)

// defaultListLimit is the page size used when the caller does not set one.
const defaultListLimit = 50

// ledgerService handles the transaction lifecycle. Each mutation hands its
// row change and the signed balance deltas it implies to the repository,
// which applies both inside one database transaction.
type ledgerService struct {
	txnRepo      portsrepo.TransactionRepositoryWithTx
	categoryRepo portsrepo.CategoryReader
	sharing      portssvc.SharingAuthorizerSvc
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(txnRepo portsrepo.TransactionRepositoryWithTx, categoryRepo portsrepo.CategoryReader, sharing portssvc.SharingAuthorizerSvc) portssvc.LedgerSvcFacade {
	return &ledgerService{
		txnRepo:      txnRepo,
		categoryRepo: categoryRepo,
		sharing:      sharing,
	}
}

// Ensure ledgerService implements the portssvc.LedgerSvcFacade interface
var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// validateCategory checks that the category exists and is usable by the actor.
func (s *ledgerService) validateCategory(ctx context.Context, categoryID, actorUserID string) error {
	category, err := s.categoryRepo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return ErrInvalidCategory
		}
		return fmt.Errorf("failed to validate category: %w", err)
	}
	if !category.VisibleTo(actorUserID) {
		return ErrInvalidCategory
	}
	return nil
}

// RecordTransaction creates a transaction for the actor on an account they
// own or hold write access to, applying its balance delta atomically.
func (s *ledgerService) RecordTransaction(ctx context.Context, actorUserID string, req dto.RecordTransactionRequest) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.sharing.AuthorizeAccountAccess(ctx, actorUserID, req.AccountID, domain.PermissionWrite); err != nil {
		return nil, err
	}

	if !req.Type.Valid() {
		return nil, fmt.Errorf("%w: unknown transaction type %q", apperrors.ErrValidation, req.Type)
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidAmount
	}
	if err := s.validateCategory(ctx, req.CategoryID, actorUserID); err != nil {
		return nil, err
	}

	date, err := dto.ParseDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date %q", apperrors.ErrValidation, req.Date)
	}

	now := time.Now()
	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		UserID:        actorUserID,
		AccountID:     req.AccountID,
		Type:          req.Type,
		Amount:        req.Amount,
		CategoryID:    req.CategoryID,
		Date:          date,
		Description:   req.Description,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorUserID,
		},
	}

	balanceChanges := map[string]decimal.Decimal{
		txn.AccountID: txn.SignedAmount(),
	}

	if err := s.txnRepo.SaveTransaction(ctx, txn, balanceChanges); err != nil {
		logger.Error("Failed to save transaction", slog.String("error", err.Error()), slog.String("account_id", txn.AccountID))
		return nil, fmt.Errorf("failed to record transaction: %w", err)
	}

	logger.Info("Transaction recorded",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("account_id", txn.AccountID),
		slog.String("type", string(txn.Type)),
		slog.String("amount", txn.Amount.String()),
	)
	return &txn, nil
}

// AmendTransaction applies a partial update. Authorization is checked against
// the transaction's current account, and again against the target account
// when the amendment moves the transaction. The balance deltas reverse the
// old signed amount and apply the new one, so the invariant holds on both
// accounts no matter which fields changed.
func (s *ledgerService) AmendTransaction(ctx context.Context, transactionID, actorUserID string, req dto.AmendTransactionRequest) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Empty() {
		return nil, ErrNoChanges
	}

	existing, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("transaction not found")
		}
		return nil, fmt.Errorf("failed to amend transaction: %w", err)
	}

	if err := s.sharing.AuthorizeAccountAccess(ctx, actorUserID, existing.AccountID, domain.PermissionWrite); err != nil {
		return nil, err
	}

	updated := *existing
	if req.AccountID != nil && *req.AccountID != existing.AccountID {
		// Moving to another account needs write access there too, checked
		// before any balance is touched.
		if err := s.sharing.AuthorizeAccountAccess(ctx, actorUserID, *req.AccountID, domain.PermissionWrite); err != nil {
			return nil, err
		}
		updated.AccountID = *req.AccountID
	}
	if req.Type != nil {
		if !req.Type.Valid() {
			return nil, fmt.Errorf("%w: unknown transaction type %q", apperrors.ErrValidation, *req.Type)
		}
		updated.Type = *req.Type
	}
	if req.Amount != nil {
		if req.Amount.LessThanOrEqual(decimal.Zero) {
			return nil, ErrInvalidAmount
		}
		updated.Amount = *req.Amount
	}
	if req.CategoryID != nil {
		if err := s.validateCategory(ctx, *req.CategoryID, actorUserID); err != nil {
			return nil, err
		}
		updated.CategoryID = *req.CategoryID
	}
	if req.Date != nil {
		date, err := dto.ParseDate(*req.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid date %q", apperrors.ErrValidation, *req.Date)
		}
		updated.Date = date
	}
	if req.Description != nil {
		updated.Description = *req.Description
	}

	updated.LastUpdatedAt = time.Now()
	updated.LastUpdatedBy = actorUserID

	balanceChanges := map[string]decimal.Decimal{}
	balanceChanges[existing.AccountID] = balanceChanges[existing.AccountID].Sub(existing.SignedAmount())
	balanceChanges[updated.AccountID] = balanceChanges[updated.AccountID].Add(updated.SignedAmount())

	if err := s.txnRepo.UpdateTransaction(ctx, updated, balanceChanges); err != nil {
		logger.Error("Failed to update transaction", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		return nil, fmt.Errorf("failed to amend transaction: %w", err)
	}

	logger.Info("Transaction amended", slog.String("transaction_id", transactionID))
	return &updated, nil
}

// RemoveTransaction deletes a transaction and reverses its balance delta.
func (s *ledgerService) RemoveTransaction(ctx context.Context, transactionID, actorUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	existing, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewNotFoundError("transaction not found")
		}
		return fmt.Errorf("failed to remove transaction: %w", err)
	}

	if err := s.sharing.AuthorizeAccountAccess(ctx, actorUserID, existing.AccountID, domain.PermissionWrite); err != nil {
		return err
	}

	balanceChanges := map[string]decimal.Decimal{
		existing.AccountID: existing.SignedAmount().Neg(),
	}

	if err := s.txnRepo.DeleteTransaction(ctx, transactionID, balanceChanges, actorUserID, time.Now()); err != nil {
		logger.Error("Failed to delete transaction", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		return fmt.Errorf("failed to remove transaction: %w", err)
	}

	logger.Info("Transaction removed", slog.String("transaction_id", transactionID))
	return nil
}

// GetTransaction retrieves a transaction visible to the user.
func (s *ledgerService) GetTransaction(ctx context.Context, transactionID, userID string) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("transaction not found")
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}

	if err := s.sharing.AuthorizeAccountAccess(ctx, userID, txn.AccountID, domain.PermissionRead); err != nil {
		// The transaction's existence is hidden along with its account.
		return nil, apperrors.NewNotFoundError("transaction not found")
	}

	return txn, nil
}

// ListTransactions retrieves the transactions visible to the user, filtered
// and paginated, newest date first.
func (s *ledgerService) ListTransactions(ctx context.Context, userID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	filter := portsrepo.TransactionFilter{
		Type:       params.Type,
		CategoryID: params.CategoryID,
		AccountID:  params.AccountID,
	}
	if params.StartDate != nil {
		start, err := dto.ParseDate(*params.StartDate)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid start date %q", apperrors.ErrValidation, *params.StartDate)
		}
		filter.StartDate = &start
	}
	if params.EndDate != nil {
		end, err := dto.ParseDate(*params.EndDate)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid end date %q", apperrors.ErrValidation, *params.EndDate)
		}
		filter.EndDate = &end
	}
	if filter.StartDate != nil && filter.EndDate != nil && filter.EndDate.Before(*filter.StartDate) {
		return nil, fmt.Errorf("%w: end date before start date", apperrors.ErrValidation)
	}

	limit := params.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	views, nextToken, err := s.txnRepo.ListAccessibleTransactions(ctx, userID, filter, limit, params.NextToken)
	if err != nil {
		logger.Error("Failed to list transactions", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	return &dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionViewResponses(views),
		NextToken:    nextToken,
	}, nil
}

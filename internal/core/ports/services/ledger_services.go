package services

import (
	"context"

	"github.com/loooooooooogp/Account/internal/core/domain"
	"github.com/loooooooooogp/Account/internal/dto"
)

// LedgerSvcFacade defines the transaction lifecycle. Every mutation keeps the
// invariant that an account's balance equals the signed sum of its
// transactions, and re-validates authorization against the current accounts.
type LedgerSvcFacade interface {
	// RecordTransaction creates a transaction for the actor on an account
	// they own or hold write access to, applying its balance delta.
	RecordTransaction(ctx context.Context, actorUserID string, req dto.RecordTransactionRequest) (*domain.Transaction, error)

	// AmendTransaction applies a partial update. Moving the transaction to a
	// different account re-checks write access on the target account.
	AmendTransaction(ctx context.Context, transactionID, actorUserID string, req dto.AmendTransactionRequest) (*domain.Transaction, error)

	// RemoveTransaction deletes a transaction and reverses its balance delta.
	RemoveTransaction(ctx context.Context, transactionID, actorUserID string) error

	// GetTransaction retrieves a transaction visible to the user.
	GetTransaction(ctx context.Context, transactionID, userID string) (*domain.Transaction, error)

	// ListTransactions retrieves the transactions visible to the user,
	// filtered and paginated.
	ListTransactions(ctx context.Context, userID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)
}

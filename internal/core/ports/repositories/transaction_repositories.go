package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/loooooooooogp/Account/internal/core/domain"
)

// TransactionFilter narrows ListAccessibleTransactions results. Nil fields
// are ignored. The date range is inclusive on both ends.
type TransactionFilter struct {
	Type       *domain.TransactionType
	CategoryID *string
	AccountID  *string
	StartDate  *time.Time
	EndDate    *time.Time
}

// TransactionReader defines read operations for transaction data
type TransactionReader interface {
	// FindTransactionByID retrieves a specific transaction by its ID.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListAccessibleTransactions retrieves transactions visible to the user:
	// those they recorded, those on accounts they own, plus those on accounts
	// shared to them (any permission). Ordered by date descending,
	// transaction ID descending.
	// Token-based pagination: returns the page and a token for the next one.
	ListAccessibleTransactions(ctx context.Context, userID string, filter TransactionFilter, limit int, nextToken *string) ([]domain.TransactionView, *string, error)

	// CountTransactionsByAccount returns how many transactions reference an account.
	CountTransactionsByAccount(ctx context.Context, accountID string) (int64, error)
}

// TransactionWriter defines the balance-coupled write operations. Every
// method applies its balanceChanges to the affected accounts and performs the
// row mutation inside one database transaction, locking the accounts first,
// so that an account's balance always equals the signed sum of its rows.
type TransactionWriter interface {
	// SaveTransaction inserts a transaction row and applies its delta.
	SaveTransaction(ctx context.Context, txn domain.Transaction, balanceChanges map[string]decimal.Decimal) error

	// UpdateTransaction replaces a transaction row and applies the reversal
	// of the old delta plus the new delta (possibly on a different account).
	UpdateTransaction(ctx context.Context, txn domain.Transaction, balanceChanges map[string]decimal.Decimal) error

	// DeleteTransaction removes a transaction row and reverses its delta.
	DeleteTransaction(ctx context.Context, transactionID string, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error
}

// TransactionRepositoryFacade combines all transaction repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}

// TransactionRepositoryWithTx extends the facade with transaction capabilities
type TransactionRepositoryWithTx interface {
	TransactionRepositoryFacade
	TransactionManager
}

package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType indicates whether a transaction adds to or subtracts from
// an account's balance.
type TransactionType string

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

// Valid reports whether t is one of the known transaction types.
func (t TransactionType) Valid() bool {
	return t == Income || t == Expense
}

// Transaction is a single income or expense entry against one account.
// The recording user may differ from the account owner when the account was
// shared with write permission.
type Transaction struct {
	TransactionID string          `json:"transactionID"` // Primary Key (UUID)
	UserID        string          `json:"userID"`        // Recording user (FK -> users)
	AccountID     string          `json:"accountID"`     // FK -> accounts
	Type          TransactionType `json:"type"`
	Amount        decimal.Decimal `json:"amount"` // Always positive; sign comes from Type
	CategoryID    string          `json:"categoryID"`
	Date          time.Time       `json:"date"` // Calendar date, no time component
	Description   string          `json:"description"`
	AuditFields
}

// SignedAmount returns the balance delta this transaction contributes to its
// account: +amount for income, -amount for expense.
func (t Transaction) SignedAmount() decimal.Decimal {
	return SignedAmount(t.Type, t.Amount)
}

// SignedAmount returns the balance delta for the given type and amount.
func SignedAmount(txType TransactionType, amount decimal.Decimal) decimal.Decimal {
	if txType == Expense {
		return amount.Neg()
	}
	return amount
}

// TransactionView is a Transaction joined with display data for listings.
type TransactionView struct {
	Transaction
	CategoryName string `json:"categoryName"`
	AccountName  string `json:"accountName"`
	OwnUsername  string `json:"recordedBy"` // Username of the recording user
	Ownership    string `json:"ownership"`  // "own" when recorded by the viewer, else "linked"
}

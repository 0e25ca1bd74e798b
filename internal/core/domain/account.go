package domain

import (
	"github.com/shopspring/decimal"
)

// Account represents a bookkeeping account with a single running balance.
// The balance is only ever mutated together with a transaction row, inside
// one database transaction, so that it always equals the signed sum of the
// account's transactions.
type Account struct {
	AccountID   string          `json:"accountID"`   // Primary Key (UUID)
	OwnerUserID string          `json:"ownerUserID"` // FK -> users.user_id; ownership never transfers
	Name        string          `json:"name"`        // User-defined display name
	AccountType string          `json:"accountType"` // Free-form type tag, e.g. "cash", "bank"
	Balance     decimal.Decimal `json:"balance"`     // Running balance, two decimal places
	AuditFields
}

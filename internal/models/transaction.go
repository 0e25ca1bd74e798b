package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the DB representation of a ledger entry.
type Transaction struct {
	TransactionID string          `db:"transaction_id"`
	UserID        string          `db:"user_id"` // recording user
	AccountID     string          `db:"account_id"`
	Type          string          `db:"type"`   // income | expense
	Amount        decimal.Decimal `db:"amount"` // positive
	CategoryID    string          `db:"category_id"`
	Date          time.Time       `db:"date"` // stored as DATE
	Description   string          `db:"description"`
	AuditFields
}

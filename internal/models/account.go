package models

import (
	"github.com/shopspring/decimal"
)

// Account is the DB representation of a bookkeeping account.
type Account struct {
	AccountID   string          `db:"account_id"`
	OwnerUserID string          `db:"owner_user_id"`
	Name        string          `db:"name"`
	AccountType string          `db:"account_type"` // free-form tag, e.g. "cash"
	Balance     decimal.Decimal `db:"balance"`
	AuditFields
}

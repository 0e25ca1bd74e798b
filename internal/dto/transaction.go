package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/loooooooooogp/Account/internal/core/domain"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// RecordTransactionRequest defines the data needed to record a transaction.
type RecordTransactionRequest struct {
	AccountID   string                 `json:"accountID" binding:"required,uuid"`
	Type        domain.TransactionType `json:"type" binding:"required,txtype"`
	Amount      decimal.Decimal        `json:"amount" binding:"required"`
	CategoryID  string                 `json:"categoryID" binding:"required,uuid"`
	Date        string                 `json:"date" binding:"required,datetime=2006-01-02"`
	Description string                 `json:"description" binding:"max=512"`
}

// AmendTransactionRequest defines the partial update for a transaction.
// Pointer fields distinguish "leave unchanged" from explicit values; the set
// of mutable fields is closed.
type AmendTransactionRequest struct {
	AccountID   *string                 `json:"accountID" binding:"omitempty,uuid"`
	Type        *domain.TransactionType `json:"type" binding:"omitempty,txtype"`
	Amount      *decimal.Decimal        `json:"amount"`
	CategoryID  *string                 `json:"categoryID" binding:"omitempty,uuid"`
	Date        *string                 `json:"date" binding:"omitempty,datetime=2006-01-02"`
	Description *string                 `json:"description" binding:"omitempty,max=512"`
}

// Empty reports whether the request carries no changes at all.
func (r AmendTransactionRequest) Empty() bool {
	return r.AccountID == nil && r.Type == nil && r.Amount == nil &&
		r.CategoryID == nil && r.Date == nil && r.Description == nil
}

// ListTransactionsParams holds the query filters for listing transactions.
type ListTransactionsParams struct {
	Type       *domain.TransactionType `form:"type" binding:"omitempty,txtype"`
	CategoryID *string                 `form:"categoryID" binding:"omitempty,uuid"`
	AccountID  *string                 `form:"accountID" binding:"omitempty,uuid"`
	StartDate  *string                 `form:"startDate" binding:"omitempty,datetime=2006-01-02"`
	EndDate    *string                 `form:"endDate" binding:"omitempty,datetime=2006-01-02"`
	Limit      int                     `form:"limit" binding:"omitempty,min=1,max=200"`
	NextToken  *string                 `form:"nextToken"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID string                 `json:"transactionID"`
	AccountID     string                 `json:"accountID"`
	AccountName   string                 `json:"accountName,omitempty"`
	Type          domain.TransactionType `json:"type"`
	Amount        decimal.Decimal        `json:"amount"`
	CategoryID    string                 `json:"categoryID"`
	CategoryName  string                 `json:"categoryName,omitempty"`
	Date          string                 `json:"date"`
	Description   string                 `json:"description,omitempty"`
	RecordedBy    string                 `json:"recordedBy,omitempty"`
	Ownership     string                 `json:"ownership,omitempty"`
	CreatedAt     time.Time              `json:"createdAt"`
}

// ListTransactionsResponse is a page of transactions plus the next-page token.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: txn.TransactionID,
		AccountID:     txn.AccountID,
		Type:          txn.Type,
		Amount:        txn.Amount,
		CategoryID:    txn.CategoryID,
		Date:          txn.Date.Format(DateLayout),
		Description:   txn.Description,
		CreatedAt:     txn.CreatedAt,
	}
}

// ToTransactionViewResponse converts a domain.TransactionView to TransactionResponse DTO.
func ToTransactionViewResponse(v *domain.TransactionView) TransactionResponse {
	resp := ToTransactionResponse(&v.Transaction)
	resp.AccountName = v.AccountName
	resp.CategoryName = v.CategoryName
	resp.RecordedBy = v.OwnUsername
	resp.Ownership = v.Ownership
	return resp
}

// ToTransactionViewResponses converts a slice of views to TransactionResponse DTOs.
func ToTransactionViewResponses(views []domain.TransactionView) []TransactionResponse {
	res := make([]TransactionResponse, len(views))
	for i := range views {
		res[i] = ToTransactionViewResponse(&views[i])
	}
	return res
}

// ParseDate parses a wire-format date into a time.Time in UTC.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

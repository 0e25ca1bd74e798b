package domain

import "github.com/shopspring/decimal"

// CategoryTotal is one row of the by-category statistics.
type CategoryTotal struct {
	CategoryName string          `json:"category"`
	Type         TransactionType `json:"type"`
	Total        decimal.Decimal `json:"total"`
}

// MonthlyTotal is one row of the by-month statistics for a year.
type MonthlyTotal struct {
	Month        string          `json:"month"` // "YYYY-MM"
	TotalIncome  decimal.Decimal `json:"totalIncome"`
	TotalExpense decimal.Decimal `json:"totalExpense"`
	Net          decimal.Decimal `json:"net"`
}

// AccountTotal is one row of the by-account statistics.
type AccountTotal struct {
	AccountID    string          `json:"accountID"`
	AccountName  string          `json:"accountName"`
	TotalIncome  decimal.Decimal `json:"totalIncome"`
	TotalExpense decimal.Decimal `json:"totalExpense"`
	Balance      decimal.Decimal `json:"balance"`
}

// Summary is the overall income/expense/net aggregate for a user.
type Summary struct {
	TotalIncome  decimal.Decimal `json:"totalIncome"`
	TotalExpense decimal.Decimal `json:"totalExpense"`
	Net          decimal.Decimal `json:"net"`
}

package v1

import (
	"github.com/fintrack/backend/internal/reports"
	"github.com/fintrack/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Overview struct {
	Month        types.Month     `json:"month" example:"2024-06"`        // The current month
	TotalBalance decimal.Decimal `json:"totalBalance" example:"4127.81"` // Sum of the balances of all active accounts
	Income       decimal.Decimal `json:"income" example:"3200"`          // Income in the current month
	Expense      decimal.Decimal `json:"expense" example:"1893.4"`       // Expenses in the current month
	Net          decimal.Decimal `json:"net" example:"1306.6"`           // Income minus expenses
	AccountCount int             `json:"accountCount" example:"3"`       // Number of active accounts
}

type OverviewResponse struct {
	Data  *Overview `json:"data"`
	Error *string   `json:"error" example:"an error occurred on the server during your request"` // The error, if any occurred
}

type CategorySpending struct {
	CategoryID *uuid.UUID      `json:"categoryId" example:"2649c965-7999-4873-ae16-89d5d5fa972e"` // ID of the category, null for uncategorized expenses
	Name       string          `json:"name" example:"Food & Dining"`
	Color      string          `json:"color" example:"#FF6B6B"`
	Amount     decimal.Decimal `json:"amount" example:"312.45"` // Sum of the expenses
	Count      int             `json:"count" example:"17"`      // Number of expenses
}

type SpendingByCategoryResponse struct {
	Data  []CategorySpending `json:"data"`
	Error *string            `json:"error" example:"the month query parameter must be in YYYY-MM format"` // The error, if any occurred
}

type AccountSummary struct {
	ID       uuid.UUID       `json:"id" example:"af892e10-7e0a-4fb8-b1bc-4b6d88401ed2"`
	Name     string          `json:"name" example:"Checking"`
	Type     string          `json:"type" example:"checking"`
	Balance  decimal.Decimal `json:"balance" example:"1234.5"`
	Currency string          `json:"currency" example:"USD"`
	Display  string          `json:"display" example:"$1,234.50"` // The balance formatted for display
}

type AccountsSummaryResponse struct {
	Data  []AccountSummary `json:"data"`
	Error *string          `json:"error" example:"an error occurred on the server during your request"` // The error, if any occurred
}

type Trend struct {
	Month   types.Month     `json:"month" example:"2024-06"`
	Income  decimal.Decimal `json:"income" example:"3200"`
	Expense decimal.Decimal `json:"expense" example:"1893.4"`
	Net     decimal.Decimal `json:"net" example:"1306.6"`
}

type MonthlyTrendsResponse struct {
	Data  []Trend `json:"data"`
	Error *string `json:"error" example:"the months parameter must be between 1 and 24"` // The error, if any occurred
}

type DashboardQueryFilter struct {
	Month  types.Month `form:"month"`  // Month for spending by category, defaults to the current month
	Limit  int         `form:"limit"`  // Number of recent transactions
	Months int         `form:"months"` // Number of months for the trends
}

func newOverview(o reports.Overview) Overview {
	return Overview{
		Month:        o.Month,
		TotalBalance: o.TotalBalance,
		Income:       o.Income,
		Expense:      o.Expense,
		Net:          o.Net,
		AccountCount: o.AccountCount,
	}
}

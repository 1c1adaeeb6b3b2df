package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	v1 "github.com/fintrack/backend/internal/controllers/v1"
	"github.com/fintrack/backend/internal/models"
	"github.com/fintrack/backend/internal/reports"
	"github.com/fintrack/backend/internal/types"
	"github.com/fintrack/backend/test"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestDashboardDBClosed() {
	suite.CloseDB()

	for _, path := range []string{"overview", "recent-transactions", "spending-by-category", "accounts-summary", "monthly-trends"} {
		suite.T().Run(path, func(t *testing.T) {
			r := suite.request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/dashboard/%s", path), "")
			test.AssertHTTPStatus(t, &r, http.StatusInternalServerError)
		})
	}
}

func (suite *TestSuiteStandard) TestDashboardOptions() {
	for _, path := range []string{"overview", "recent-transactions", "spending-by-category", "accounts-summary", "monthly-trends"} {
		suite.T().Run(path, func(t *testing.T) {
			r := suite.request(t, http.MethodOptions, fmt.Sprintf("http://example.com/v1/dashboard/%s", path), "")
			test.AssertHTTPStatus(t, &r, http.StatusNoContent)
			assert.Equal(t, "OPTIONS, GET", r.Header().Get("allow"))
		})
	}
}

// TestDashboardOverview verifies that only active accounts count for the
// total balance and only transactions of the current month for income
// and expense.
func (suite *TestSuiteStandard) TestDashboardOverview() {
	inactive := false

	checking := suite.createTestAccount(suite.T(), v1.AccountEditable{Name: "Checking", InitialBalance: decimal.NewFromInt(1000)})
	savings := suite.createTestAccount(suite.T(), v1.AccountEditable{Name: "Savings", Type: models.AccountSavings, InitialBalance: decimal.NewFromInt(500)})
	_ = suite.createTestAccount(suite.T(), v1.AccountEditable{Name: "Old", InitialBalance: decimal.NewFromInt(300), Active: &inactive})

	suite.createTestTransaction(suite.T(), v1.TransactionEditable{AccountID: checking.ID, Kind: models.KindIncome, Amount: decimal.NewFromInt(200), Date: date(2024, 6, 1)})
	suite.createTestTransaction(suite.T(), v1.TransactionEditable{AccountID: checking.ID, Amount: decimal.NewFromInt(50), Date: date(2024, 6, 15)})
	suite.createTestTransaction(suite.T(), v1.TransactionEditable{AccountID: savings.ID, Amount: decimal.NewFromInt(30), Date: date(2024, 5, 31)})

	r := suite.request(suite.T(), http.MethodGet, "http://example.com/v1/dashboard/overview", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.OverviewResponse
	test.DecodeResponse(suite.T(), &r, &response)

	o := response.Data
	assert.Equal(suite.T(), types.NewMonth(2024, 6), o.Month)
	assert.True(suite.T(), o.TotalBalance.Equal(decimal.NewFromInt(1620)), "Total balance is %s", o.TotalBalance)
	assert.True(suite.T(), o.Income.Equal(decimal.NewFromInt(200)), "Income is %s", o.Income)
	assert.True(suite.T(), o.Expense.Equal(decimal.NewFromInt(50)), "Expense is %s", o.Expense)
	assert.True(suite.T(), o.Net.Equal(decimal.NewFromInt(150)), "Net is %s", o.Net)
	assert.Equal(suite.T(), 2, o.AccountCount)

	// Other owners see nothing of it
	r = suite.requestAs(suite.T(), uuid.New(), http.MethodGet, "http://example.com/v1/dashboard/overview", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &response)
	assert.True(suite.T(), response.Data.TotalBalance.IsZero())
	assert.Equal(suite.T(), 0, response.Data.AccountCount)
}

func (suite *TestSuiteStandard) TestDashboardRecentTransactions() {
	account := suite.createTestAccount(suite.T(), v1.AccountEditable{})
	for day := 1; day <= 12; day++ {
		suite.createTestTransaction(suite.T(), v1.TransactionEditable{AccountID: account.ID, Amount: decimal.NewFromInt(int64(day)), Date: date(2024, 6, day), Description: fmt.Sprintf("Day %d", day)})
	}

	tests := []struct {
		name   string
		query  string
		status int
		length int
	}{
		{"Default limit", "", http.StatusOK, 10},
		{"Limit", "limit=3", http.StatusOK, 3},
		{"Limit higher than count", "limit=100", http.StatusOK, 12},
		{"Limit zero", "limit=0", http.StatusBadRequest, 0},
		{"Limit too high", "limit=101", http.StatusBadRequest, 0},
		{"Limit not a number", "limit=ten", http.StatusBadRequest, 0},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := suite.request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/dashboard/recent-transactions?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, tt.status)

			var response v1.TransactionListResponse
			test.DecodeResponse(t, &r, &response)

			if tt.status != http.StatusOK {
				assert.NotNil(t, response.Error)
				return
			}

			require.Len(t, response.Data, tt.length)
			assert.Equal(t, "Day 12", response.Data[0].Description, "Most recent transaction must be first")
		})
	}
}

func (suite *TestSuiteStandard) TestDashboardSpendingByCategory() {
	food := suite.defaultCategory(suite.T(), "Food & Dining")
	transport := suite.defaultCategory(suite.T(), "Transportation")
	account := suite.createTestAccount(suite.T(), v1.AccountEditable{})

	for _, tr := range []v1.TransactionEditable{
		{CategoryID: &food.ID, Amount: decimal.NewFromInt(40), Date: date(2024, 6, 2)},
		{CategoryID: &food.ID, Amount: decimal.NewFromInt(60), Date: date(2024, 6, 3)},
		{CategoryID: &transport.ID, Amount: decimal.NewFromInt(100), Date: date(2024, 6, 4)},
		{Amount: decimal.NewFromInt(30), Date: date(2024, 6, 5)},
		{CategoryID: &food.ID, Kind: models.KindIncome, Amount: decimal.NewFromInt(500), Date: date(2024, 6, 6)},
		{CategoryID: &transport.ID, Amount: decimal.NewFromInt(25), Date: date(2024, 5, 20)},
	} {
		tr.AccountID = account.ID
		suite.createTestTransaction(suite.T(), tr)
	}

	r := suite.request(suite.T(), http.MethodGet, "http://example.com/v1/dashboard/spending-by-category", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.SpendingByCategoryResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.Len(suite.T(), response.Data, 3)

	assert.Equal(suite.T(), "Food & Dining", response.Data[0].Name)
	assert.Equal(suite.T(), food.ID, *response.Data[0].CategoryID)
	assert.Equal(suite.T(), "#FF6B6B", response.Data[0].Color)
	assert.True(suite.T(), response.Data[0].Amount.Equal(decimal.NewFromInt(100)))
	assert.Equal(suite.T(), 2, response.Data[0].Count)

	assert.Equal(suite.T(), "Transportation", response.Data[1].Name)
	assert.Equal(suite.T(), 1, response.Data[1].Count)

	assert.Equal(suite.T(), reports.UncategorizedName, response.Data[2].Name)
	assert.Nil(suite.T(), response.Data[2].CategoryID)
	assert.True(suite.T(), response.Data[2].Amount.Equal(decimal.NewFromInt(30)))

	r = suite.request(suite.T(), http.MethodGet, "http://example.com/v1/dashboard/spending-by-category?month=2024-05", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &response)
	require.Len(suite.T(), response.Data, 1)
	assert.Equal(suite.T(), "Transportation", response.Data[0].Name)
	assert.True(suite.T(), response.Data[0].Amount.Equal(decimal.NewFromInt(25)))

	r = suite.request(suite.T(), http.MethodGet, "http://example.com/v1/dashboard/spending-by-category?month=2023-01", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Len(suite.T(), response.Data, 0)

	r = suite.request(suite.T(), http.MethodGet, "http://example.com/v1/dashboard/spending-by-category?month=June", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestDashboardAccountsSummary() {
	inactive := false

	suite.createTestAccount(suite.T(), v1.AccountEditable{Name: "Checking", InitialBalance: decimal.RequireFromString("1234.50")})
	suite.createTestAccount(suite.T(), v1.AccountEditable{Name: "Savings", Type: models.AccountSavings, InitialBalance: decimal.NewFromInt(5000)})
	suite.createTestAccount(suite.T(), v1.AccountEditable{Name: "Wallet", Type: models.AccountCash, InitialBalance: decimal.NewFromInt(20)})
	suite.createTestAccount(suite.T(), v1.AccountEditable{Name: "Old", InitialBalance: decimal.NewFromInt(10000), Active: &inactive})

	r := suite.request(suite.T(), http.MethodGet, "http://example.com/v1/dashboard/accounts-summary", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.AccountsSummaryResponse
	test.DecodeResponse(suite.T(), &r, &response)

	names := make([]string, 0, len(response.Data))
	for _, a := range response.Data {
		names = append(names, a.Name)
	}
	assert.Equal(suite.T(), []string{"Savings", "Checking", "Wallet"}, names)

	assert.Equal(suite.T(), "$1,234.50", response.Data[1].Display)
	assert.Equal(suite.T(), "USD", response.Data[1].Currency)
	assert.Equal(suite.T(), "checking", response.Data[1].Type)
}

// TestDashboardMonthlyTrends verifies that the trend window contains
// every month, even without transactions.
func (suite *TestSuiteStandard) TestDashboardMonthlyTrends() {
	account := suite.createTestAccount(suite.T(), v1.AccountEditable{})

	suite.createTestTransaction(suite.T(), v1.TransactionEditable{AccountID: account.ID, Kind: models.KindIncome, Amount: decimal.NewFromInt(1000), Date: date(2024, 1, 10)})
	suite.createTestTransaction(suite.T(), v1.TransactionEditable{AccountID: account.ID, Amount: decimal.NewFromInt(200), Date: date(2024, 3, 31)})
	suite.createTestTransaction(suite.T(), v1.TransactionEditable{AccountID: account.ID, Amount: decimal.NewFromInt(75), Date: date(2024, 6, 14)})
	suite.createTestTransaction(suite.T(), v1.TransactionEditable{AccountID: account.ID, Amount: decimal.NewFromInt(100), Date: date(2023, 12, 31)})

	r := suite.request(suite.T(), http.MethodGet, "http://example.com/v1/dashboard/monthly-trends", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.MonthlyTrendsResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.Len(suite.T(), response.Data, 6)

	for i, trend := range response.Data {
		assert.Equal(suite.T(), types.NewMonth(2024, 1).AddDate(0, i), trend.Month)
	}

	assert.True(suite.T(), response.Data[0].Income.Equal(decimal.NewFromInt(1000)))
	assert.True(suite.T(), response.Data[0].Net.Equal(decimal.NewFromInt(1000)))
	assert.True(suite.T(), response.Data[1].Income.IsZero())
	assert.True(suite.T(), response.Data[1].Expense.IsZero())
	assert.True(suite.T(), response.Data[2].Expense.Equal(decimal.NewFromInt(200)))
	assert.True(suite.T(), response.Data[2].Net.Equal(decimal.NewFromInt(-200)))
	assert.True(suite.T(), response.Data[5].Expense.Equal(decimal.NewFromInt(75)))

	tests := []struct {
		name   string
		query  string
		status int
		length int
	}{
		{"Three months", "months=3", http.StatusOK, 3},
		{"Maximum", "months=24", http.StatusOK, 24},
		{"Zero", "months=0", http.StatusBadRequest, 0},
		{"Too many", "months=25", http.StatusBadRequest, 0},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := suite.request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/dashboard/monthly-trends?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, tt.status)

			var response v1.MonthlyTrendsResponse
			test.DecodeResponse(t, &r, &response)
			assert.Len(t, response.Data, tt.length)

			if tt.length > 0 {
				assert.Equal(t, types.NewMonth(2024, 6), response.Data[tt.length-1].Month)
			}
		})
	}
}

package v1

import (
	"net/http"
	"slices"

	"github.com/fintrack/backend/internal/auth"
	"github.com/fintrack/backend/internal/httputil"
	"github.com/fintrack/backend/internal/ledger"
	"github.com/fintrack/backend/internal/reports"
	"github.com/gin-gonic/gin"
)

// RegisterDashboardRoutes registers the routes for the dashboard with
// the RouterGroup that is passed.
func (co Controller) RegisterDashboardRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/overview", httputil.OptionsGet)
	r.GET("/overview", co.GetOverview)
	r.OPTIONS("/recent-transactions", httputil.OptionsGet)
	r.GET("/recent-transactions", co.GetRecentTransactions)
	r.OPTIONS("/spending-by-category", httputil.OptionsGet)
	r.GET("/spending-by-category", co.GetSpendingByCategory)
	r.OPTIONS("/accounts-summary", httputil.OptionsGet)
	r.GET("/accounts-summary", co.GetAccountsSummary)
	r.OPTIONS("/monthly-trends", httputil.OptionsGet)
	r.GET("/monthly-trends", co.GetMonthlyTrends)
}

// @Summary		Overview
// @Description	Returns the total balance of all active accounts and the income and expenses of the current month
// @Tags			Dashboard
// @Produce		json
// @Success		200	{object}	OverviewResponse
// @Failure		500	{object}	OverviewResponse
// @Router			/v1/dashboard/overview [get]
func (co Controller) GetOverview(c *gin.Context) {
	overview, err := co.Reports.Overview(c.Request.Context(), auth.Owner(c))
	if err != nil {
		s := err.Error()
		c.JSON(status(err), OverviewResponse{
			Error: &s,
		})
		return
	}

	data := newOverview(overview)
	c.JSON(http.StatusOK, OverviewResponse{Data: &data})
}

// @Summary		Recent transactions
// @Description	Returns the most recent transactions
// @Tags			Dashboard
// @Produce		json
// @Success		200		{object}	TransactionListResponse
// @Failure		400		{object}	TransactionListResponse
// @Failure		500		{object}	TransactionListResponse
// @Param			limit	query		int	false	"Number of transactions, 1 to 100. Defaults to 10."
// @Router			/v1/dashboard/recent-transactions [get]
func (co Controller) GetRecentTransactions(c *gin.Context) {
	var filter DashboardQueryFilter
	err := httputil.BindQuery(c, &filter)
	if err == nil && slices.Contains(httputil.GetURLFields(c.Request.URL, filter), "Limit") && (filter.Limit < 1 || filter.Limit > ledger.MaxLimit) {
		err = errLimitParameter
	}

	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionListResponse{
			Error: &s,
		})
		return
	}

	rows, err := co.Reports.Recent(c.Request.Context(), auth.Owner(c), filter.Limit)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionListResponse{
			Error: &s,
		})
		return
	}

	data := make([]Transaction, 0, len(rows))
	for _, row := range rows {
		data = append(data, newTransaction(c, row))
	}

	c.JSON(http.StatusOK, TransactionListResponse{Data: data})
}

// @Summary		Spending by category
// @Description	Returns the expenses of a month summed up per category, highest amount first
// @Tags			Dashboard
// @Produce		json
// @Success		200		{object}	SpendingByCategoryResponse
// @Failure		400		{object}	SpendingByCategoryResponse
// @Failure		500		{object}	SpendingByCategoryResponse
// @Param			month	query		string	false	"Month in YYYY-MM format, defaults to the current month"
// @Router			/v1/dashboard/spending-by-category [get]
func (co Controller) GetSpendingByCategory(c *gin.Context) {
	var filter DashboardQueryFilter
	err := httputil.BindQuery(c, &filter)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SpendingByCategoryResponse{
			Error: &s,
		})
		return
	}

	spending, err := co.Reports.SpendingByCategory(c.Request.Context(), auth.Owner(c), filter.Month)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SpendingByCategoryResponse{
			Error: &s,
		})
		return
	}

	data := make([]CategorySpending, 0, len(spending))
	for _, s := range spending {
		data = append(data, CategorySpending{
			CategoryID: s.CategoryID,
			Name:       s.Name,
			Color:      s.Color,
			Amount:     s.Amount,
			Count:      s.Count,
		})
	}

	c.JSON(http.StatusOK, SpendingByCategoryResponse{Data: data})
}

// @Summary		Accounts summary
// @Description	Returns the active accounts with their balance, highest balance first
// @Tags			Dashboard
// @Produce		json
// @Success		200	{object}	AccountsSummaryResponse
// @Failure		500	{object}	AccountsSummaryResponse
// @Router			/v1/dashboard/accounts-summary [get]
func (co Controller) GetAccountsSummary(c *gin.Context) {
	summaries, err := co.Reports.AccountsSummary(c.Request.Context(), auth.Owner(c))
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AccountsSummaryResponse{
			Error: &s,
		})
		return
	}

	data := make([]AccountSummary, 0, len(summaries))
	for _, s := range summaries {
		data = append(data, AccountSummary{
			ID:       s.Account.ID,
			Name:     s.Account.Name,
			Type:     string(s.Account.Type),
			Balance:  s.Account.Balance,
			Currency: s.Account.Currency,
			Display:  s.Display,
		})
	}

	c.JSON(http.StatusOK, AccountsSummaryResponse{Data: data})
}

// @Summary		Monthly trends
// @Description	Returns income and expenses of the last months, oldest month first. Months without transactions are included.
// @Tags			Dashboard
// @Produce		json
// @Success		200		{object}	MonthlyTrendsResponse
// @Failure		400		{object}	MonthlyTrendsResponse
// @Failure		500		{object}	MonthlyTrendsResponse
// @Param			months	query		int	false	"Number of months including the current one, 1 to 24. Defaults to 6."
// @Router			/v1/dashboard/monthly-trends [get]
func (co Controller) GetMonthlyTrends(c *gin.Context) {
	var filter DashboardQueryFilter
	err := httputil.BindQuery(c, &filter)
	if err == nil && slices.Contains(httputil.GetURLFields(c.Request.URL, filter), "Months") && (filter.Months < 1 || filter.Months > reports.MaxTrendMonths) {
		err = errMonthsParameter
	}

	if err != nil {
		s := err.Error()
		c.JSON(status(err), MonthlyTrendsResponse{
			Error: &s,
		})
		return
	}

	trends, err := co.Reports.MonthlyTrends(c.Request.Context(), auth.Owner(c), filter.Months)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MonthlyTrendsResponse{
			Error: &s,
		})
		return
	}

	data := make([]Trend, 0, len(trends))
	for _, t := range trends {
		data = append(data, Trend{
			Month:   t.Month,
			Income:  t.Income,
			Expense: t.Expense,
			Net:     t.Net,
		})
	}

	c.JSON(http.StatusOK, MonthlyTrendsResponse{Data: data})
}

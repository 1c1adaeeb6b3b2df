package reports_test

import (
	"github.com/fintrack/backend/internal/models"
	"github.com/fintrack/backend/internal/reports"
	"github.com/fintrack/backend/internal/types"
	"github.com/google/uuid"
)

func (suite *TestSuiteStandard) TestOverview() {
	checking := suite.createAccount("Checking", "1000")
	savings := suite.createAccount("Savings", "500")
	closed := suite.createAccount("Closed", "300")
	suite.Require().Nil(suite.db.Model(&closed).Select("Active").Updates(models.Account{Active: false}).Error)

	suite.createTransaction(checking, nil, models.KindIncome, "2500", "2024-06-01")
	suite.createTransaction(checking, nil, models.KindExpense, "120.50", "2024-06-18")
	suite.createTransaction(savings, nil, models.KindExpense, "20", "2024-06-30")
	suite.createTransaction(savings, nil, models.KindExpense, "99", "2024-05-31")
	suite.createTransaction(savings, nil, models.KindIncome, "99", "2024-07-01")

	overview, err := suite.reports.Overview(suite.ctx, suite.owner)
	suite.Require().Nil(err)

	suite.Assert().Equal("2024-06", overview.Month.String())
	suite.assertDecimal("3859.50", overview.TotalBalance)
	suite.assertDecimal("2500", overview.Income)
	suite.assertDecimal("140.50", overview.Expense)
	suite.assertDecimal("2359.50", overview.Net)
	suite.Assert().Equal(2, overview.AccountCount)
}

func (suite *TestSuiteStandard) TestOverviewEmpty() {
	overview, err := suite.reports.Overview(suite.ctx, uuid.New())
	suite.Require().Nil(err)
	suite.assertDecimal("0", overview.TotalBalance)
	suite.assertDecimal("0", overview.Net)
	suite.Assert().Equal(0, overview.AccountCount)
}

func (suite *TestSuiteStandard) TestRecent() {
	account := suite.createAccount("Checking", "0")
	for _, date := range []string{"2024-06-01", "2024-06-03", "2024-06-02"} {
		suite.createTransaction(account, nil, models.KindIncome, "1", date)
	}

	rows, err := suite.reports.Recent(suite.ctx, suite.owner, 2)
	suite.Require().Nil(err)
	suite.Require().Len(rows, 2)
	suite.Assert().Equal("2024-06-03", rows[0].Date.Format("2006-01-02"))
	suite.Assert().Equal("2024-06-02", rows[1].Date.Format("2006-01-02"))

	rows, err = suite.reports.Recent(suite.ctx, suite.owner, 0)
	suite.Require().Nil(err)
	suite.Assert().Len(rows, 3)
}

func (suite *TestSuiteStandard) TestSpendingByCategory() {
	account := suite.createAccount("Checking", "0")
	food := suite.createCategory("Food")
	bills := suite.createCategory("Bills")
	art := suite.createCategory("Art")

	suite.createTransaction(account, &food, models.KindExpense, "30", "2024-06-02")
	suite.createTransaction(account, &food, models.KindExpense, "20", "2024-06-03")
	suite.createTransaction(account, &bills, models.KindExpense, "100", "2024-06-04")
	suite.createTransaction(account, &art, models.KindExpense, "50", "2024-06-05")
	suite.createTransaction(account, nil, models.KindExpense, "5", "2024-06-06")
	suite.createTransaction(account, &bills, models.KindIncome, "1000", "2024-06-07")
	suite.createTransaction(account, &food, models.KindExpense, "1000", "2024-05-07")

	spending, err := suite.reports.SpendingByCategory(suite.ctx, suite.owner, types.Month{})
	suite.Require().Nil(err)
	suite.Require().Len(spending, 4)

	suite.Assert().Equal("Bills", spending[0].Name)
	suite.assertDecimal("100", spending[0].Amount)
	suite.Assert().Equal("#123456", spending[0].Color)

	// Equal totals are ordered by name
	suite.Assert().Equal("Art", spending[1].Name)
	suite.Assert().Equal("Food", spending[2].Name)
	suite.Assert().Equal(2, spending[2].Count)
	suite.Require().NotNil(spending[2].CategoryID)
	suite.Assert().Equal(food.ID, *spending[2].CategoryID)

	suite.Assert().Equal(reports.UncategorizedName, spending[3].Name)
	suite.Assert().Nil(spending[3].CategoryID)

	spending, err = suite.reports.SpendingByCategory(suite.ctx, suite.owner, types.NewMonth(2024, 5))
	suite.Require().Nil(err)
	suite.Require().Len(spending, 1)
	suite.assertDecimal("1000", spending[0].Amount)
}

func (suite *TestSuiteStandard) TestAccountsSummary() {
	suite.createAccount("Small", "10")
	suite.createAccount("Large", "1234.5")
	closed := suite.createAccount("Closed", "99999")
	suite.Require().Nil(suite.db.Model(&closed).Select("Active").Updates(models.Account{Active: false}).Error)

	summaries, err := suite.reports.AccountsSummary(suite.ctx, suite.owner)
	suite.Require().Nil(err)
	suite.Require().Len(summaries, 2)
	suite.Assert().Equal("Large", summaries[0].Account.Name)
	suite.Assert().Equal("$1,234.50", summaries[0].Display)
	suite.Assert().Equal("Small", summaries[1].Account.Name)
}

func (suite *TestSuiteStandard) TestMonthlyTrendsScenarioE() {
	account := suite.createAccount("Checking", "0")

	// The window is January to June 2024, month 3 is March and month 5 is May
	suite.createTransaction(account, nil, models.KindIncome, "1000", "2024-03-01")
	suite.createTransaction(account, nil, models.KindExpense, "250", "2024-03-31")
	suite.createTransaction(account, nil, models.KindExpense, "75.25", "2024-05-15")

	// Outside of the window
	suite.createTransaction(account, nil, models.KindIncome, "5", "2023-12-31")
	suite.createTransaction(account, nil, models.KindIncome, "5", "2024-07-01")

	trends, err := suite.reports.MonthlyTrends(suite.ctx, suite.owner, 0)
	suite.Require().Nil(err)
	suite.Require().Len(trends, 6)

	months := []string{"2024-01", "2024-02", "2024-03", "2024-04", "2024-05", "2024-06"}
	zero := 0
	for i, trend := range trends {
		suite.Assert().Equal(months[i], trend.Month.String())
		if trend.Income.IsZero() && trend.Expense.IsZero() {
			zero++
		}
	}
	suite.Assert().Equal(4, zero)

	suite.assertDecimal("1000", trends[2].Income)
	suite.assertDecimal("250", trends[2].Expense)
	suite.assertDecimal("750", trends[2].Net)
	suite.assertDecimal("75.25", trends[4].Expense)
	suite.assertDecimal("-75.25", trends[4].Net)
}

func (suite *TestSuiteStandard) TestMonthlyTrendsYearBoundary() {
	trends, err := suite.reports.MonthlyTrends(suite.ctx, suite.owner, 12)
	suite.Require().Nil(err)
	suite.Require().Len(trends, 12)
	suite.Assert().Equal("2023-07", trends[0].Month.String())
	suite.Assert().Equal("2023-12", trends[5].Month.String())
	suite.Assert().Equal("2024-01", trends[6].Month.String())

	trends, err = suite.reports.MonthlyTrends(suite.ctx, suite.owner, 1000)
	suite.Require().Nil(err)
	suite.Assert().Len(trends, reports.MaxTrendMonths)
}

func (suite *TestSuiteStandard) TestClosedDatabase() {
	suite.CloseDB()

	_, err := suite.reports.Overview(suite.ctx, suite.owner)
	suite.Assert().ErrorIs(err, models.ErrGeneral)

	_, err = suite.reports.MonthlyTrends(suite.ctx, suite.owner, 0)
	suite.Assert().ErrorIs(err, models.ErrGeneral)
}

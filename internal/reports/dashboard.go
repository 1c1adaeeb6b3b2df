package reports

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/fintrack/backend/internal/ledger"
	"github.com/fintrack/backend/internal/models"
	"github.com/fintrack/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// Overview is the summary of the finances of an owner.
type Overview struct {
	Month        types.Month
	TotalBalance decimal.Decimal // sum of the balances of all active accounts
	Income       decimal.Decimal
	Expense      decimal.Decimal
	Net          decimal.Decimal
	AccountCount int
}

// CategorySpending is the sum of the expenses in a category.
type CategorySpending struct {
	CategoryID *uuid.UUID // nil for uncategorized transactions
	Name       string
	Color      string
	Amount     decimal.Decimal
	Count      int
}

// AccountSummary is an active account with its balance formatted for display.
type AccountSummary struct {
	Account models.Account
	Display string
}

// Trend is the income and expense of a month.
type Trend struct {
	Month   types.Month
	Income  decimal.Decimal
	Expense decimal.Decimal
	Net     decimal.Decimal
}

// UncategorizedName is the name used for the spending without category.
const UncategorizedName = "Uncategorized"

func activeAccounts(db *gorm.DB) *gorm.DB {
	return db.Where("accounts.active = true")
}

// Overview returns the total balance of the active accounts and the
// income and expense of the current month.
func (r *Reports) Overview(ctx context.Context, owner uuid.UUID) (Overview, error) {
	overview := Overview{
		Month:        r.CurrentMonth(),
		TotalBalance: decimal.Zero,
		Income:       decimal.Zero,
		Expense:      decimal.Zero,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var accounts []models.Account
		err := r.db.WithContext(gctx).Scopes(models.OwnedBy(owner), activeAccounts).Find(&accounts).Error
		if err != nil {
			return err
		}

		for _, a := range accounts {
			overview.TotalBalance = overview.TotalBalance.Add(a.Balance)
		}
		overview.AccountCount = len(accounts)
		return nil
	})

	g.Go(func() error {
		transactions, err := r.amounts(gctx, owner, overview.Month.Time(), overview.Month.Next().Time())
		if err != nil {
			return err
		}

		for _, t := range transactions {
			if t.Kind == models.KindIncome {
				overview.Income = overview.Income.Add(t.Amount)
			} else {
				overview.Expense = overview.Expense.Add(t.Amount)
			}
		}
		return nil
	})

	err := g.Wait()
	if err != nil {
		return Overview{}, err
	}

	overview.Net = overview.Income.Sub(overview.Expense)
	return overview, nil
}

// Recent returns the most recent transactions.
//
// If limit is not positive, the configured default is used.
func (r *Reports) Recent(ctx context.Context, owner uuid.UUID, limit int) ([]ledger.Row, error) {
	if limit <= 0 {
		limit = r.cfg.RecentLimit
	}

	page, err := r.ledger.List(ctx, owner, ledger.Filter{Limit: limit})
	if err != nil {
		return nil, err
	}

	return page.Rows, nil
}

// SpendingByCategory sums up the expenses of the month per category,
// ordered by the amount spent, highest first.
//
// If month is zero, the current month is used.
func (r *Reports) SpendingByCategory(ctx context.Context, owner uuid.UUID, month types.Month) ([]CategorySpending, error) {
	if month.IsZero() {
		month = r.CurrentMonth()
	}

	transactions, err := r.amounts(ctx, owner, month.Time(), month.Next().Time(), expenses)
	if err != nil {
		return nil, err
	}

	totals := make(map[uuid.UUID]*CategorySpending)
	var uncategorized *CategorySpending
	ids := make([]uuid.UUID, 0)

	for _, t := range transactions {
		var spending *CategorySpending
		if t.CategoryID == nil {
			if uncategorized == nil {
				uncategorized = &CategorySpending{Name: UncategorizedName, Amount: decimal.Zero}
			}
			spending = uncategorized
		} else {
			spending = totals[*t.CategoryID]
			if spending == nil {
				id := *t.CategoryID
				spending = &CategorySpending{CategoryID: &id, Amount: decimal.Zero}
				totals[id] = spending
				ids = append(ids, id)
			}
		}

		spending.Amount = spending.Amount.Add(t.Amount)
		spending.Count++
	}

	if len(ids) > 0 {
		var categories []models.Category
		err = r.db.WithContext(ctx).Where("id IN ?", ids).Find(&categories).Error
		if err != nil {
			return nil, err
		}

		for _, c := range categories {
			totals[c.ID].Name = c.Name
			totals[c.ID].Color = c.Color
		}
	}

	result := make([]CategorySpending, 0, len(totals)+1)
	for _, id := range ids {
		result = append(result, *totals[id])
	}

	if uncategorized != nil {
		result = append(result, *uncategorized)
	}

	sort.SliceStable(result, func(i, j int) bool {
		if !result[i].Amount.Equal(result[j].Amount) {
			return result[i].Amount.GreaterThan(result[j].Amount)
		}
		return strings.ToLower(result[i].Name) < strings.ToLower(result[j].Name)
	})

	return result, nil
}

// AccountsSummary returns the active accounts, highest balance first.
func (r *Reports) AccountsSummary(ctx context.Context, owner uuid.UUID) ([]AccountSummary, error) {
	var accounts []models.Account
	err := r.db.WithContext(ctx).
		Scopes(models.OwnedBy(owner), activeAccounts).
		Find(&accounts).Error
	if err != nil {
		return nil, err
	}

	// Sorting happens here since the balance column is stored as
	// a number with floating point affinity
	sort.SliceStable(accounts, func(i, j int) bool {
		if !accounts[i].Balance.Equal(accounts[j].Balance) {
			return accounts[i].Balance.GreaterThan(accounts[j].Balance)
		}
		return accounts[i].Name < accounts[j].Name
	})

	summaries := make([]AccountSummary, 0, len(accounts))
	for _, a := range accounts {
		summaries = append(summaries, AccountSummary{
			Account: a,
			Display: Display(a.Balance, a.Currency),
		})
	}

	return summaries, nil
}

// Display formats an amount in the currency for humans, e.g. "$1,234.50".
//
// Currencies unknown to the formatter are displayed with their code.
func Display(amount decimal.Decimal, currency string) string {
	cur := money.GetCurrency(currency)
	if cur == nil {
		return fmt.Sprintf("%s %s", amount.StringFixed(2), currency)
	}

	factor, _ := decimal.NewFromInt(10).PowInt32(int32(cur.Fraction))
	return money.New(amount.Mul(factor).Round(0).IntPart(), cur.Code).Display()
}

// MonthlyTrends returns income and expense of the trailing months,
// ending with the current month and ordered from oldest to newest.
//
// Every month of the window is contained, even without transactions.
// If months is not positive, the configured default is used.
func (r *Reports) MonthlyTrends(ctx context.Context, owner uuid.UUID, months int) ([]Trend, error) {
	if months <= 0 {
		months = r.cfg.TrendMonths
	}

	if months > MaxTrendMonths {
		months = MaxTrendMonths
	}

	window := r.CurrentMonth().Window(months)

	trends := make([]Trend, 0, len(window))
	index := make(map[string]int, len(window))
	for i, m := range window {
		trends = append(trends, Trend{Month: m, Income: decimal.Zero, Expense: decimal.Zero, Net: decimal.Zero})
		index[m.String()] = i
	}

	transactions, err := r.amounts(ctx, owner, window[0].Time(), window[len(window)-1].Next().Time())
	if err != nil {
		return nil, err
	}

	for _, t := range transactions {
		i, ok := index[types.MonthOf(t.Date.UTC()).String()]
		if !ok {
			continue
		}

		if t.Kind == models.KindIncome {
			trends[i].Income = trends[i].Income.Add(t.Amount)
		} else {
			trends[i].Expense = trends[i].Expense.Add(t.Amount)
		}
	}

	for i := range trends {
		trends[i].Net = trends[i].Income.Sub(trends[i].Expense)
	}

	return trends, nil
}

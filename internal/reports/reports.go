package reports

import (
	"context"
	"time"

	"github.com/fintrack/backend/internal/ledger"
	"github.com/fintrack/backend/internal/models"
	"github.com/fintrack/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	DefaultTrendMonths = 6
	MaxTrendMonths     = 24
	DefaultRecentLimit = 10
)

// Config configures the reports.
type Config struct {
	Now         func() time.Time // the clock deciding the current month
	TrendMonths int              // default length of the monthly trend window
	RecentLimit int              // default number of recent transactions
}

// Reports calculates budget progress and dashboard data.
type Reports struct {
	db     *gorm.DB
	ledger *ledger.Engine
	cfg    Config
}

// New returns Reports for the database. Zero values in cfg are
// replaced with the defaults.
func New(db *gorm.DB, cfg Config) *Reports {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	if cfg.TrendMonths <= 0 || cfg.TrendMonths > MaxTrendMonths {
		cfg.TrendMonths = DefaultTrendMonths
	}

	if cfg.RecentLimit <= 0 || cfg.RecentLimit > ledger.MaxLimit {
		cfg.RecentLimit = DefaultRecentLimit
	}

	return &Reports{
		db:     db,
		ledger: ledger.New(db),
		cfg:    cfg,
	}
}

// CurrentMonth returns the month the clock is in.
func (r *Reports) CurrentMonth() types.Month {
	return types.MonthOf(r.cfg.Now().UTC())
}

// amount is the part of a transaction the aggregations need.
type amount struct {
	CategoryID *uuid.UUID
	Kind       models.TransactionKind
	Date       time.Time
	Amount     decimal.Decimal
}

// amounts returns the transactions of the owner dated in [from, until).
// The query is further restricted by the scopes.
func (r *Reports) amounts(ctx context.Context, owner uuid.UUID, from, until time.Time, scopes ...func(*gorm.DB) *gorm.DB) ([]amount, error) {
	var result []amount
	err := r.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Select("transactions.category_id, transactions.kind, transactions.date, transactions.amount").
		Scopes(models.OwnedBy(owner)).
		Where("transactions.date >= ? AND transactions.date < ?", from, until).
		Scopes(scopes...).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func expenses(db *gorm.DB) *gorm.DB {
	return db.Where("transactions.kind = ?", models.KindExpense)
}

package ledger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fintrack/backend/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	DefaultLimit = 50
	MaxLimit     = 100
)

// Row is a transaction enriched with the names of its account and category.
type Row struct {
	models.Transaction
	AccountName  string
	CategoryName *string
}

// Filter restricts the transactions returned by List and Export.
//
// Zero values do not filter.
type Filter struct {
	From              time.Time // first day, inclusive
	Until             time.Time // last day, inclusive
	Kind              models.TransactionKind
	AccountID         uuid.UUID
	CategoryID        uuid.UUID
	AmountMoreOrEqual decimal.Decimal
	AmountLessOrEqual decimal.Decimal
	Search            string // case-insensitive, matched against description and notes
	Offset            int
	Limit             int // DefaultLimit if 0, at most MaxLimit
}

// Page is a page of transactions and the total number of
// transactions matching the filter.
type Page struct {
	Rows   []Row
	Total  int64
	Offset int
	Limit  int
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// scope applies the filter conditions to a transaction query.
func (f Filter) scope(owner uuid.UUID) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = db.Scopes(models.OwnedBy(owner))

		if !f.From.IsZero() {
			db = db.Where("transactions.date >= ?", models.Day(f.From))
		}

		if !f.Until.IsZero() {
			db = db.Where("transactions.date < ?", models.Day(f.Until).AddDate(0, 0, 1))
		}

		if f.Kind != "" {
			db = db.Where("transactions.kind = ?", f.Kind)
		}

		if f.AccountID != uuid.Nil {
			db = db.Where("transactions.account_id = ?", f.AccountID)
		}

		if f.CategoryID != uuid.Nil {
			db = db.Where("transactions.category_id = ?", f.CategoryID)
		}

		if !f.AmountMoreOrEqual.IsZero() {
			db = db.Where("transactions.amount >= ?", f.AmountMoreOrEqual)
		}

		if !f.AmountLessOrEqual.IsZero() {
			db = db.Where("transactions.amount <= ?", f.AmountLessOrEqual)
		}

		if search := strings.TrimSpace(f.Search); search != "" {
			pattern := fmt.Sprintf("%%%s%%", likeEscaper.Replace(strings.ToLower(search)))
			db = db.Where(`(LOWER(transactions.description) LIKE ? ESCAPE '\' OR LOWER(transactions.notes) LIKE ? ESCAPE '\')`, pattern, pattern)
		}

		return db
	}
}

// rows selects transactions together with the names of account and category.
func rows(db *gorm.DB) *gorm.DB {
	return db.
		Select("transactions.*, accounts.name AS account_name, categories.name AS category_name").
		Joins("LEFT JOIN accounts ON accounts.id = transactions.account_id").
		Joins("LEFT JOIN categories ON categories.id = transactions.category_id").
		Order("transactions.date DESC, transactions.created_at DESC, transactions.id DESC")
}

// List returns a page of the transactions of the owner matching the filter,
// newest first.
func (e *Engine) List(ctx context.Context, owner uuid.UUID, filter Filter) (Page, error) {
	if filter.Limit <= 0 {
		filter.Limit = DefaultLimit
	}

	if filter.Limit > MaxLimit {
		filter.Limit = MaxLimit
	}

	if filter.Offset < 0 {
		filter.Offset = 0
	}

	page := Page{Offset: filter.Offset, Limit: filter.Limit, Rows: make([]Row, 0)}

	err := e.db.WithContext(ctx).Model(&models.Transaction{}).Scopes(filter.scope(owner)).Count(&page.Total).Error
	if err != nil {
		return Page{}, err
	}

	err = e.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Scopes(filter.scope(owner), rows).
		Offset(filter.Offset).
		Limit(filter.Limit).
		Find(&page.Rows).Error
	if err != nil {
		return Page{}, err
	}

	return page, nil
}

// all returns all transactions matching the filter, ignoring pagination.
func (e *Engine) all(ctx context.Context, owner uuid.UUID, filter Filter) ([]Row, error) {
	result := make([]Row, 0)
	err := e.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Scopes(filter.scope(owner), rows).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

// Get returns a single transaction of the owner.
func (e *Engine) Get(ctx context.Context, owner, id uuid.UUID) (Row, error) {
	var row Row
	err := e.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Scopes(models.OwnedBy(owner), rows).
		Where("transactions.id = ?", id).
		Take(&row).Error
	if err != nil {
		return Row{}, err
	}

	return row, nil
}

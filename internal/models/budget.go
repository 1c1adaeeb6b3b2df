package models

import (
	"strings"
	"unicode/utf8"

	"github.com/fintrack/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Budget is the spending plan of an owner for one month.
type Budget struct {
	DefaultModel
	OwnerID uuid.UUID   `gorm:"type:uuid;index;not null"`
	Name    string      `gorm:"not null"`
	Month   types.Month `gorm:"index;not null"`
	Note    string
}

func (b *Budget) BeforeSave(_ *gorm.DB) error {
	b.Name = strings.TrimSpace(b.Name)
	b.Note = strings.TrimSpace(b.Note)
	b.Month = types.MonthOf(b.Month.Time())

	return nil
}

// Validate checks the user editable fields of the budget.
func (b Budget) Validate() error {
	if l := utf8.RuneCountInString(strings.TrimSpace(b.Name)); l < 1 || l > 100 {
		return ErrNameLength
	}

	if b.Month.IsZero() {
		return ErrBudgetMonthNotSet
	}

	return nil
}

// BudgetCategory is the amount allocated to a category in a budget.
//
// There is no stored spent amount, it is always calculated from
// the transactions of the month.
type BudgetCategory struct {
	DefaultModel
	BudgetID   uuid.UUID       `gorm:"type:uuid;uniqueIndex:idx_budget_category;not null"`
	CategoryID uuid.UUID       `gorm:"type:uuid;uniqueIndex:idx_budget_category;index;not null"`
	Allocated  decimal.Decimal `gorm:"type:DECIMAL(12,2);not null"`
}

// Validate checks the user editable fields of the allocation.
func (a BudgetCategory) Validate() error {
	if a.CategoryID == uuid.Nil {
		return ErrAllocationCategoryNotSet
	}

	if a.Allocated.IsNegative() || !a.Allocated.Equal(a.Allocated.Round(2)) || a.Allocated.GreaterThanOrEqual(maxAmount) {
		return ErrAllocationInvalid
	}

	return nil
}

// Allocations returns the allocations of the budget, ordered by creation.
func (b Budget) Allocations(db *gorm.DB) ([]BudgetCategory, error) {
	var allocations []BudgetCategory
	err := db.Where(&BudgetCategory{BudgetID: b.ID}).Order("created_at ASC, id ASC").Find(&allocations).Error
	if err != nil {
		return nil, err
	}

	return allocations, nil
}

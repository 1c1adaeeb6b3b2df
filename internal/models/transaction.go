package models

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TransactionKind decides the sign of the effect a transaction has on its account.
type TransactionKind string

const (
	KindIncome  TransactionKind = "income"
	KindExpense TransactionKind = "expense"
)

// Valid reports if the kind is known.
func (k TransactionKind) Valid() bool {
	return k == KindIncome || k == KindExpense
}

// maxAmount is the first amount that does not fit into DECIMAL(12,2).
var maxAmount = decimal.New(1, 10)

// Transaction is income to or an expense from an account.
//
// The amount is always positive, Kind determines the sign of the effect.
// Account and category are weak references by ID.
type Transaction struct {
	DefaultModel
	OwnerID     uuid.UUID       `gorm:"type:uuid;index;not null"`
	AccountID   uuid.UUID       `gorm:"type:uuid;index;not null"`
	CategoryID  *uuid.UUID      `gorm:"type:uuid;index"`
	Kind        TransactionKind `gorm:"not null"`
	Amount      decimal.Decimal `gorm:"type:DECIMAL(12,2);not null"`
	Date        time.Time       `gorm:"index;not null"`
	Description string          `gorm:"not null"`
	Notes       string
}

func (t *Transaction) BeforeSave(_ *gorm.DB) error {
	t.Description = strings.TrimSpace(t.Description)
	t.Notes = strings.TrimSpace(t.Notes)
	t.Date = Day(t.Date)

	return nil
}

func (t *Transaction) AfterFind(tx *gorm.DB) error {
	t.Date = t.Date.In(time.UTC)
	return t.DefaultModel.AfterFind(tx)
}

// Validate checks the user editable fields of the transaction.
func (t Transaction) Validate() error {
	if t.AccountID == uuid.Nil {
		return ErrAccountIDNotSet
	}

	if !t.Kind.Valid() {
		return ErrTransactionKindInvalid
	}

	if err := ValidateAmount(t.Amount); err != nil {
		return err
	}

	if t.Date.IsZero() {
		return ErrTransactionDateNotSet
	}

	if l := utf8.RuneCountInString(strings.TrimSpace(t.Description)); l < 1 || l > 255 {
		return ErrDescriptionLength
	}

	return nil
}

// ValidateAmount verifies that an amount is positive, has at most
// two decimal places and fits into the database column.
func ValidateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrAmountNotPositive
	}

	if !amount.Equal(amount.Round(2)) {
		return ErrAmountPrecision
	}

	if amount.GreaterThanOrEqual(maxAmount) {
		return ErrAmountTooLarge
	}

	return nil
}

// Day returns midnight UTC of the calendar day of t in t's location.
func Day(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}

	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

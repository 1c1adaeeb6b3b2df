package models

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"gorm.io/gorm"
)

// AccountType is the kind of money an account holds.
type AccountType string

const (
	AccountChecking AccountType = "checking"
	AccountSavings  AccountType = "savings"
	AccountCredit   AccountType = "credit"
	AccountCash     AccountType = "cash"
)

// Valid reports if the account type is known.
func (t AccountType) Valid() bool {
	switch t {
	case AccountChecking, AccountSavings, AccountCredit, AccountCash:
		return true
	}
	return false
}

// Account represents an account the owner keeps money in.
//
// The balance is only ever changed through the effects of transactions,
// see ApplyEffect and RevertEffect.
type Account struct {
	DefaultModel
	OwnerID        uuid.UUID       `gorm:"type:uuid;index;not null"`
	Name           string          `gorm:"not null"`
	Type           AccountType     `gorm:"not null"`
	Balance        decimal.Decimal `gorm:"type:DECIMAL(12,2);not null;default:0"`
	InitialBalance decimal.Decimal `gorm:"type:DECIMAL(12,2);not null;default:0"`
	Currency       string          `gorm:"size:3;not null"`
	Description    string
	Active         bool   `gorm:"not null"`
	Version        uint64 `gorm:"not null;default:0"` // incremented with every balance change
}

func (a *Account) BeforeSave(_ *gorm.DB) error {
	a.Name = strings.TrimSpace(a.Name)
	a.Description = strings.TrimSpace(a.Description)
	a.Currency = strings.ToUpper(strings.TrimSpace(a.Currency))

	return nil
}

// BeforeCreate sets the ID and starts the balance at the initial balance.
func (a *Account) BeforeCreate(tx *gorm.DB) error {
	err := a.DefaultModel.BeforeCreate(tx)
	if err != nil {
		return err
	}

	if a.Currency == "" {
		a.Currency = "USD"
	}

	a.Balance = a.InitialBalance
	a.Version = 0
	return nil
}

// Validate checks the user editable fields of the account.
func (a Account) Validate() error {
	if l := utf8.RuneCountInString(strings.TrimSpace(a.Name)); l < 1 || l > 100 {
		return ErrNameLength
	}

	if !a.Type.Valid() {
		return ErrAccountTypeInvalid
	}

	if a.Currency != "" {
		if len(strings.TrimSpace(a.Currency)) != 3 {
			return ErrCurrencyInvalid
		}

		_, err := currency.ParseISO(strings.TrimSpace(a.Currency))
		if err != nil {
			return ErrCurrencyInvalid
		}
	}

	if a.InitialBalance.IsNegative() || !a.InitialBalance.Equal(a.InitialBalance.Round(2)) {
		return ErrInitialBalanceInvalid
	}

	return nil
}

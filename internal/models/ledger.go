package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Effect returns the signed balance delta of a transaction:
// +amount for income, -amount for expenses.
func Effect(kind TransactionKind, amount decimal.Decimal) decimal.Decimal {
	if kind == KindExpense {
		return amount.Neg()
	}
	return amount
}

// ApplyEffect adds the effect of a transaction to the balance of the account.
func (a *Account) ApplyEffect(db *gorm.DB, kind TransactionKind, amount decimal.Decimal) error {
	return a.adjustBalance(db, Effect(kind, amount))
}

// RevertEffect removes the effect of a transaction from the balance of the account.
// It is the exact inverse of ApplyEffect.
func (a *Account) RevertEffect(db *gorm.DB, kind TransactionKind, amount decimal.Decimal) error {
	return a.adjustBalance(db, Effect(kind, amount).Neg())
}

// SetInitialBalance changes the initial balance of the account and moves
// the balance by the same difference so that it stays consistent with
// the transactions of the account.
func (a *Account) SetInitialBalance(db *gorm.DB, initial decimal.Decimal) error {
	balance := a.Balance.Add(initial.Sub(a.InitialBalance))

	err := a.compareAndSwap(db, map[string]any{
		"initial_balance": initial,
		"balance":         balance,
	})
	if err != nil {
		return err
	}

	a.InitialBalance = initial
	a.Balance = balance
	return nil
}

// adjustBalance adds delta to the balance of the account.
func (a *Account) adjustBalance(db *gorm.DB, delta decimal.Decimal) error {
	balance := a.Balance.Add(delta)

	err := a.compareAndSwap(db, map[string]any{
		"balance": balance,
	})
	if err != nil {
		return err
	}

	a.Balance = balance
	return nil
}

// compareAndSwap writes the values if and only if the account has not
// been changed since it was read. Otherwise, ErrConflict is returned.
//
// On success, the version of a is incremented.
func (a *Account) compareAndSwap(db *gorm.DB, values map[string]any) error {
	values["version"] = gorm.Expr("version + 1")

	result := db.Model(&Account{}).
		Where("id = ? AND version = ?", a.ID, a.Version).
		Updates(values)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrConflict
	}

	a.Version++
	return nil
}

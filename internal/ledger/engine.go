// Package ledger implements the transaction engine.
//
// Every mutation of a transaction and the balance of the accounts it
// affects happens in a single database transaction. Account balances
// are written with a compare-and-swap on the account version, a lost
// update surfaces as models.ErrConflict and the whole unit is retried once.
package ledger

import (
	"context"
	"errors"

	"github.com/fintrack/backend/internal/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Engine creates, updates, deletes and reads transactions.
type Engine struct {
	db *gorm.DB
}

// New returns an Engine working on db.
func New(db *gorm.DB) *Engine {
	return &Engine{db: db}
}

// atomic runs fn in a database transaction. If the transaction fails
// with a conflict, it is retried once.
//
// Errors beginning or committing the transaction do not pass the gorm
// callbacks and are translated here.
func (e *Engine) atomic(ctx context.Context, fn func(tx *gorm.DB) error) error {
	err := models.TranslateDriverError(e.db.WithContext(ctx).Transaction(fn))
	if !errors.Is(err, models.ErrConflict) {
		return err
	}

	log.Debug().Msg("conflicting balance update, retrying")
	return models.TranslateDriverError(e.db.WithContext(ctx).Transaction(fn))
}

// account returns the account with the ID if the owner owns it.
func account(tx *gorm.DB, owner, id uuid.UUID) (models.Account, error) {
	var a models.Account
	err := tx.Scopes(models.OwnedBy(owner)).First(&a, "id = ?", id).Error
	return a, err
}

// activeAccount is account, but fails with models.ErrAccountInactive
// for inactive accounts.
func activeAccount(tx *gorm.DB, owner, id uuid.UUID) (models.Account, error) {
	a, err := account(tx, owner, id)
	if err != nil {
		return a, err
	}

	if !a.Active {
		return a, models.ErrAccountInactive
	}

	return a, nil
}

// checkCategory verifies that the category exists and is visible to the owner.
func checkCategory(tx *gorm.DB, owner, id uuid.UUID) error {
	var c models.Category
	return tx.Scopes(models.VisibleTo(owner)).First(&c, "id = ?", id).Error
}

package ledger

import (
	"context"
	"fmt"

	"github.com/fintrack/backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Create validates and persists a new transaction and applies its
// effect to the balance of its account.
//
// When no category is set, the match rules of the owner are used
// to find one.
func (e *Engine) Create(ctx context.Context, owner uuid.UUID, input models.Transaction) (Row, error) {
	input.OwnerID = owner
	input.Date = models.Day(input.Date)

	err := input.Validate()
	if err != nil {
		return Row{}, err
	}

	var created models.Transaction
	err = e.atomic(ctx, func(tx *gorm.DB) error {
		created = input

		account, err := activeAccount(tx, owner, created.AccountID)
		if err != nil {
			return err
		}

		if created.CategoryID != nil {
			err = checkCategory(tx, owner, *created.CategoryID)
			if err != nil {
				return err
			}
		} else {
			rules, err := models.MatchRules(tx, owner)
			if err != nil {
				return err
			}

			if category, ok := models.MatchCategory(rules, created.Description); ok {
				created.CategoryID = &category
			}
		}

		err = tx.Create(&created).Error
		if err != nil {
			return err
		}

		return account.ApplyEffect(tx, created.Kind, created.Amount)
	})
	if err != nil {
		return Row{}, err
	}

	return e.Get(ctx, owner, created.ID)
}

// Update changes the fields of the transaction.
//
// fields holds the names of the fields of update that are applied,
// all other fields keep their current value. The effect of the
// transaction is reverted on the old account and applied with
// the new values on the new account.
func (e *Engine) Update(ctx context.Context, owner, id uuid.UUID, fields []string, update models.Transaction) (Row, error) {
	err := e.atomic(ctx, func(tx *gorm.DB) error {
		var transaction models.Transaction
		err := tx.Scopes(models.OwnedBy(owner)).First(&transaction, "id = ?", id).Error
		if err != nil {
			return err
		}

		old, err := activeAccount(tx, owner, transaction.AccountID)
		if err != nil {
			return err
		}

		err = old.RevertEffect(tx, transaction.Kind, transaction.Amount)
		if err != nil {
			return err
		}

		categoryChanged, err := merge(&transaction, fields, update)
		if err != nil {
			return err
		}

		err = transaction.Validate()
		if err != nil {
			return err
		}

		if categoryChanged && transaction.CategoryID != nil {
			err = checkCategory(tx, owner, *transaction.CategoryID)
			if err != nil {
				return err
			}
		}

		// The old account is re-used when the account does not change
		// so that its version matches the one written by RevertEffect
		target := old
		if transaction.AccountID != old.ID {
			target, err = activeAccount(tx, owner, transaction.AccountID)
			if err != nil {
				return err
			}
		}

		err = tx.Save(&transaction).Error
		if err != nil {
			return err
		}

		return target.ApplyEffect(tx, transaction.Kind, transaction.Amount)
	})
	if err != nil {
		return Row{}, err
	}

	return e.Get(ctx, owner, id)
}

// merge copies the named fields from update to transaction.
// It reports if the category was part of the update.
func merge(transaction *models.Transaction, fields []string, update models.Transaction) (bool, error) {
	var categoryChanged bool

	for _, field := range fields {
		switch field {
		case "AccountID":
			transaction.AccountID = update.AccountID
		case "CategoryID":
			transaction.CategoryID = update.CategoryID
			categoryChanged = true
		case "Kind":
			transaction.Kind = update.Kind
		case "Amount":
			transaction.Amount = update.Amount
		case "Date":
			transaction.Date = models.Day(update.Date)
		case "Description":
			transaction.Description = update.Description
		case "Notes":
			transaction.Notes = update.Notes
		default:
			return false, fmt.Errorf("%w: %s", ErrFieldNotUpdatable, field)
		}
	}

	return categoryChanged, nil
}

// Delete removes the transaction and reverts its effect on the account.
func (e *Engine) Delete(ctx context.Context, owner, id uuid.UUID) error {
	return e.atomic(ctx, func(tx *gorm.DB) error {
		var transaction models.Transaction
		err := tx.Scopes(models.OwnedBy(owner)).First(&transaction, "id = ?", id).Error
		if err != nil {
			return err
		}

		account, err := activeAccount(tx, owner, transaction.AccountID)
		if err != nil {
			return err
		}

		err = account.RevertEffect(tx, transaction.Kind, transaction.Amount)
		if err != nil {
			return err
		}

		return tx.Delete(&transaction).Error
	})
}

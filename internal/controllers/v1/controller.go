// Package v1 implements the handlers for version 1 of the fintrack API.
//
// All resources are scoped to the owner resolved by the auth middleware.
// Resources of other owners are reported as not existing.
package v1

import (
	"github.com/fintrack/backend/internal/ledger"
	"github.com/fintrack/backend/internal/reports"
	"gorm.io/gorm"
)

// Controller holds the dependencies of the handlers.
type Controller struct {
	DB      *gorm.DB
	Ledger  *ledger.Engine
	Reports *reports.Reports
}

// NewController returns a Controller working on db.
func NewController(db *gorm.DB, cfg reports.Config) Controller {
	return Controller{
		DB:      db,
		Ledger:  ledger.New(db),
		Reports: reports.New(db, cfg),
	}
}

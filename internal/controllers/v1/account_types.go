package v1

import (
	"fmt"
	"slices"

	"github.com/fintrack/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AccountEditable represents all user configurable parameters
type AccountEditable struct {
	Name           string             `json:"name" example:"Checking"`                                      // Name of the account
	Type           models.AccountType `json:"type" example:"checking" enums:"checking,savings,credit,cash"` // Type of the account
	InitialBalance decimal.Decimal    `json:"initialBalance" example:"173.12"`                              // Balance of the account before any transactions
	Currency       string             `json:"currency" example:"EUR" default:"USD"`                         // ISO 4217 code of the currency of the account
	Description    string             `json:"description" example:"Daily spending"`                         // Description of the account
	Active         *bool              `json:"active" example:"true" default:"true"`                         // Is the account active? Transactions of inactive accounts can not be changed
}

func (editable AccountEditable) model() models.Account {
	active := true
	if editable.Active != nil {
		active = *editable.Active
	}

	return models.Account{
		Name:           editable.Name,
		Type:           editable.Type,
		InitialBalance: editable.InitialBalance,
		Currency:       editable.Currency,
		Description:    editable.Description,
		Active:         active,
	}
}

// merge copies the fields that are set in the request to the account.
func (editable AccountEditable) merge(account models.Account, fields []string) models.Account {
	update := editable.model()

	for _, field := range fields {
		switch field {
		case "Name":
			account.Name = update.Name
		case "Type":
			account.Type = update.Type
		case "InitialBalance":
			account.InitialBalance = update.InitialBalance
		case "Currency":
			account.Currency = update.Currency
		case "Description":
			account.Description = update.Description
		case "Active":
			account.Active = update.Active
		}
	}

	return account
}

type AccountLinks struct {
	Self         string `json:"self" example:"https://example.com/api/v1/accounts/af892e10-7e0a-4fb8-b1bc-4b6d88401ed2"`                     // The account itself
	Transactions string `json:"transactions" example:"https://example.com/api/v1/transactions?account=af892e10-7e0a-4fb8-b1bc-4b6d88401ed2"` // Transactions referencing the account
}

type Account struct {
	models.DefaultModel
	Name           string             `json:"name" example:"Checking"`
	Type           models.AccountType `json:"type" example:"checking"`
	Balance        decimal.Decimal    `json:"balance" example:"2731.19"` // Current balance: the initial balance plus the effects of all transactions
	InitialBalance decimal.Decimal    `json:"initialBalance" example:"173.12"`
	Currency       string             `json:"currency" example:"EUR"`
	Description    string             `json:"description" example:"Daily spending"`
	Active         bool               `json:"active" example:"true"`
	Links          AccountLinks       `json:"links"`
}

func newAccount(c *gin.Context, model models.Account) Account {
	url := c.GetString(string(models.DBContextURL))

	return Account{
		DefaultModel:   model.DefaultModel,
		Name:           model.Name,
		Type:           model.Type,
		Balance:        model.Balance,
		InitialBalance: model.InitialBalance,
		Currency:       model.Currency,
		Description:    model.Description,
		Active:         model.Active,
		Links: AccountLinks{
			Self:         fmt.Sprintf("%s/v1/accounts/%s", url, model.ID),
			Transactions: fmt.Sprintf("%s/v1/transactions?account=%s", url, model.ID),
		},
	}
}

type AccountListResponse struct {
	Data       []Account   `json:"data"`                                                          // List of accounts
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type AccountCreateResponse struct {
	Data  []AccountResponse `json:"data"`                                                          // List of created accounts or their respective error
	Error *string           `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (a *AccountCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	a.Data = append(a.Data, AccountResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type AccountResponse struct {
	Data  *Account `json:"data"`                                                          // Data for the account
	Error *string  `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type AccountQueryFilter struct {
	Name     string             `form:"name"`     // By name
	Type     models.AccountType `form:"type"`     // By type
	Currency string             `form:"currency"` // By currency
	Active   bool               `form:"active"`   // Is the account active?
	Search   string             `form:"search"`   // By string in name or description
	Offset   uint               `form:"offset"`   // The offset of the first account returned. Defaults to 0.
	Limit    int                `form:"limit"`    // Maximum number of accounts to return. Defaults to 50.
}

// scope restricts an account query to the accounts of the owner
// matching the fields set in the query string.
func (f AccountQueryFilter) scope(owner uuid.UUID, setFields []string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = db.Scopes(models.OwnedBy(owner), search(f.Search, "accounts.name", "accounts.description"))

		if slices.Contains(setFields, "Name") {
			db = db.Where("accounts.name = ?", f.Name)
		}

		if slices.Contains(setFields, "Type") {
			db = db.Where("accounts.type = ?", f.Type)
		}

		if slices.Contains(setFields, "Currency") {
			db = db.Where("accounts.currency = UPPER(?)", f.Currency)
		}

		if slices.Contains(setFields, "Active") {
			db = db.Where("accounts.active = ?", f.Active)
		}

		return db
	}
}

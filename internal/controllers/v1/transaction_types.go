package v1

import (
	"fmt"
	"time"

	"github.com/fintrack/backend/internal/ledger"
	"github.com/fintrack/backend/internal/models"
	ez_uuid "github.com/fintrack/backend/internal/uuid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionEditable represents all user configurable parameters
type TransactionEditable struct {
	AccountID   uuid.UUID              `json:"accountId" example:"f9e873c2-fb96-4367-bfb6-7ecd9bf4a6b5"`      // ID of the account the transaction belongs to
	CategoryID  *uuid.UUID             `json:"categoryId" example:"2649c965-7999-4873-ae16-89d5d5fa972e"`     // ID of the category. When not set, the match rules are used to find one
	Kind        models.TransactionKind `json:"kind" example:"expense" enums:"income,expense"`                 // Income adds the amount to the balance of the account, expense subtracts it
	Amount      decimal.Decimal        `json:"amount" example:"14.03" minimum:"0.01" maximum:"9999999999.99"` // The amount, always positive
	Date        time.Time              `json:"date" example:"1815-12-10T00:00:00Z"`                           // Date of the transaction. Only the calendar day is stored
	Description string                 `json:"description" example:"Lunch" minLength:"1" maxLength:"255"`     // What the transaction was for
	Notes       string                 `json:"notes" example:"Paid with the new card"`                        // Additional notes
}

func (editable TransactionEditable) model() models.Transaction {
	return models.Transaction{
		AccountID:   editable.AccountID,
		CategoryID:  editable.CategoryID,
		Kind:        editable.Kind,
		Amount:      editable.Amount,
		Date:        editable.Date,
		Description: editable.Description,
		Notes:       editable.Notes,
	}
}

type TransactionLinks struct {
	Self     string `json:"self" example:"https://example.com/api/v1/transactions/d430d7c3-d14c-4712-9336-ee56965a6673"`   // The transaction itself
	Account  string `json:"account" example:"https://example.com/api/v1/accounts/f9e873c2-fb96-4367-bfb6-7ecd9bf4a6b5"`    // The account of the transaction
	Category string `json:"category" example:"https://example.com/api/v1/categories/2649c965-7999-4873-ae16-89d5d5fa972e"` // The category of the transaction, empty if uncategorized
}

type Transaction struct {
	models.DefaultModel
	TransactionEditable
	AccountName  string           `json:"accountName" example:"Checking"`       // Name of the account
	CategoryName *string          `json:"categoryName" example:"Food & Dining"` // Name of the category, null if uncategorized
	Links        TransactionLinks `json:"links"`
}

func newTransaction(c *gin.Context, row ledger.Row) Transaction {
	url := c.GetString(string(models.DBContextURL))

	transaction := Transaction{
		DefaultModel: row.DefaultModel,
		TransactionEditable: TransactionEditable{
			AccountID:   row.AccountID,
			CategoryID:  row.CategoryID,
			Kind:        row.Kind,
			Amount:      row.Amount,
			Date:        row.Date,
			Description: row.Description,
			Notes:       row.Notes,
		},
		AccountName:  row.AccountName,
		CategoryName: row.CategoryName,
		Links: TransactionLinks{
			Self:    fmt.Sprintf("%s/v1/transactions/%s", url, row.ID),
			Account: fmt.Sprintf("%s/v1/accounts/%s", url, row.AccountID),
		},
	}

	if row.CategoryID != nil {
		transaction.Links.Category = fmt.Sprintf("%s/v1/categories/%s", url, *row.CategoryID)
	}

	return transaction
}

type TransactionListResponse struct {
	Data       []Transaction `json:"data"`                                                          // List of transactions
	Error      *string       `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination   `json:"pagination"`                                                    // Pagination information
}

type TransactionCreateResponse struct {
	Data  []TransactionResponse `json:"data"`                                                          // List of created transactions or their respective error
	Error *string               `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (t *TransactionCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	t.Data = append(t.Data, TransactionResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type TransactionResponse struct {
	Data  *Transaction `json:"data"`                                                          // Data for the transaction
	Error *string      `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type TransactionQueryFilter struct {
	From              time.Time              `form:"from" time_format:"2006-01-02" time_utc:"1"`  // Transactions at and after this date
	Until             time.Time              `form:"until" time_format:"2006-01-02" time_utc:"1"` // Transactions at and before this date
	Kind              models.TransactionKind `form:"kind"`                                        // By kind
	AccountID         ez_uuid.UUID           `form:"account"`                                     // By ID of the account
	CategoryID        ez_uuid.UUID           `form:"category"`                                    // By ID of the category
	AmountMoreOrEqual decimal.Decimal        `form:"amountMoreOrEqual"`                           // Amount more than or equal to
	AmountLessOrEqual decimal.Decimal        `form:"amountLessOrEqual"`                           // Amount less than or equal to
	Search            string                 `form:"search"`                                      // By string in description or notes
	Offset            uint                   `form:"offset"`                                      // The offset of the first transaction returned. Defaults to 0.
	Limit             int                    `form:"limit"`                                       // Maximum number of transactions to return. Defaults to 50.
}

func (f TransactionQueryFilter) model() (ledger.Filter, error) {
	if f.Kind != "" && !f.Kind.Valid() {
		return ledger.Filter{}, models.ErrTransactionKindInvalid
	}

	return ledger.Filter{
		From:              f.From,
		Until:             f.Until,
		Kind:              f.Kind,
		AccountID:         f.AccountID.UUID,
		CategoryID:        f.CategoryID.UUID,
		AmountMoreOrEqual: f.AmountMoreOrEqual,
		AmountLessOrEqual: f.AmountLessOrEqual,
		Search:            f.Search,
		Offset:            int(f.Offset),
		Limit:             f.Limit,
	}, nil
}

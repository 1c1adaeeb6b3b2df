package v1

import (
	"fmt"
	"slices"

	"github.com/fintrack/backend/internal/models"
	"github.com/fintrack/backend/internal/reports"
	"github.com/fintrack/backend/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AllocationEditable is the amount planned for a category
type AllocationEditable struct {
	CategoryID uuid.UUID       `json:"categoryId" example:"2649c965-7999-4873-ae16-89d5d5fa972e"` // ID of the category
	Allocated  decimal.Decimal `json:"allocated" example:"250"`                                   // Amount planned to be spent
}

func (editable AllocationEditable) model(budgetID uuid.UUID) models.BudgetCategory {
	return models.BudgetCategory{
		BudgetID:   budgetID,
		CategoryID: editable.CategoryID,
		Allocated:  editable.Allocated,
	}
}

// BudgetEditable represents all user configurable parameters
type BudgetEditable struct {
	Name        string               `json:"name" example:"Groceries June"`               // Name of the budget
	Month       types.Month          `json:"month" example:"2024-06"`                     // Month of the budget in YYYY-MM format
	Note        string               `json:"note" example:"Including the birthday party"` // A note about the budget
	Allocations []AllocationEditable `json:"allocations"`                                 // Amounts per category, at least one. On update, the allocations are replaced
}

func (editable BudgetEditable) model() models.Budget {
	return models.Budget{
		Name:  editable.Name,
		Month: editable.Month,
		Note:  editable.Note,
	}
}

// merge copies the fields that are set in the request to the budget.
func (editable BudgetEditable) merge(budget models.Budget, fields []string) models.Budget {
	for _, field := range fields {
		switch field {
		case "Name":
			budget.Name = editable.Name
		case "Month":
			budget.Month = editable.Month
		case "Note":
			budget.Note = editable.Note
		}
	}

	return budget
}

// Progress is the spending against an allocated amount.
type Progress struct {
	Allocated  decimal.Decimal `json:"allocated" example:"200"`
	Spent      decimal.Decimal `json:"spent" example:"180"`                                        // Sum of the expenses in the month
	Remaining  decimal.Decimal `json:"remaining" example:"20"`                                     // Allocated minus spent, negative when overspent
	Percentage float64         `json:"percentage" example:"90"`                                    // Spent in percent of allocated, rounded to two decimal places. 0 if nothing is allocated
	Status     reports.Status  `json:"status" example:"warning" enums:"on_track,warning,exceeded"` // exceeded from 100 percent, warning from 80 percent
}

func newProgress(p reports.Progress) Progress {
	return Progress{
		Allocated:  p.Allocated,
		Spent:      p.Spent,
		Remaining:  p.Remaining,
		Percentage: p.Percentage.Round(2).InexactFloat64(),
		Status:     p.Status,
	}
}

type Allocation struct {
	ID           uuid.UUID `json:"id" example:"65392deb-5e92-4268-b114-297faad6cdce"`
	CategoryID   uuid.UUID `json:"categoryId" example:"2649c965-7999-4873-ae16-89d5d5fa972e"`
	CategoryName string    `json:"categoryName" example:"Food & Dining"`
	Progress
}

type BudgetLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/budgets/550dc009-cea6-4c12-b2a5-03446eb7b7cf"` // The budget itself
}

type Budget struct {
	models.DefaultModel
	Name        string       `json:"name" example:"Groceries June"`
	Month       types.Month  `json:"month" example:"2024-06"`
	Note        string       `json:"note" example:"Including the birthday party"`
	Allocations []Allocation `json:"allocations"`
	Total       Progress     `json:"total"` // Progress of all allocations together
	Links       BudgetLinks  `json:"links"`
}

func newBudget(c *gin.Context, report reports.BudgetReport) Budget {
	url := c.GetString(string(models.DBContextURL))

	budget := Budget{
		DefaultModel: report.Budget.DefaultModel,
		Name:         report.Budget.Name,
		Month:        report.Budget.Month,
		Note:         report.Budget.Note,
		Allocations:  make([]Allocation, 0, len(report.Allocations)),
		Total:        newProgress(report.Total),
		Links: BudgetLinks{
			Self: fmt.Sprintf("%s/v1/budgets/%s", url, report.Budget.ID),
		},
	}

	for _, a := range report.Allocations {
		budget.Allocations = append(budget.Allocations, Allocation{
			ID:           a.Allocation.ID,
			CategoryID:   a.Allocation.CategoryID,
			CategoryName: a.CategoryName,
			Progress:     newProgress(a.Progress),
		})
	}

	return budget
}

type BudgetListResponse struct {
	Data       []Budget    `json:"data"`                                                          // List of budgets
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type BudgetCreateResponse struct {
	Data  []BudgetResponse `json:"data"`                                                          // List of created budgets or their respective error
	Error *string          `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (b *BudgetCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	b.Data = append(b.Data, BudgetResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type BudgetResponse struct {
	Data  *Budget `json:"data"`                                                          // Data for the budget
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type BudgetQueryFilter struct {
	Month  types.Month `form:"month"`  // By month, YYYY-MM
	Name   string      `form:"name"`   // By name
	Search string      `form:"search"` // By string in name or note
	Offset uint        `form:"offset"` // The offset of the first budget returned. Defaults to 0.
	Limit  int         `form:"limit"`  // Maximum number of budgets to return. Defaults to 50.
}

func (f BudgetQueryFilter) scope(owner uuid.UUID, setFields []string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = db.Scopes(models.OwnedBy(owner), search(f.Search, "budgets.name", "budgets.note"))

		if slices.Contains(setFields, "Month") && !f.Month.IsZero() {
			db = db.Where("budgets.month = ?", f.Month)
		}

		if slices.Contains(setFields, "Name") {
			db = db.Where("budgets.name = ?", f.Name)
		}

		return db
	}
}

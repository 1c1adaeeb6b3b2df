package reports

import (
	"context"

	"github.com/fintrack/backend/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AllocationReport is the progress of a single allocation of a budget.
type AllocationReport struct {
	Allocation   models.BudgetCategory
	CategoryName string
	Progress     Progress
}

// BudgetReport is a budget with the progress of all its allocations.
type BudgetReport struct {
	Budget      models.Budget
	Allocations []AllocationReport
	Total       Progress
}

// Budget calculates the progress of all allocations of the budget.
//
// Spent amounts are the sums of the expenses in the category dated
// in the month of the budget.
func (r *Reports) Budget(ctx context.Context, budget models.Budget) (BudgetReport, error) {
	report := BudgetReport{
		Budget:      budget,
		Allocations: make([]AllocationReport, 0),
	}

	allocations, err := budget.Allocations(r.db.WithContext(ctx))
	if err != nil {
		return BudgetReport{}, err
	}

	categoryIDs := make([]uuid.UUID, 0, len(allocations))
	for _, a := range allocations {
		categoryIDs = append(categoryIDs, a.CategoryID)
	}

	names := make(map[uuid.UUID]string)
	spent := make(map[uuid.UUID]decimal.Decimal)

	if len(categoryIDs) > 0 {
		var categories []models.Category
		err = r.db.WithContext(ctx).Where("id IN ?", categoryIDs).Find(&categories).Error
		if err != nil {
			return BudgetReport{}, err
		}

		for _, c := range categories {
			names[c.ID] = c.Name
		}

		inCategories := func(db *gorm.DB) *gorm.DB {
			return db.Where("transactions.category_id IN ?", categoryIDs)
		}

		month := budget.Month
		transactions, err := r.amounts(ctx, budget.OwnerID, month.Time(), month.Next().Time(), expenses, inCategories)
		if err != nil {
			return BudgetReport{}, err
		}

		for _, t := range transactions {
			spent[*t.CategoryID] = spent[*t.CategoryID].Add(t.Amount)
		}
	}

	totalAllocated := decimal.Zero
	totalSpent := decimal.Zero

	for _, a := range allocations {
		report.Allocations = append(report.Allocations, AllocationReport{
			Allocation:   a,
			CategoryName: names[a.CategoryID],
			Progress:     NewProgress(a.Allocated, spent[a.CategoryID]),
		})

		totalAllocated = totalAllocated.Add(a.Allocated)
		totalSpent = totalSpent.Add(spent[a.CategoryID])
	}

	report.Total = NewProgress(totalAllocated, totalSpent)
	return report, nil
}

// Budgets calculates the reports for multiple budgets.
func (r *Reports) Budgets(ctx context.Context, budgets []models.Budget) ([]BudgetReport, error) {
	reports := make([]BudgetReport, 0, len(budgets))
	for _, b := range budgets {
		report, err := r.Budget(ctx, b)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}

	return reports, nil
}

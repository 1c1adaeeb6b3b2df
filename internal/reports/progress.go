// Package reports implements the read-only aggregations over
// transactions: budget progress and the dashboard.
package reports

import (
	"github.com/shopspring/decimal"
)

// Status classifies how much of an allocation has been spent.
type Status string

const (
	StatusOnTrack  Status = "on_track"
	StatusWarning  Status = "warning"
	StatusExceeded Status = "exceeded"
)

var (
	hundred          = decimal.NewFromInt(100)
	warningThreshold = decimal.NewFromInt(80)
)

// Progress is the spending progress for an allocated amount.
type Progress struct {
	Allocated  decimal.Decimal
	Spent      decimal.Decimal
	Remaining  decimal.Decimal // negative when more than allocated was spent
	Percentage decimal.Decimal // spent in percent of allocated, 0 if nothing is allocated
	Status     Status
}

// NewProgress calculates the progress of spending against an allocation.
func NewProgress(allocated, spent decimal.Decimal) Progress {
	percentage := decimal.Zero
	if !allocated.IsZero() {
		percentage = spent.Mul(hundred).Div(allocated)
	}

	status := StatusOnTrack
	switch {
	case percentage.GreaterThanOrEqual(hundred):
		status = StatusExceeded
	case percentage.GreaterThanOrEqual(warningThreshold):
		status = StatusWarning
	}

	return Progress{
		Allocated:  allocated,
		Spent:      spent,
		Remaining:  allocated.Sub(spent),
		Percentage: percentage,
		Status:     status,
	}
}

package v1

import (
	"github.com/fintrack/backend/internal/types"
	ez_uuid "github.com/fintrack/backend/internal/uuid"
)

type URIID struct {
	ID ez_uuid.UUID `uri:"id" binding:"required" format:"UUID"` // ID of the resource
}

type QueryMonth struct {
	Month types.Month `form:"month" example:"2024-06"` // Year and month in YYYY-MM format
}

// Pagination contains information about the pagination for collection endpoint responses.
type Pagination struct {
	Count  int   `json:"count" example:"25"`  // The amount of records returned in this response
	Offset uint  `json:"offset" example:"50"` // The offset for the first record returned
	Limit  int   `json:"limit" example:"25"`  // The maximum amount of resources to return for this request
	Total  int64 `json:"total" example:"827"` // The total number of resources matching the query
}

// pageLimit returns the page size for a requested limit.
// Unset limits use the default, limits outside of 1 to 100 are an error.
func pageLimit(limit int, set bool) (int, error) {
	if !set {
		return 50, nil
	}

	if limit < 1 || limit > 100 {
		return 0, errLimitParameter
	}

	return limit, nil
}

package v1

import (
	"errors"
	"net/http"

	"github.com/fintrack/backend/internal/models"
)

type httpError struct {
	Error string `json:"error" example:"the specified resource ID is not a valid UUID"`
}

// status returns the appropriate status for an error
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	if errors.Is(err, models.ErrConflict) {
		return http.StatusConflict
	}

	return http.StatusBadRequest
}

var (
	errMonthsParameter = errors.New("the months parameter must be between 1 and 24")
	errLimitParameter  = errors.New("the limit parameter must be between 1 and 100")
)

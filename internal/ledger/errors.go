package ledger

import "github.com/fintrack/backend/internal/models"

const (
	ErrExportFormatInvalid models.ValidationError = "the export format must be one of csv, json, xlsx"
	ErrFieldNotUpdatable   models.ValidationError = "the field can not be updated"
)

package ledger

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/fintrack/backend/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// Format is an export file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatXLSX Format = "xlsx"
)

// ParseFormat returns the Format for its name. The empty string is CSV.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatXLSX:
		return FormatXLSX, nil
	}
	return "", ErrExportFormatInvalid
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	switch f {
	case FormatJSON:
		return "application/json"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv"
}

// Filename returns the name of the export file for the time of export.
func (f Format) Filename(t time.Time) string {
	return fmt.Sprintf("transactions-%s.%s", t.Format("2006-01-02"), f)
}

// Record is an exported transaction.
//
// The JSON field names are the ones used for creating transactions,
// an exported JSON file can be posted to the API to create the
// same transactions again.
type Record struct {
	AccountID   uuid.UUID              `json:"accountId"`
	CategoryID  *uuid.UUID             `json:"categoryId"`
	Kind        models.TransactionKind `json:"kind"`
	Amount      decimal.Decimal        `json:"amount"`
	Date        time.Time              `json:"date"`
	Description string                 `json:"description"`
	Notes       string                 `json:"notes"`
}

func newRecord(row Row) Record {
	return Record{
		AccountID:   row.AccountID,
		CategoryID:  row.CategoryID,
		Kind:        row.Kind,
		Amount:      row.Amount,
		Date:        row.Date,
		Description: row.Description,
		Notes:       row.Notes,
	}
}

var header = []string{"Date", "Kind", "Amount", "Description", "Account", "Category", "Notes", "Account ID", "Category ID"}

// cells returns the values of the row in the order of header.
func cells(row Row) []string {
	var category, categoryID string
	if row.CategoryName != nil {
		category = *row.CategoryName
	}

	if row.CategoryID != nil {
		categoryID = row.CategoryID.String()
	}

	return []string{
		row.Date.Format(time.DateOnly),
		string(row.Kind),
		row.Amount.StringFixed(2),
		row.Description,
		row.AccountName,
		category,
		row.Notes,
		row.AccountID.String(),
		categoryID,
	}
}

// Export writes all transactions matching the filter to w.
// Pagination fields of the filter are ignored.
func (e *Engine) Export(ctx context.Context, owner uuid.UUID, filter Filter, format Format, w io.Writer) error {
	transactions, err := e.all(ctx, owner, filter)
	if err != nil {
		return err
	}

	switch format {
	case FormatJSON:
		return exportJSON(transactions, w)
	case FormatXLSX:
		return exportXLSX(transactions, w)
	case FormatCSV:
		return exportCSV(transactions, w)
	}

	return ErrExportFormatInvalid
}

func exportJSON(transactions []Row, w io.Writer) error {
	records := make([]Record, 0, len(transactions))
	for _, t := range transactions {
		records = append(records, newRecord(t))
	}

	return json.NewEncoder(w).Encode(records)
}

func exportCSV(transactions []Row, w io.Writer) error {
	writer := csv.NewWriter(w)

	err := writer.Write(header)
	if err != nil {
		return err
	}

	for _, t := range transactions {
		err = writer.Write(cells(t))
		if err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func exportXLSX(transactions []Row, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Transactions"
	err := f.SetSheetName("Sheet1", sheet)
	if err != nil {
		return err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"D9E1F2"}, Pattern: 1},
	})
	if err != nil {
		return err
	}

	for i, title := range header {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		err = f.SetCellValue(sheet, cell, title)
		if err != nil {
			return err
		}
	}

	last, _ := excelize.CoordinatesToCellName(len(header), 1)
	err = f.SetCellStyle(sheet, "A1", last, headerStyle)
	if err != nil {
		return err
	}

	for r, t := range transactions {
		for i, value := range cells(t) {
			cell, _ := excelize.CoordinatesToCellName(i+1, r+2)

			// Amounts are written as numbers so that they can be summed up
			var v any = value
			if i == 2 {
				v = t.Amount.InexactFloat64()
			}

			err = f.SetCellValue(sheet, cell, v)
			if err != nil {
				return err
			}
		}
	}

	widths := []struct {
		from, to string
		width    float64
	}{
		{"A", "C", 12},
		{"D", "D", 40},
		{"E", "G", 20},
		{"H", "I", 38},
	}

	for _, col := range widths {
		err = f.SetColWidth(sheet, col.from, col.to, col.width)
		if err != nil {
			return err
		}
	}

	return f.Write(w)
}

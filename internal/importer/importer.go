// Package importer validates and normalizes bulk transaction imports.
//
// Rows arrive pre-parsed from a spreadsheet upload as loosely typed JSON.
// ValidateBatch is a pure transform: input rows are never mutated, and
// normalization (category coercion, date defaulting) happens on the
// returned records only.
package importer

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
)

// MaxBatchSize is the maximum number of rows accepted in one import.
// Larger batches are rejected wholesale before any row is examined.
const MaxBatchSize = 50

// headerRowOffset maps a zero-based data row index to the row number shown
// in the user's spreadsheet, where row 1 is the header.
const headerRowOffset = 2

var dateFormat = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// CellValue is a spreadsheet cell decoded from JSON. Upstream parsers emit
// strings for most cells but keep numeric cells as JSON numbers; both
// decode into the cell's text.
type CellValue string

// UnmarshalJSON accepts JSON strings, numbers, and null.
func (v *CellValue) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*v = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = CellValue(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*v = CellValue(n.String())
	return nil
}

// RawRow is one unvalidated import row.
type RawRow struct {
	Amount      CellValue `json:"amount"`
	Type        CellValue `json:"type"`
	Category    CellValue `json:"category"`
	Description CellValue `json:"description"`
	Date        CellValue `json:"date"`
}

// ValidateBatch validates every row and returns the normalized records
// alongside the collected row errors. Checks within a row run in order and
// stop at the first failure; validation always continues with the next row
// so the user sees every broken row at once.
//
// A batch over MaxBatchSize returns ErrBatchLimitExceeded and nothing else.
// Row errors are formatted "Row N: <message>" using spreadsheet numbering
// (the first data row is row 2).
func ValidateBatch(rows []RawRow, ownerID string, now time.Time) ([]models.Transaction, []string, error) {
	if len(rows) > MaxBatchSize {
		return nil, nil, apperrors.WithMessage(apperrors.ErrBatchLimitExceeded,
			fmt.Sprintf("Maximum %d transactions allowed. Found %d transactions.", MaxBatchSize, len(rows)))
	}

	valid := make([]models.Transaction, 0, len(rows))
	rowErrors := make([]string, 0)
	for i, row := range rows {
		record, err := validateRow(row, ownerID, now)
		if err != nil {
			rowErrors = append(rowErrors, fmt.Sprintf("Row %d: %s", i+headerRowOffset, err))
			continue
		}
		valid = append(valid, record)
	}
	return valid, rowErrors, nil
}

// validateRow checks a single row and builds its normalized record.
// The first failed check wins; later fields are not examined.
func validateRow(row RawRow, ownerID string, now time.Time) (models.Transaction, error) {
	var record models.Transaction

	amountText := strings.TrimSpace(string(row.Amount))
	if amountText == "" {
		return record, errors.New("Amount is required")
	}
	amount, err := strconv.ParseFloat(amountText, 64)
	if err != nil || amount <= 0 {
		return record, errors.New("Amount must be a positive number")
	}

	typeText := strings.TrimSpace(string(row.Type))
	if typeText == "" {
		return record, errors.New("Type is required")
	}
	kind := models.TransactionType(typeText)
	if kind != models.TransactionTypeIncome && kind != models.TransactionTypeExpense {
		return record, errors.New("Type must be either 'Income' or 'Expense'")
	}

	category := strings.TrimSpace(string(row.Category))
	if category == "" {
		return record, errors.New("Category is required")
	}
	// Unknown categories are coerced to "Other", not rejected.
	category = models.NormalizeCategory(kind, category)

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	date := today
	if dateText := strings.TrimSpace(string(row.Date)); dateText != "" {
		if !dateFormat.MatchString(dateText) {
			return record, errors.New("Date must be in YYYY-MM-DD format")
		}
		parsed, err := time.Parse("2006-01-02", dateText)
		if err != nil {
			return record, errors.New("Date must be in YYYY-MM-DD format")
		}
		if parsed.After(today) {
			return record, errors.New("Date cannot be in the future")
		}
		date = parsed
	}

	record = models.Transaction{
		UserID:      ownerID,
		Type:        kind,
		Amount:      amount,
		Category:    category,
		Description: string(row.Description),
		Date:        date,
	}
	return record, nil
}

package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/importer"
	"fintrack/internal/services"
)

// --- mock import service ---

type mockImportService struct {
	importTransactionsFn func(userID string, rows []importer.RawRow, now time.Time) (*services.ImportSummary, error)
}

func (m *mockImportService) ImportTransactions(userID string, rows []importer.RawRow, now time.Time) (*services.ImportSummary, error) {
	if m.importTransactionsFn != nil {
		return m.importTransactionsFn(userID, rows, now)
	}
	return &services.ImportSummary{Imported: len(rows), Total: len(rows), BatchID: "batch-1"}, nil
}

var _ services.ImportServicer = (*mockImportService)(nil)

func setupImportRouter(handler *ImportHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectUserID(testUserID))
	auth.POST("/transactions/import", handler.ImportTransactions)
	return r
}

func TestImportHandler_ImportTransactions(t *testing.T) {
	t.Run("returns 201 with batch summary on success", func(t *testing.T) {
		handler := NewImportHandler(&mockImportService{})
		r := setupImportRouter(handler)

		rec := doRequest(r, "POST", "/transactions/import",
			`{"transactions":[{"amount":"100","type":"Expense","category":"Shopping","description":"","date":"2024-06-01"}]}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["imported"].(float64) != 1 {
			t.Errorf("expected 1 imported, got %v", result["imported"])
		}
		if result["batch_id"] != "batch-1" {
			t.Errorf("expected batch id batch-1, got %v", result["batch_id"])
		}
	})

	t.Run("accepts numeric spreadsheet cells", func(t *testing.T) {
		var captured []importer.RawRow
		svc := &mockImportService{
			importTransactionsFn: func(_ string, rows []importer.RawRow, _ time.Time) (*services.ImportSummary, error) {
				captured = rows
				return &services.ImportSummary{Imported: len(rows), Total: len(rows), BatchID: "batch-1"}, nil
			},
		}
		handler := NewImportHandler(svc)
		r := setupImportRouter(handler)

		rec := doRequest(r, "POST", "/transactions/import",
			`{"transactions":[{"amount":250,"type":"Income","category":"Salary","description":null,"date":"2024-06-01"}]}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if len(captured) != 1 || captured[0].Amount != "250" {
			t.Errorf("expected the numeric cell to decode to \"250\", got %+v", captured)
		}
	})

	t.Run("returns 422 with row errors when the batch is rejected", func(t *testing.T) {
		svc := &mockImportService{
			importTransactionsFn: func(_ string, rows []importer.RawRow, _ time.Time) (*services.ImportSummary, error) {
				return &services.ImportSummary{
					Imported: 0,
					Total:    len(rows),
					Errors:   []string{"Row 3: Amount must be a positive number"},
				}, nil
			},
		}
		handler := NewImportHandler(svc)
		r := setupImportRouter(handler)

		rec := doRequest(r, "POST", "/transactions/import",
			`{"transactions":[{"amount":"100","type":"Expense","category":"Shopping"},{"amount":"-50","type":"Expense","category":"Shopping"}]}`)

		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		assertErrorCode(t, result, "BATCH_REJECTED")
		errs := result["errors"].([]interface{})
		if len(errs) != 1 || errs[0] != "Row 3: Amount must be a positive number" {
			t.Errorf("unexpected errors payload: %v", errs)
		}
	})

	t.Run("returns 400 when the batch is too large", func(t *testing.T) {
		svc := &mockImportService{
			importTransactionsFn: func(string, []importer.RawRow, time.Time) (*services.ImportSummary, error) {
				return nil, apperrors.ErrBatchLimitExceeded
			},
		}
		handler := NewImportHandler(svc)
		r := setupImportRouter(handler)

		rec := doRequest(r, "POST", "/transactions/import",
			`{"transactions":[{"amount":"100","type":"Expense","category":"Shopping"}]}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "BATCH_LIMIT_EXCEEDED")
	})

	t.Run("returns 400 on empty batch", func(t *testing.T) {
		handler := NewImportHandler(&mockImportService{})
		r := setupImportRouter(handler)

		rec := doRequest(r, "POST", "/transactions/import", `{"transactions":[]}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on missing transactions field", func(t *testing.T) {
		handler := NewImportHandler(&mockImportService{})
		r := setupImportRouter(handler)

		rec := doRequest(r, "POST", "/transactions/import", `{}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

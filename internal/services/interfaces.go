package services

import (
	"context"
	"time"

	"fintrack/internal/importer"
	"fintrack/internal/metrics"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
}

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	FromDate *time.Time
	ToDate   *time.Time
	Type     *models.TransactionType
	Category *string
}

// TransactionUpdateFields holds optional fields for updating a transaction.
// Nil fields are left unchanged.
type TransactionUpdateFields struct {
	Type        *models.TransactionType
	Amount      *float64
	Category    *string
	Description *string
	Date        *time.Time
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	CreateTransaction(userID string, transactionType models.TransactionType, amount float64, category, description string, date time.Time, now time.Time) (*models.Transaction, error)
	GetUserTransactions(userID string, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	GetAllUserTransactions(userID string) ([]models.Transaction, error)
	GetTransactionByID(userID, transactionID string) (*models.Transaction, error)
	UpdateTransaction(userID, transactionID string, fields TransactionUpdateFields, now time.Time) (*models.Transaction, error)
	DeleteTransaction(userID, transactionID string) error
	BulkInsert(userID, batchID string, records []models.Transaction) (int, error)
}

// ImportSummary reports the outcome of a bulk import. Errors non-empty
// means the batch was rejected and nothing was inserted.
type ImportSummary struct {
	Imported int      `json:"imported"`
	Total    int      `json:"total"`
	BatchID  string   `json:"batch_id,omitempty"`
	Errors   []string `json:"errors,omitempty"`
}

// ImportServicer defines the contract for bulk transaction imports.
type ImportServicer interface {
	ImportTransactions(userID string, rows []importer.RawRow, now time.Time) (*ImportSummary, error)
}

// DashboardServicer defines the contract for dashboard metrics.
type DashboardServicer interface {
	GetDashboardMetrics(userID string, now time.Time) (*metrics.Summary, error)
}

// ReceiptExtraction is the best-effort transaction guess pulled from an
// uploaded receipt. It is returned to the client for confirmation, never
// persisted directly.
type ReceiptExtraction struct {
	Type        models.TransactionType `json:"type"`
	Amount      float64                `json:"amount"`
	Category    string                 `json:"category"`
	Description string                 `json:"description"`
	Date        string                 `json:"date"`
}

// ReceiptServicer defines the contract for AI-assisted receipt analysis.
type ReceiptServicer interface {
	AnalyzeReceipt(ctx context.Context, document []byte, mimeType string) (*ReceiptExtraction, error)
}

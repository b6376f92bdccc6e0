package services

import (
	"time"

	"fintrack/internal/importer"
	"fintrack/internal/logger"
	"fintrack/internal/uuid"
)

// importService coordinates bulk transaction imports. Validation is
// all-or-nothing: a batch with any invalid row is rejected whole and
// nothing reaches the database.
type importService struct {
	transactions TransactionServicer
}

// NewImportService creates a new ImportServicer.
func NewImportService(transactions TransactionServicer) ImportServicer {
	return &importService{transactions: transactions}
}

// ImportTransactions validates the batch and, when every row passes,
// persists it atomically under a fresh batch ID. A batch with row errors
// returns a summary listing them with Imported == 0; only oversized
// batches and storage failures surface as errors.
func (s *importService) ImportTransactions(userID string, rows []importer.RawRow, now time.Time) (*ImportSummary, error) {
	records, rowErrors, err := importer.ValidateBatch(rows, userID, now)
	if err != nil {
		return nil, err
	}

	if len(rowErrors) > 0 {
		logger.Get().Infow("import batch rejected",
			"user_id", userID,
			"total", len(rows),
			"invalid", len(rowErrors),
		)
		return &ImportSummary{
			Imported: 0,
			Total:    len(rows),
			Errors:   rowErrors,
		}, nil
	}

	batchID := uuid.New()
	inserted, err := s.transactions.BulkInsert(userID, batchID, records)
	if err != nil {
		return nil, err
	}

	logger.Get().Infow("import batch persisted",
		"user_id", userID,
		"batch_id", batchID,
		"count", inserted,
	)
	return &ImportSummary{
		Imported: inserted,
		Total:    len(rows),
		BatchID:  batchID,
	}, nil
}

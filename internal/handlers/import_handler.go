package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/importer"
	"fintrack/internal/services"
)

// ImportHandler handles bulk transaction imports.
type ImportHandler struct {
	importService services.ImportServicer
}

// NewImportHandler creates a new ImportHandler.
func NewImportHandler(importService services.ImportServicer) *ImportHandler {
	return &ImportHandler{importService: importService}
}

// ImportRequest represents the request payload for a bulk import. Rows come
// pre-parsed from a spreadsheet, so every cell arrives loosely typed.
type ImportRequest struct {
	Transactions []importer.RawRow `json:"transactions" binding:"required"`
}

// ImportResponse represents the outcome of a successful import.
type ImportResponse struct {
	Imported int    `json:"imported"`
	Total    int    `json:"total"`
	BatchID  string `json:"batch_id"`
}

// ImportTransactions handles a bulk transaction import
// @Summary     Import transactions
// @Description Import up to 50 transactions from a parsed spreadsheet. The batch is all-or-nothing: any invalid row rejects the whole batch.
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body ImportRequest true "Rows to import"
// @Success     201 {object} ImportResponse "Batch imported"
// @Failure     400 {object} ErrorResponse "Invalid input or batch too large"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     422 {object} ErrorResponse "Batch rejected due to invalid rows"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/import [post]
func (h *ImportHandler) ImportTransactions(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	if len(req.Transactions) == 0 {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "No transactions to import"))
		return
	}

	summary, err := h.importService.ImportTransactions(userID, req.Transactions, time.Now())
	if err != nil {
		respondWithError(c, err)
		return
	}

	if len(summary.Errors) > 0 {
		c.JSON(apperrors.ErrBatchRejected.StatusCode, gin.H{
			"error": gin.H{
				"code":    apperrors.ErrBatchRejected.Code,
				"message": apperrors.ErrBatchRejected.Message,
			},
			"errors": summary.Errors,
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"imported": summary.Imported,
		"total":    summary.Total,
		"batch_id": summary.BatchID,
	})
}

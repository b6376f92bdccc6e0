package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/services"
)

// maxReceiptSize caps uploaded receipt documents at 10 MB.
const maxReceiptSize = 10 << 20

var allowedReceiptTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"image/webp":      true,
	"application/pdf": true,
}

// ReceiptHandler handles AI-assisted receipt analysis requests.
type ReceiptHandler struct {
	receiptService services.ReceiptServicer
}

// NewReceiptHandler creates a new ReceiptHandler.
func NewReceiptHandler(receiptService services.ReceiptServicer) *ReceiptHandler {
	return &ReceiptHandler{receiptService: receiptService}
}

// AnalyzeReceipt extracts transaction details from an uploaded receipt
// @Summary     Analyze a receipt
// @Description Upload a receipt or invoice (JPEG, PNG, WebP, or PDF) and get back a suggested transaction for confirmation
// @Tags        transactions
// @Accept      multipart/form-data
// @Produce     json
// @Security    BearerAuth
// @Param       document formData file true "Receipt document"
// @Success     200 {object} services.ReceiptExtraction "Suggested transaction"
// @Failure     400 {object} ErrorResponse "Invalid upload"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     422 {object} ErrorResponse "Document could not be read"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/analyze-receipt [post]
func (h *ReceiptHandler) AnalyzeReceipt(c *gin.Context) {
	if _, err := getUserID(c); err != nil {
		respondWithError(c, err)
		return
	}

	fileHeader, err := c.FormFile("document")
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "A document file is required"))
		return
	}
	if fileHeader.Size > maxReceiptSize {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Document exceeds the 10MB size limit"))
		return
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	if !allowedReceiptTypes[mimeType] {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Document must be a JPEG, PNG, WebP, or PDF"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}
	defer file.Close()

	document, err := io.ReadAll(io.LimitReader(file, maxReceiptSize))
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	extraction, err := h.receiptService.AnalyzeReceipt(c.Request.Context(), document, mimeType)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": extraction})
}

package services

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"google.golang.org/genai"

	"fintrack/internal/config"
	apperrors "fintrack/internal/errors"
	"fintrack/internal/logger"
	"fintrack/internal/models"
)

var receiptDateFormat = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// receiptService extracts transaction details from uploaded receipts and
// invoices using a Gemini model. The extraction is a suggestion for the
// client to confirm; it is never persisted here.
type receiptService struct {
	model string
}

// NewReceiptService creates a new ReceiptServicer using the configured
// Gemini model. The API key is read from the environment by the client.
func NewReceiptService(cfg *config.Config) ReceiptServicer {
	return &receiptService{model: cfg.GeminiModel}
}

// modelExtraction mirrors the JSON object the prompt instructs the model
// to produce.
type modelExtraction struct {
	Type        string  `json:"type"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
}

// AnalyzeReceipt sends the document to Gemini and parses the structured
// extraction out of its response. A response that cannot be parsed or
// fails validation returns ErrReceiptUnreadable.
func (s *receiptService) AnalyzeReceipt(ctx context.Context, document []byte, mimeType string) (*ReceiptExtraction, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: receiptPrompt()},
				{
					InlineData: &genai.Blob{
						MIMEType: mimeType,
						Data:     document,
					},
				},
			},
		},
	}

	resp, err := client.Models.GenerateContent(ctx, s.model, contents, nil)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	rawText := resp.Text()
	if rawText == "" {
		return nil, apperrors.ErrReceiptUnreadable
	}

	var extraction modelExtraction
	if err := json.Unmarshal([]byte(cleanModelJSON(rawText)), &extraction); err != nil {
		logger.Get().Warnw("receipt extraction is not valid JSON",
			"error", err.Error(),
		)
		return nil, apperrors.ErrReceiptUnreadable
	}

	return normalizeExtraction(extraction)
}

// receiptPrompt builds the extraction instructions, including the category
// taxonomy the model must classify into.
func receiptPrompt() string {
	return "You are a receipt and invoice parser for a personal finance tracker.\n\n" +
		"Task:\n" +
		"- Extract a single transaction from the attached document.\n" +
		"- Output STRICT JSON only (no comments, no trailing commas, no extra text).\n" +
		"- Output a single JSON object.\n\n" +
		"The object must have these fields:\n" +
		"- \"type\": string, either \"Income\" or \"Expense\" (receipts and invoices billed to the user are \"Expense\")\n" +
		"- \"amount\": number, the total amount paid, greater than zero\n" +
		"- \"category\": string, one of the predefined categories below\n" +
		"- \"description\": string, a short merchant or purpose summary of at most " +
		fmt.Sprintf("%d", models.MaxDescriptionLength) + " characters\n" +
		"- \"date\": string, ISO format \"YYYY-MM-DD\", or \"\" if the document shows no date\n\n" +
		"Income categories: " + strings.Join(models.IncomeCategories, ", ") + "\n" +
		"Expense categories: " + strings.Join(models.ExpenseCategories, ", ") + "\n\n" +
		"Rules:\n" +
		"- Pick the closest matching category; use \"Other\" when nothing fits.\n" +
		"- Use the document's grand total, including tax.\n" +
		"Return ONLY valid raw JSON.\n" +
		"Do NOT wrap the response in code fences.\n" +
		"Do NOT use ```json or any Markdown.\n" +
		"Output must begin with \"{\" and end with \"}\".\n"
}

// cleanModelJSON strips Markdown code fences the model sometimes emits
// despite the prompt.
func cleanModelJSON(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		} else {
			return s
		}
		s = strings.TrimSpace(s)
	}
	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}

// normalizeExtraction validates the model output against the same rules a
// manually created transaction must satisfy.
func normalizeExtraction(raw modelExtraction) (*ReceiptExtraction, error) {
	kind := models.TransactionType(strings.TrimSpace(raw.Type))
	if kind != models.TransactionTypeIncome && kind != models.TransactionTypeExpense {
		return nil, apperrors.ErrReceiptUnreadable
	}
	if raw.Amount <= 0 {
		return nil, apperrors.ErrReceiptUnreadable
	}

	date := strings.TrimSpace(raw.Date)
	if date != "" && !receiptDateFormat.MatchString(date) {
		date = ""
	}

	description := strings.TrimSpace(raw.Description)
	if len(description) > models.MaxDescriptionLength {
		description = description[:models.MaxDescriptionLength]
	}

	return &ReceiptExtraction{
		Type:        kind,
		Amount:      raw.Amount,
		Category:    models.NormalizeCategory(kind, strings.TrimSpace(raw.Category)),
		Description: description,
		Date:        date,
	}, nil
}

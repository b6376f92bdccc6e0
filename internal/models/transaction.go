package models

import "time"

// TransactionType represents the type of transaction
type TransactionType string

// Wire values are capitalized; imported spreadsheets and the web client
// send "Income"/"Expense" verbatim.
const (
	TransactionTypeIncome  TransactionType = "Income"
	TransactionTypeExpense TransactionType = "Expense"
)

// MaxDescriptionLength caps the description on the manual entry path.
const MaxDescriptionLength = 50

// Transaction represents a single income or expense record. Amount is
// always positive; the sign is implied by Type. Date is the calendar day
// the transaction occurred, distinct from CreatedAt.
type Transaction struct {
	Base
	UserID      string          `gorm:"type:uuid;not null;index" json:"user_id"`
	Type        TransactionType `gorm:"not null" json:"type"`
	Amount      float64         `gorm:"not null" json:"amount"`
	Category    string          `gorm:"not null" json:"category"`
	Description string          `json:"description"`
	Date        time.Time       `gorm:"not null" json:"date"`

	// Set when the record was persisted by a bulk import; identifies the batch.
	ImportBatchID *string `gorm:"type:uuid" json:"import_batch_id,omitempty"`
}

package core

import (
	"strings"
	"time"
)

// DateLayout is the wire format for expense dates: a calendar date with
// no time component.
const DateLayout = "2006-01-02"

type (
	// NewExpense is a candidate record as submitted by a client. The
	// store assigns ID and CreatedAt on insert; clients never set them.
	NewExpense struct {
		Amount      float64 `json:"amount"`
		Category    string  `json:"category"`
		ExpenseDate string  `json:"expense_date"`
		Note        *string `json:"note"`
	}

	// Expense is a persisted record. Records are immutable once created;
	// the only mutations are full-record insert and whole-record delete.
	Expense struct {
		ID          int64
		Amount      float64
		Category    string
		ExpenseDate string
		Note        *string
		CreatedAt   time.Time
	}
)

// Validate succeeds only if the amount is strictly positive, the
// category is present and the expense date parses as YYYY-MM-DD.
// The note is optional and passes through unchanged, including absence.
func (e NewExpense) Validate() error {
	if e.Amount <= 0 {
		return &ValidationError{Field: "amount", Reason: "amount must be greater than zero"}
	}
	if strings.TrimSpace(e.Category) == "" {
		return &ValidationError{Field: "category", Reason: "category is required"}
	}
	if _, err := time.Parse(DateLayout, e.ExpenseDate); err != nil {
		return &ValidationError{Field: "expense_date", Reason: "expense_date must be a valid date in YYYY-MM-DD format"}
	}
	return nil
}

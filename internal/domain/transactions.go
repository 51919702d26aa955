package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Field widths of a ledger row. Loaders drop rows whose fields exceed them.
const (
	DateWidth        = 10
	MaxCategoryWidth = 29
	MaxTextWidth     = 49
)

// Transaction is one ledger row as supplied to the fraud engine.
// Dates are kept as text so malformed rows can still be analyzed.
type Transaction struct {
	Date        string  `json:"date"`
	Category    string  `json:"category"`
	Description string  `json:"text"`
	Amount      float64 `json:"amount"`

	// Owner is only set for rows coming from the shared ledger.
	Owner string `json:"owner,omitempty"`
}

// LedgerFilter selects which ledger to read and, for the shared ledger, whose rows.
type LedgerFilter struct {
	Source string `json:"source"`
	Owner  string `json:"owner,omitempty"`
}

// ErrInvalidTransaction is returned for a row that cannot be stored in a ledger file.
var ErrInvalidTransaction = errors.New("invalid transaction")

// Validate checks that every text field is non-empty, fits its width and
// holds no comma or line break.
func (t Transaction) Validate() error {
	if err := checkField("date", t.Date, DateWidth); err != nil {
		return err
	}
	if err := checkField("category", t.Category, MaxCategoryWidth); err != nil {
		return err
	}
	return checkField("text", t.Description, MaxTextWidth)
}

func checkField(name, value string, max int) error {
	if value == "" || len(value) > max {
		return fmt.Errorf("%s '%s' must be 1-%d characters: %w", name, value, max, ErrInvalidTransaction)
	}
	if strings.ContainsAny(value, ",\r\n") {
		return fmt.Errorf("%s '%s' must not contain commas or line breaks: %w", name, value, ErrInvalidTransaction)
	}
	return nil
}

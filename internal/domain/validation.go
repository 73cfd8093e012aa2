package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Validation errors
var (
	ErrInvalidDescription = errors.New("invalid description")
	ErrAmountTooLarge     = errors.New("amount exceeds maximum allowed")
	ErrTooManyLines       = errors.New("journal entry exceeds maximum line count")
	ErrInvalidIDFormat    = errors.New("invalid ID format")
)

// Validation constants
const (
	MaxDescriptionLength = 500
	MaxLineCount         = 200
	MaxLineAmount        = "1000000000000" // 1 trillion
	MaxIDLength          = 64
)

// ValidateDescription validates a free-text description.
func ValidateDescription(description string) error {
	if len(description) > MaxDescriptionLength {
		return fmt.Errorf("%w: exceeds %d characters", ErrInvalidDescription, MaxDescriptionLength)
	}

	return nil
}

// ValidateAmount checks an amount against the configured ceiling.
func ValidateAmount(amount decimal.Decimal) error {
	maxAmount, _ := decimal.NewFromString(MaxLineAmount)
	if amount.GreaterThan(maxAmount) {
		return fmt.Errorf("%w: %s > %s", ErrAmountTooLarge, amount.String(), MaxLineAmount)
	}

	return nil
}

// ValidateLineCount bounds the number of lines per entry.
func ValidateLineCount(n int) error {
	if n == 0 {
		return ErrNoLines
	}

	if n > MaxLineCount {
		return fmt.Errorf("%w: %d > %d", ErrTooManyLines, n, MaxLineCount)
	}

	return nil
}

// ValidateID validates an external identifier (company, branch,
// account, document). IDs are opaque references; only shape is checked.
func ValidateID(id string) error {
	id = strings.TrimSpace(id)

	if id == "" {
		return fmt.Errorf("%w: empty", ErrInvalidIDFormat)
	}

	if len(id) > MaxIDLength {
		return fmt.Errorf("%w: exceeds %d characters", ErrInvalidIDFormat, MaxIDLength)
	}

	return nil
}

package domain

import "errors"

var (
	// Journal entry errors
	ErrEntryNotFound        = errors.New("journal entry not found")
	ErrNoLines              = errors.New("journal entry requires at least one line")
	ErrAccountRequired      = errors.New("line account id is required")
	ErrNegativeAmount       = errors.New("line amounts must be non-negative")
	ErrTwoSidedLine         = errors.New("line cannot carry both debit and credit")
	ErrEmptyLine            = errors.New("line must carry a debit or a credit amount")
	ErrCompanyRequired      = errors.New("company id is required")
	ErrReferenceRequired    = errors.New("reference id is required")
	ErrInvalidReferenceType = errors.New("invalid reference type")

	// Posting errors
	ErrCashAccountRequired = errors.New("either vault or bank account id is required")
	ErrPostingInFlight     = errors.New("posting for this reference is already in progress")

	// Idempotency errors
	ErrIdempotencyKeyNotFound = errors.New("idempotency key not found")

	// Chart of accounts errors
	ErrUnknownAccountRole = errors.New("unknown account role")
)

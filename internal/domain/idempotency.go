package domain

import "time"

// IdempotencyStatus is the state of an idempotency record.
type IdempotencyStatus string

const (
	// IdempotencyPending marks a claimed key whose operation has not
	// finished yet.
	IdempotencyPending IdempotencyStatus = "pending"
	// IdempotencyCompleted marks a key whose result has been stored.
	IdempotencyCompleted IdempotencyStatus = "completed"
)

// IdempotencyRecord stores the outcome of the first execution of a
// keyed operation. Expired records are purged by a background sweep,
// not by the read path; a record past ExpiresAt but not yet swept is
// still served as a replay.
type IdempotencyRecord struct {
	CreatedAt    time.Time
	ExpiresAt    time.Time
	Key          string
	Status       IdempotencyStatus
	ResponseBody []byte
	StatusCode   int
}

// Completed reports whether the record holds a stored result.
func (r *IdempotencyRecord) Completed() bool {
	return r.Status == IdempotencyCompleted
}

package domain

import "errors"

var (
	// ErrQuotaExceeded is returned when a user already holds the maximum
	// number of reserved, unassigned tags
	ErrQuotaExceeded = errors.New("reservation quota exceeded")

	// ErrStorageConflict is returned when the underlying transaction could not
	// complete due to contention; the operation is safe to retry as a whole
	ErrStorageConflict = errors.New("transient storage conflict")
)

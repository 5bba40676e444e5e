package persistence

import "errors"

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("persistence: not found")
	// ErrDuplicate is returned when a unique constraint rejects the write.
	ErrDuplicate = errors.New("persistence: duplicate")
	// ErrForeignKeyViolation is returned when a write references a missing record.
	ErrForeignKeyViolation = errors.New("persistence: foreign key violation")
	// ErrConstraintViolation is returned when a check constraint rejects the write.
	ErrConstraintViolation = errors.New("persistence: constraint violation")
	// ErrBookingConflict is returned when approving a booking would overlap
	// an already committed reservation or class in the same room.
	ErrBookingConflict = errors.New("persistence: booking conflict")
)

package repository

import "errors"

var (
	// ErrNotFound is returned when a requested entity doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when a uniqueness constraint rejects a write
	ErrConflict = errors.New("conflict: entity already exists")

	// ErrForeignKeyViolation is returned when a foreign key constraint fails
	ErrForeignKeyViolation = errors.New("foreign key violation")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrCapacityExhausted is returned when a conditional seat claim matches no row
	ErrCapacityExhausted = errors.New("capacity exhausted")

	// ErrNotOpen is returned when an activity no longer accepts registrations
	ErrNotOpen = errors.New("activity not open")
)

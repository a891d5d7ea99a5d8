package registration

import "errors"

var (
	// ErrActivityNotFound indicates the activity doesn't exist.
	ErrActivityNotFound = errors.New("activity not found")
	// ErrActivityFull indicates every seat is taken.
	ErrActivityFull = errors.New("activity is full")
	// ErrActivityClosed indicates the activity was cancelled or completed.
	ErrActivityClosed = errors.New("activity no longer accepts registrations")
	// ErrAlreadyRegistered indicates the user already holds an active seat.
	ErrAlreadyRegistered = errors.New("already registered for this activity")
	// ErrRegistrationNotFound indicates no active registration exists.
	ErrRegistrationNotFound = errors.New("registration not found")
	// ErrAlreadyPaid indicates the registration fee was already paid.
	ErrAlreadyPaid = errors.New("registration already paid")
	// ErrNotOwner indicates the registration belongs to another user.
	ErrNotOwner = errors.New("registration belongs to another user")
	// ErrInvalidInput indicates invalid input for registration operations.
	ErrInvalidInput = errors.New("invalid registration input")
)

package venue

import "errors"

var (
	// ErrVenueNotFound indicates the venue doesn't exist.
	ErrVenueNotFound = errors.New("venue not found")
	// ErrClubNotFound indicates the club doesn't exist.
	ErrClubNotFound = errors.New("club not found")
	// ErrInvalidInput indicates invalid input for venue operations.
	ErrInvalidInput = errors.New("invalid venue input")
)

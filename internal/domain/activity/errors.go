package activity

import "errors"

var (
	// ErrActivityNotFound indicates the activity doesn't exist.
	ErrActivityNotFound = errors.New("activity not found")
	// ErrInvalidInput indicates invalid input for activity operations.
	ErrInvalidInput = errors.New("invalid activity input")
	// ErrInvalidTimeWindow indicates the end time is not after the start time.
	ErrInvalidTimeWindow = errors.New("activity must end after it starts")
	// ErrInvalidCapacity indicates a capacity below one or below current occupancy.
	ErrInvalidCapacity = errors.New("invalid activity capacity")
	// ErrInvalidTransition indicates an invalid status transition.
	ErrInvalidTransition = errors.New("invalid activity status transition")
	// ErrNotCreator indicates the actor does not own the activity.
	ErrNotCreator = errors.New("only the creator can modify this activity")
)

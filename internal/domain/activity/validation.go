package activity

import "strings"

// ValidateCreateInput validates fields required to create an activity.
func ValidateCreateInput(req CreateRequest) error {
	if strings.TrimSpace(req.CreatorID) == "" {
		return ErrInvalidInput
	}
	if req.StartTime.IsZero() || req.EndTime.IsZero() {
		return ErrInvalidInput
	}
	if !req.EndTime.After(req.StartTime) {
		return ErrInvalidTimeWindow
	}
	if req.MaxParticipants < 1 {
		return ErrInvalidCapacity
	}
	if req.Fee < 0 {
		return ErrInvalidInput
	}
	if (req.Latitude == nil) != (req.Longitude == nil) {
		return ErrInvalidInput
	}
	return nil
}

// ValidateTransition validates a requested status transition. FULL is only
// entered and left by seat bookkeeping, never by request.
func ValidateTransition(from, to Status) error {
	switch from {
	case StatusOpen, StatusFull:
		if to == StatusCancelled || to == StatusCompleted {
			return nil
		}
	}
	return ErrInvalidTransition
}

// statusForOccupancy returns the bookkeeping status for a seat count.
func statusForOccupancy(current, max int, status Status) Status {
	if status.Terminal() {
		return status
	}
	if current >= max {
		return StatusFull
	}
	return StatusOpen
}

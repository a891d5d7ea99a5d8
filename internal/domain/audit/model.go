package audit

import "time"

// Kind represents the type of bookkeeping event
type Kind string

const (
	KindActivityCreated       Kind = "activity_created"
	KindActivityUpdated       Kind = "activity_updated"
	KindActivityCancelled     Kind = "activity_cancelled"
	KindActivityCompleted     Kind = "activity_completed"
	KindActivityDeleted       Kind = "activity_deleted"
	KindRegistrationConfirmed Kind = "registration_confirmed"
	KindRegistrationCancelled Kind = "registration_cancelled"
	KindRegistrationPaid      Kind = "registration_paid"
)

// Entry represents an event in the audit log
type Entry struct {
	ID         int64     `json:"id"`
	ActivityID string    `json:"activity_id"`
	UserID     string    `json:"user_id,omitempty"`
	Kind       Kind      `json:"kind"`
	Summary    string    `json:"summary"`
	Details    string    `json:"details,omitempty"` // JSON string
	CreatedAt  time.Time `json:"created_at"`
}

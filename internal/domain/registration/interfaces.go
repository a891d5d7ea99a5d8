package registration

import (
	"context"
	"time"

	"github.com/qiuyou/courtside/internal/domain/audit"
	"github.com/qiuyou/courtside/internal/domain/user"
)

// Repository provides persistence operations for registrations.
//
// Register and Cancel each run as one transaction that also maintains the
// activity's participant counter and OPEN/FULL status.
type Repository interface {
	Register(ctx context.Context, reg *Registration) error
	Cancel(ctx context.Context, activityID, userID string, at time.Time) (*Registration, error)
	Get(ctx context.Context, id string) (*Registration, error)
	GetActive(ctx context.Context, activityID, userID string) (*Registration, error)
	ListForUser(ctx context.Context, userID string) ([]Registration, error)
	Participants(ctx context.Context, activityID string) ([]user.User, error)
	UpdatePayment(ctx context.Context, id string, method PaymentMethod, status PaymentStatus) error
	ActivityFee(ctx context.Context, activityID string) (float64, error)
}

// PaymentGateway charges registration fees.
type PaymentGateway interface {
	CreatePayment(ctx context.Context, registrationID, method string, amount float64) (string, error)
}

// AuditRecorder records bookkeeping events.
type AuditRecorder interface {
	Record(ctx context.Context, entry *audit.Entry) error
}

// EventPublisher fans registration events out to other services.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}

// Metrics counts registration outcomes.
type Metrics interface {
	RegistrationAttempt(outcome string)
	RegistrationCancelled()
}

package activity

import (
	"context"
	"time"

	"github.com/qiuyou/courtside/internal/domain/audit"
)

// Repository provides persistence operations for activities.
type Repository interface {
	Create(ctx context.Context, act *Activity, creatorSeatID string) error
	Get(ctx context.Context, id string) (*Activity, error)
	Update(ctx context.Context, act *Activity) error
	UpdateStatus(ctx context.Context, id string, status Status) error
	Delete(ctx context.Context, id string) error
	ListOpen(ctx context.Context, opts ListOptions) ([]Activity, error)
	StartTimes(ctx context.Context, opts ListOptions) ([]time.Time, error)
	ListByCreator(ctx context.Context, creatorID string, typ *Type) ([]Activity, error)
	ListRegistered(ctx context.Context, userID string) ([]Activity, error)
}

// AuditRecorder records lifecycle events.
type AuditRecorder interface {
	Record(ctx context.Context, entry *audit.Entry) error
}

// EventPublisher fans lifecycle events out to other services.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}

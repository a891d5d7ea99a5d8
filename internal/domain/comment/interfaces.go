package comment

import (
	"context"

	"github.com/qiuyou/courtside/internal/domain/user"
)

// Repository provides persistence operations for comments.
type Repository interface {
	Create(ctx context.Context, c *Comment) error
	Get(ctx context.Context, id string) (*Comment, error)
	Delete(ctx context.Context, id string) error
	ListByActivity(ctx context.Context, activityID string) ([]Comment, error)
}

// RatingRepository provides persistence operations for ratings.
type RatingRepository interface {
	Upsert(ctx context.Context, r *Rating) error
	Get(ctx context.Context, activityID, userID string) (*Rating, error)
	Summary(ctx context.Context, activityID string) (RatingSummary, error)
}

// Authors resolves the display profile of a comment author.
type Authors interface {
	Get(ctx context.Context, id string) (*user.User, error)
}

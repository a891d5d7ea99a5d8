package comment

import "time"

// Comment is a remark left on an activity.
type Comment struct {
	ID         string    `json:"id"`
	ActivityID string    `json:"activity_id"`
	UserID     string    `json:"user_id"`
	UserName   string    `json:"user_name"`
	UserAvatar string    `json:"user_avatar,omitempty"`
	Content    string    `json:"content"`
	Rating     *int      `json:"rating,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Rating is one user's score for an activity.
type Rating struct {
	ID         string    `json:"id"`
	ActivityID string    `json:"activity_id"`
	UserID     string    `json:"user_id"`
	Score      int       `json:"score"`
	Comment    string    `json:"comment,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// RatingSummary aggregates the ratings of an activity.
type RatingSummary struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

const (
	MinScore         = 1
	MaxScore         = 5
	MaxContentLength = 500
)

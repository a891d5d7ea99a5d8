package mcp

import (
	"time"

	"github.com/qiuyou/courtside/internal/domain/activity"
	"github.com/qiuyou/courtside/internal/domain/registration"
)

type CreateActivityParams struct {
	Type                string   `json:"type,omitempty"`
	Title               string   `json:"title,omitempty"`
	ClubID              *string  `json:"club_id,omitempty"`
	Location            string   `json:"location,omitempty"`
	StartTime           string   `json:"start_time"`
	EndTime             string   `json:"end_time"`
	MaxParticipants     int      `json:"max_participants"`
	Fee                 float64  `json:"fee,omitempty"`
	SkillLevel          string   `json:"skill_level,omitempty"`
	Category            string   `json:"category,omitempty"`
	Description         string   `json:"description,omitempty"`
	CreatorParticipates *bool    `json:"creator_participates,omitempty"`
	Images              []string `json:"images,omitempty"`
}

type ActivityIDParams struct {
	ID string `json:"id"`
}

type ListActivitiesParams struct {
	Type string `json:"type,omitempty"`
	// Date is a calendar day, YYYY-MM-DD.
	Date string `json:"date,omitempty"`
}

type CountActivitiesParams struct {
	Type string `json:"type,omitempty"`
	From string `json:"from,omitempty"`
	Days int    `json:"days,omitempty"`
}

type ListMyActivitiesParams struct {
	Type string `json:"type,omitempty"`
}

type RegistrationParams struct {
	ActivityID string `json:"activity_id"`
}

type PayRegistrationParams struct {
	RegistrationID string `json:"registration_id"`
	PaymentMethod  string `json:"payment_method"`
}

type PostCommentParams struct {
	ActivityID string `json:"activity_id"`
	Content    string `json:"content"`
	Rating     *int   `json:"rating,omitempty"`
}

type RateActivityParams struct {
	ActivityID string `json:"activity_id"`
	Score      int    `json:"score"`
	Comment    string `json:"comment,omitempty"`
}

type ListVenuesParams struct {
	City string `json:"city,omitempty"`
}

type RecentAuditParams struct {
	ActivityID string `json:"activity_id,omitempty"`
	Limit      int    `json:"limit,omitempty"`
}

// ActivitySummary is the compact listing view of an activity.
type ActivitySummary struct {
	ID                  string          `json:"id"`
	Type                activity.Type   `json:"type"`
	Title               string          `json:"title"`
	Location            string          `json:"location,omitempty"`
	StartTime           time.Time       `json:"start_time"`
	EndTime             time.Time       `json:"end_time"`
	MaxParticipants     int             `json:"max_participants"`
	CurrentParticipants int             `json:"current_participants"`
	SeatsLeft           int             `json:"seats_left"`
	Fee                 float64         `json:"fee"`
	Status              activity.Status `json:"status"`
}

// RegistrationResult reports a registration with the activity's follow-up payment.
type RegistrationResult struct {
	registration.Registration
	PaymentRequired bool    `json:"payment_required"`
	PaymentAmount   float64 `json:"payment_amount,omitempty"`
}

// StatusResult acknowledges an operation without a payload.
type StatusResult struct {
	Status string `json:"status"`
}

func summarize(acts []activity.Activity) []ActivitySummary {
	out := make([]ActivitySummary, 0, len(acts))
	for _, a := range acts {
		out = append(out, ActivitySummary{
			ID:                  a.ID,
			Type:                a.Type,
			Title:               a.Title,
			Location:            a.Location,
			StartTime:           a.StartTime,
			EndTime:             a.EndTime,
			MaxParticipants:     a.MaxParticipants,
			CurrentParticipants: a.CurrentParticipants,
			SeatsLeft:           a.SeatsLeft(),
			Fee:                 a.Fee,
			Status:              a.Status,
		})
	}
	return out
}

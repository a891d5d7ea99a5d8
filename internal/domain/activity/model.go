package activity

import (
	"strings"
	"time"
)

// Type distinguishes pickup play, coached courses and tournaments.
type Type string

const (
	TypePlay       Type = "PLAY"
	TypeCourse     Type = "COURSE"
	TypeTournament Type = "TOURNAMENT"
)

// ParseType maps a loose type label to a Type. "EVENT" is accepted as an alias
// for tournaments and anything unrecognised falls back to PLAY.
func ParseType(s string) Type {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "COURSE":
		return TypeCourse
	case "TOURNAMENT", "EVENT":
		return TypeTournament
	default:
		return TypePlay
	}
}

// Label returns the display name used in generated titles.
func (t Type) Label() string {
	switch t {
	case TypeCourse:
		return "课程"
	case TypeTournament:
		return "赛事"
	default:
		return "约球"
	}
}

// Status is the lifecycle state of an activity.
type Status string

const (
	StatusOpen      Status = "OPEN"
	StatusFull      Status = "FULL"
	StatusCancelled Status = "CANCELLED"
	StatusCompleted Status = "COMPLETED"
)

// Terminal reports whether no further transitions are allowed.
func (s Status) Terminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

// Activity is a schedulable tennis event with a fixed number of seats.
type Activity struct {
	ID                  string    `json:"id"`
	Type                Type      `json:"type"`
	Title               string    `json:"title"`
	CreatorID           string    `json:"creator_id"`
	ClubID              *string   `json:"club_id,omitempty"`
	Location            string    `json:"location,omitempty"`
	Latitude            *float64  `json:"latitude,omitempty"`
	Longitude           *float64  `json:"longitude,omitempty"`
	StartTime           time.Time `json:"start_time"`
	EndTime             time.Time `json:"end_time"`
	DurationMinutes     int       `json:"duration_minutes"`
	MaxParticipants     int       `json:"max_participants"`
	CurrentParticipants int       `json:"current_participants"`
	Fee                 float64   `json:"fee"`
	SkillLevel          string    `json:"skill_level,omitempty"`
	Category            string    `json:"category,omitempty"`
	Description         string    `json:"description,omitempty"`
	Images              []string  `json:"images,omitempty"`
	CreatorParticipates bool      `json:"creator_participates"`
	Status              Status    `json:"status"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// SeatsLeft returns the number of unclaimed seats.
func (a *Activity) SeatsLeft() int {
	left := a.MaxParticipants - a.CurrentParticipants
	if left < 0 {
		return 0
	}
	return left
}

// DayCount is the number of listable activities on one calendar day.
type DayCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

package activity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/qiuyou/courtside/internal/domain/audit"
	"github.com/qiuyou/courtside/internal/repository"
)

// Service handles activity lifecycle and queries.
type Service struct {
	repo   Repository
	audit  AuditRecorder
	events EventPublisher
	loc    *time.Location
	now    func() time.Time
	logger *slog.Logger
}

// NewService creates a new activity service. Calendar days are resolved in loc.
func NewService(repo Repository, recorder AuditRecorder, events EventPublisher, loc *time.Location, logger *slog.Logger) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{
		repo:   repo,
		audit:  recorder,
		events: events,
		loc:    loc,
		now:    time.Now,
		logger: logger,
	}
}

// WithClock replaces the time source used to hide past activities.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Location returns the location calendar days are resolved in.
func (s *Service) Location() *time.Location {
	return s.loc
}

// CreateRequest defines activity creation inputs.
type CreateRequest struct {
	CreatorID       string
	Type            Type
	Title           string
	ClubID          *string
	Location        string
	Latitude        *float64
	Longitude       *float64
	StartTime       time.Time
	EndTime         time.Time
	MaxParticipants int
	Fee             float64
	SkillLevel      string
	Category        string
	Description     string
	Images          []string
	// CreatorParticipates defaults to true when nil.
	CreatorParticipates *bool
}

// UpdateRequest defines editable activity fields. Nil fields are left unchanged.
type UpdateRequest struct {
	ID              string
	ActorID         string
	Title           *string
	Location        *string
	StartTime       *time.Time
	EndTime         *time.Time
	MaxParticipants *int
	Fee             *float64
	SkillLevel      *string
	Category        *string
	Description     *string
	Images          []string
}

// Create publishes a new activity. When the creator participates, their
// confirmed seat is stored together with the activity.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Activity, error) {
	if err := ValidateCreateInput(req); err != nil {
		return nil, err
	}

	participates := true
	if req.CreatorParticipates != nil {
		participates = *req.CreatorParticipates
	}

	typ := req.Type
	if typ == "" {
		typ = TypePlay
	}

	start := req.StartTime.UTC().Truncate(time.Second)
	end := req.EndTime.UTC().Truncate(time.Second)

	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = GenerateTitle(start.In(s.loc), req.Location, typ)
	}

	now := s.now()
	act := &Activity{
		ID:                  uuid.NewString(),
		Type:                typ,
		Title:               title,
		CreatorID:           req.CreatorID,
		ClubID:              req.ClubID,
		Location:            strings.TrimSpace(req.Location),
		Latitude:            req.Latitude,
		Longitude:           req.Longitude,
		StartTime:           start,
		EndTime:             end,
		DurationMinutes:     int(end.Sub(start) / time.Minute),
		MaxParticipants:     req.MaxParticipants,
		Fee:                 req.Fee,
		SkillLevel:          strings.TrimSpace(req.SkillLevel),
		Category:            strings.TrimSpace(req.Category),
		Description:         req.Description,
		Images:              req.Images,
		CreatorParticipates: participates,
		Status:              StatusOpen,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	var seatID string
	if participates {
		seatID = uuid.NewString()
		act.CurrentParticipants = 1
		act.Status = statusForOccupancy(1, act.MaxParticipants, StatusOpen)
	}

	if err := s.repo.Create(ctx, act, seatID); err != nil {
		if errors.Is(err, repository.ErrForeignKeyViolation) {
			return nil, ErrInvalidInput
		}
		return nil, fmt.Errorf("creating activity: %w", err)
	}

	s.record(ctx, act, req.CreatorID, audit.KindActivityCreated, "activity created")
	s.publish(ctx, "activity.created", act)

	return act, nil
}

// Get fetches an activity by ID.
func (s *Service) Get(ctx context.Context, id string) (*Activity, error) {
	act, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrActivityNotFound
		}
		return nil, fmt.Errorf("getting activity: %w", err)
	}
	return act, nil
}

// Update edits an activity owned by the actor.
func (s *Service) Update(ctx context.Context, req UpdateRequest) (*Activity, error) {
	act, err := s.owned(ctx, req.ID, req.ActorID)
	if err != nil {
		return nil, err
	}
	if act.Status.Terminal() {
		return nil, ErrInvalidTransition
	}

	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, ErrInvalidInput
		}
		act.Title = strings.TrimSpace(*req.Title)
	}
	if req.Location != nil {
		act.Location = strings.TrimSpace(*req.Location)
	}
	if req.StartTime != nil {
		act.StartTime = req.StartTime.UTC().Truncate(time.Second)
	}
	if req.EndTime != nil {
		act.EndTime = req.EndTime.UTC().Truncate(time.Second)
	}
	if !act.EndTime.After(act.StartTime) {
		return nil, ErrInvalidTimeWindow
	}
	act.DurationMinutes = int(act.EndTime.Sub(act.StartTime) / time.Minute)
	if req.MaxParticipants != nil {
		if *req.MaxParticipants < 1 || *req.MaxParticipants < act.CurrentParticipants {
			return nil, ErrInvalidCapacity
		}
		act.MaxParticipants = *req.MaxParticipants
	}
	if req.Fee != nil {
		if *req.Fee < 0 {
			return nil, ErrInvalidInput
		}
		act.Fee = *req.Fee
	}
	if req.SkillLevel != nil {
		act.SkillLevel = strings.TrimSpace(*req.SkillLevel)
	}
	if req.Category != nil {
		act.Category = strings.TrimSpace(*req.Category)
	}
	if req.Description != nil {
		act.Description = *req.Description
	}
	if req.Images != nil {
		act.Images = req.Images
	}
	act.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, act); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrActivityNotFound
		case errors.Is(err, repository.ErrCapacityExhausted):
			return nil, ErrInvalidCapacity
		}
		return nil, fmt.Errorf("updating activity: %w", err)
	}

	s.record(ctx, act, req.ActorID, audit.KindActivityUpdated, "activity updated")
	return s.Get(ctx, act.ID)
}

// Cancel marks an open or full activity as cancelled.
func (s *Service) Cancel(ctx context.Context, id, actorID string) (*Activity, error) {
	return s.transition(ctx, id, actorID, StatusCancelled, audit.KindActivityCancelled, "activity.cancelled")
}

// Complete marks an open or full activity as completed.
func (s *Service) Complete(ctx context.Context, id, actorID string) (*Activity, error) {
	return s.transition(ctx, id, actorID, StatusCompleted, audit.KindActivityCompleted, "activity.completed")
}

func (s *Service) transition(ctx context.Context, id, actorID string, to Status, kind audit.Kind, routingKey string) (*Activity, error) {
	act, err := s.owned(ctx, id, actorID)
	if err != nil {
		return nil, err
	}
	if err := ValidateTransition(act.Status, to); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateStatus(ctx, id, to); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrActivityNotFound
		}
		return nil, fmt.Errorf("transitioning activity: %w", err)
	}
	act.Status = to
	act.UpdatedAt = s.now()

	s.record(ctx, act, actorID, kind, fmt.Sprintf("status -> %s", to))
	s.publish(ctx, routingKey, act)
	return act, nil
}

// Delete removes an activity together with its registrations, comments and ratings.
func (s *Service) Delete(ctx context.Context, id, actorID string) error {
	act, err := s.owned(ctx, id, actorID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrActivityNotFound
		}
		return fmt.Errorf("deleting activity: %w", err)
	}
	s.record(ctx, act, actorID, audit.KindActivityDeleted, "activity deleted")
	s.publish(ctx, "activity.deleted", act)
	return nil
}

// ListByType returns open, upcoming activities of a type ordered by start time.
// With a date only activities starting within that day's 24 hours are returned.
func (s *Service) ListByType(ctx context.Context, q Query) ([]Activity, error) {
	typ := q.Type
	if typ == "" {
		typ = TypePlay
	}
	now := s.now()
	opts := ListOptions{Type: typ, From: now}
	if q.Date != nil {
		dayStart := StartOfDay(*q.Date, s.loc)
		until := dayStart.Add(24 * time.Hour)
		if dayStart.After(now) {
			opts.From = dayStart
		}
		opts.Until = &until
	}

	acts, err := s.repo.ListOpen(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("listing activities: %w", err)
	}
	return acts, nil
}

// CountByDate counts listable activities for each of days calendar days starting at from.
func (s *Service) CountByDate(ctx context.Context, typ Type, from time.Time, days int) ([]DayCount, error) {
	if days < 1 || days > 31 {
		return nil, ErrInvalidInput
	}
	if typ == "" {
		typ = TypePlay
	}

	first := StartOfDay(from, s.loc)
	until := first.Add(time.Duration(days) * 24 * time.Hour)
	opts := ListOptions{Type: typ, From: first, Until: &until}
	if now := s.now(); now.After(first) {
		opts.From = now
	}

	starts, err := s.repo.StartTimes(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("counting activities: %w", err)
	}

	counts := make(map[string]int, days)
	for _, st := range starts {
		counts[st.In(s.loc).Format(DateLayout)]++
	}

	out := make([]DayCount, 0, days)
	for i := 0; i < days; i++ {
		day := first.Add(time.Duration(i) * 24 * time.Hour).Format(DateLayout)
		out = append(out, DayCount{Date: day, Count: counts[day]})
	}
	return out, nil
}

// ListByCreator returns a creator's activities, newest start first.
func (s *Service) ListByCreator(ctx context.Context, creatorID string, typ *Type) ([]Activity, error) {
	if strings.TrimSpace(creatorID) == "" {
		return nil, ErrInvalidInput
	}
	acts, err := s.repo.ListByCreator(ctx, creatorID, typ)
	if err != nil {
		return nil, fmt.Errorf("listing created activities: %w", err)
	}
	return acts, nil
}

// ListRegistered returns activities the user holds an active seat in.
func (s *Service) ListRegistered(ctx context.Context, userID string) ([]Activity, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrInvalidInput
	}
	acts, err := s.repo.ListRegistered(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing registered activities: %w", err)
	}
	return acts, nil
}

func (s *Service) owned(ctx context.Context, id, actorID string) (*Activity, error) {
	act, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if act.CreatorID != actorID {
		return nil, ErrNotCreator
	}
	return act, nil
}

func (s *Service) record(ctx context.Context, act *Activity, userID string, kind audit.Kind, summary string) {
	if s.audit == nil {
		return
	}
	err := s.audit.Record(ctx, &audit.Entry{
		ActivityID: act.ID,
		UserID:     userID,
		Kind:       kind,
		Summary:    summary,
		CreatedAt:  s.now(),
	})
	if err != nil && s.logger != nil {
		s.logger.Warn("recording activity audit entry failed", "activity_id", act.ID, "kind", kind, "error", err)
	}
}

func (s *Service) publish(ctx context.Context, routingKey string, act *Activity) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, routingKey, act); err != nil && s.logger != nil {
		s.logger.Warn("publishing activity event failed", "routing_key", routingKey, "activity_id", act.ID, "error", err)
	}
}

package activity_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/qiuyou/courtside/internal/domain/activity"
	"github.com/qiuyou/courtside/internal/domain/audit"
	"github.com/qiuyou/courtside/internal/repository"
	"github.com/qiuyou/courtside/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var shanghai = time.FixedZone("CST", 8*3600)

func fixedClock() time.Time {
	return time.Date(2026, 3, 14, 9, 0, 0, 0, shanghai)
}

func newService(repo *mocks.ActivityRepository, auditRepo *mocks.AuditRepository, events *mocks.EventPublisher) *activity.Service {
	var a activity.AuditRecorder
	if auditRepo != nil {
		a = audit.NewService(auditRepo, nil)
	}
	var e activity.EventPublisher
	if events != nil {
		e = events
	}
	return activity.NewService(repo, a, e, shanghai, nil).WithClock(fixedClock)
}

func TestActivityService_CreateWithCreatorSeat(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ActivityRepository{}
	auditRepo := &mocks.AuditRepository{}
	events := &mocks.EventPublisher{}

	start := time.Date(2026, 3, 14, 19, 0, 0, 0, shanghai)
	repo.On("Create", ctx, mock.MatchedBy(func(a *activity.Activity) bool {
		return a.CurrentParticipants == 1 && a.Status == activity.StatusOpen && a.CreatorParticipates
	}), mock.MatchedBy(func(seat string) bool { return seat != "" })).Return(nil)
	auditRepo.On("Log", ctx, mock.MatchedBy(func(e *audit.Entry) bool {
		return e.Kind == audit.KindActivityCreated && e.UserID == "u1"
	})).Return(nil)
	events.On("Publish", ctx, "activity.created", mock.Anything).Return(nil)

	svc := newService(repo, auditRepo, events)
	act, err := svc.Create(ctx, activity.CreateRequest{
		CreatorID:       "u1",
		Type:            activity.TypePlay,
		Location:        "朝阳公园",
		StartTime:       start,
		EndTime:         start.Add(90 * time.Minute),
		MaxParticipants: 4,
	})
	require.NoError(t, err)
	require.NotEmpty(t, act.ID)
	require.Equal(t, "周六晚上 - 朝阳公园 - 约球", act.Title)
	require.Equal(t, 90, act.DurationMinutes)
	require.Equal(t, 3, act.SeatsLeft())

	repo.AssertExpectations(t)
	auditRepo.AssertExpectations(t)
	events.AssertExpectations(t)
}

func TestActivityService_CreateSingleSeatIsFull(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ActivityRepository{}
	repo.On("Create", ctx, mock.Anything, mock.Anything).Return(nil)

	start := fixedClock().Add(24 * time.Hour)
	act, err := newService(repo, nil, nil).Create(ctx, activity.CreateRequest{
		CreatorID:       "u1",
		Title:           "Singles practice",
		StartTime:       start,
		EndTime:         start.Add(time.Hour),
		MaxParticipants: 1,
	})
	require.NoError(t, err)
	require.Equal(t, activity.StatusFull, act.Status)
	require.Equal(t, "Singles practice", act.Title)
}

func TestActivityService_CreateWithoutCreatorSeat(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ActivityRepository{}
	repo.On("Create", ctx, mock.Anything, "").Return(nil)

	start := fixedClock().Add(24 * time.Hour)
	no := false
	act, err := newService(repo, nil, nil).Create(ctx, activity.CreateRequest{
		CreatorID:           "coach",
		Type:                activity.TypeCourse,
		StartTime:           start,
		EndTime:             start.Add(time.Hour),
		MaxParticipants:     6,
		Fee:                 120,
		CreatorParticipates: &no,
	})
	require.NoError(t, err)
	require.Equal(t, 0, act.CurrentParticipants)
	require.Equal(t, activity.StatusOpen, act.Status)
	repo.AssertExpectations(t)
}

func TestActivityService_CreateValidation(t *testing.T) {
	svc := newService(&mocks.ActivityRepository{}, nil, nil)
	start := fixedClock().Add(time.Hour)
	lat := 30.0

	tests := []struct {
		name string
		req  activity.CreateRequest
		err  error
	}{
		{"missing creator", activity.CreateRequest{StartTime: start, EndTime: start.Add(time.Hour), MaxParticipants: 2}, activity.ErrInvalidInput},
		{"end before start", activity.CreateRequest{CreatorID: "u1", StartTime: start, EndTime: start, MaxParticipants: 2}, activity.ErrInvalidTimeWindow},
		{"zero capacity", activity.CreateRequest{CreatorID: "u1", StartTime: start, EndTime: start.Add(time.Hour)}, activity.ErrInvalidCapacity},
		{"negative fee", activity.CreateRequest{CreatorID: "u1", StartTime: start, EndTime: start.Add(time.Hour), MaxParticipants: 2, Fee: -1}, activity.ErrInvalidInput},
		{"half coordinates", activity.CreateRequest{CreatorID: "u1", StartTime: start, EndTime: start.Add(time.Hour), MaxParticipants: 2, Latitude: &lat}, activity.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.req)
			require.ErrorIs(t, err, tt.err)
		})
	}
}

func TestActivityService_CreateUnknownCreator(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ActivityRepository{}
	repo.On("Create", ctx, mock.Anything, mock.Anything).Return(repository.ErrForeignKeyViolation)

	start := fixedClock().Add(time.Hour)
	_, err := newService(repo, nil, nil).Create(ctx, activity.CreateRequest{
		CreatorID: "ghost", StartTime: start, EndTime: start.Add(time.Hour), MaxParticipants: 2,
	})
	require.ErrorIs(t, err, activity.ErrInvalidInput)
}

func TestActivityService_PublishFailureIsNotFatal(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ActivityRepository{}
	events := &mocks.EventPublisher{}
	repo.On("Create", ctx, mock.Anything, mock.Anything).Return(nil)
	events.On("Publish", ctx, "activity.created", mock.Anything).Return(errors.New("broker down"))

	start := fixedClock().Add(time.Hour)
	_, err := newService(repo, nil, events).Create(ctx, activity.CreateRequest{
		CreatorID: "u1", StartTime: start, EndTime: start.Add(time.Hour), MaxParticipants: 2,
	})
	require.NoError(t, err)
	events.AssertExpectations(t)
}

func TestActivityService_GetNotFound(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ActivityRepository{}
	repo.On("Get", ctx, "missing").Return(nil, repository.ErrNotFound)

	_, err := newService(repo, nil, nil).Get(ctx, "missing")
	require.ErrorIs(t, err, activity.ErrActivityNotFound)
}

func TestActivityService_CancelTransitions(t *testing.T) {
	ctx := context.Background()

	t.Run("open to cancelled", func(t *testing.T) {
		repo := &mocks.ActivityRepository{}
		events := &mocks.EventPublisher{}
		repo.On("Get", ctx, "a1").Return(&activity.Activity{ID: "a1", CreatorID: "u1", Status: activity.StatusFull}, nil)
		repo.On("UpdateStatus", ctx, "a1", activity.StatusCancelled).Return(nil)
		events.On("Publish", ctx, "activity.cancelled", mock.Anything).Return(nil)

		act, err := newService(repo, nil, events).Cancel(ctx, "a1", "u1")
		require.NoError(t, err)
		require.Equal(t, activity.StatusCancelled, act.Status)
		repo.AssertExpectations(t)
		events.AssertExpectations(t)
	})

	t.Run("already cancelled", func(t *testing.T) {
		repo := &mocks.ActivityRepository{}
		repo.On("Get", ctx, "a1").Return(&activity.Activity{ID: "a1", CreatorID: "u1", Status: activity.StatusCancelled}, nil)

		_, err := newService(repo, nil, nil).Cancel(ctx, "a1", "u1")
		require.ErrorIs(t, err, activity.ErrInvalidTransition)
		repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("not creator", func(t *testing.T) {
		repo := &mocks.ActivityRepository{}
		repo.On("Get", ctx, "a1").Return(&activity.Activity{ID: "a1", CreatorID: "u1", Status: activity.StatusOpen}, nil)

		_, err := newService(repo, nil, nil).Complete(ctx, "a1", "u2")
		require.ErrorIs(t, err, activity.ErrNotCreator)
	})
}

func TestActivityService_Update(t *testing.T) {
	ctx := context.Background()
	start := fixedClock().Add(24 * time.Hour).UTC()
	stored := &activity.Activity{
		ID: "a1", CreatorID: "u1", Title: "old", Status: activity.StatusOpen,
		StartTime: start, EndTime: start.Add(time.Hour), MaxParticipants: 4, CurrentParticipants: 3,
	}

	t.Run("capacity below occupancy", func(t *testing.T) {
		repo := &mocks.ActivityRepository{}
		copyAct := *stored
		repo.On("Get", ctx, "a1").Return(&copyAct, nil)
		two := 2
		_, err := newService(repo, nil, nil).Update(ctx, activity.UpdateRequest{ID: "a1", ActorID: "u1", MaxParticipants: &two})
		require.ErrorIs(t, err, activity.ErrInvalidCapacity)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("title and capacity", func(t *testing.T) {
		repo := &mocks.ActivityRepository{}
		copyAct := *stored
		repo.On("Get", ctx, "a1").Return(&copyAct, nil)
		repo.On("Update", ctx, mock.MatchedBy(func(a *activity.Activity) bool {
			return a.Title == "new" && a.MaxParticipants == 6
		})).Return(nil)

		title := "new"
		six := 6
		act, err := newService(repo, nil, nil).Update(ctx, activity.UpdateRequest{ID: "a1", ActorID: "u1", Title: &title, MaxParticipants: &six})
		require.NoError(t, err)
		require.Equal(t, "new", act.Title)
		repo.AssertExpectations(t)
	})
}

func TestActivityService_Delete(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ActivityRepository{}
	auditRepo := &mocks.AuditRepository{}
	repo.On("Get", ctx, "a1").Return(&activity.Activity{ID: "a1", CreatorID: "u1", Status: activity.StatusOpen}, nil)
	repo.On("Delete", ctx, "a1").Return(nil)
	auditRepo.On("Log", ctx, mock.MatchedBy(func(e *audit.Entry) bool { return e.Kind == audit.KindActivityDeleted })).Return(nil)

	require.NoError(t, newService(repo, auditRepo, nil).Delete(ctx, "a1", "u1"))
	repo.AssertExpectations(t)
	auditRepo.AssertExpectations(t)
}

func TestActivityService_ListByTypeWindow(t *testing.T) {
	ctx := context.Background()
	now := fixedClock()

	t.Run("no date starts at now", func(t *testing.T) {
		repo := &mocks.ActivityRepository{}
		repo.On("ListOpen", ctx, activity.ListOptions{Type: activity.TypePlay, From: now}).Return([]activity.Activity{}, nil)

		_, err := newService(repo, nil, nil).ListByType(ctx, activity.Query{})
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("today is clipped to now", func(t *testing.T) {
		repo := &mocks.ActivityRepository{}
		until := time.Date(2026, 3, 15, 0, 0, 0, 0, shanghai)
		repo.On("ListOpen", ctx, mock.MatchedBy(func(o activity.ListOptions) bool {
			return o.Type == activity.TypeCourse && o.From.Equal(now) && o.Until != nil && o.Until.Equal(until)
		})).Return([]activity.Activity{}, nil)

		today := time.Date(2026, 3, 14, 22, 0, 0, 0, shanghai)
		_, err := newService(repo, nil, nil).ListByType(ctx, activity.Query{Type: activity.TypeCourse, Date: &today})
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("future day covers 24 hours", func(t *testing.T) {
		repo := &mocks.ActivityRepository{}
		from := time.Date(2026, 3, 20, 0, 0, 0, 0, shanghai)
		repo.On("ListOpen", ctx, mock.MatchedBy(func(o activity.ListOptions) bool {
			return o.From.Equal(from) && o.Until != nil && o.Until.Sub(from) == 24*time.Hour
		})).Return([]activity.Activity{}, nil)

		day := time.Date(2026, 3, 20, 15, 30, 0, 0, shanghai)
		_, err := newService(repo, nil, nil).ListByType(ctx, activity.Query{Date: &day})
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})
}

func TestActivityService_CountByDate(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ActivityRepository{}
	starts := []time.Time{
		time.Date(2026, 3, 14, 19, 0, 0, 0, shanghai).UTC(),
		time.Date(2026, 3, 16, 8, 0, 0, 0, shanghai).UTC(),
		// 23:30 local is still the 16th even though it is the 16th 15:30 UTC
		time.Date(2026, 3, 16, 23, 30, 0, 0, shanghai).UTC(),
	}
	repo.On("StartTimes", ctx, mock.Anything).Return(starts, nil)

	counts, err := newService(repo, nil, nil).CountByDate(ctx, activity.TypePlay, fixedClock(), 3)
	require.NoError(t, err)
	require.Equal(t, []activity.DayCount{
		{Date: "2026-03-14", Count: 1},
		{Date: "2026-03-15", Count: 0},
		{Date: "2026-03-16", Count: 2},
	}, counts)

	_, err = newService(repo, nil, nil).CountByDate(ctx, activity.TypePlay, fixedClock(), 0)
	require.ErrorIs(t, err, activity.ErrInvalidInput)
	_, err = newService(repo, nil, nil).CountByDate(ctx, activity.TypePlay, fixedClock(), 32)
	require.ErrorIs(t, err, activity.ErrInvalidInput)
}

func TestActivityService_ListByCreatorRequiresID(t *testing.T) {
	_, err := newService(&mocks.ActivityRepository{}, nil, nil).ListByCreator(context.Background(), " ", nil)
	require.ErrorIs(t, err, activity.ErrInvalidInput)
}

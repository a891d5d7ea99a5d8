package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/qiuyou/courtside/internal/domain/activity"
	"github.com/qiuyou/courtside/internal/repository"
	"github.com/stretchr/testify/require"
)

func TestActivityRepository_CreateAndGet(t *testing.T) {
	db := NewTestDB(t)
	repo := NewActivityRepository(db)
	ctx := context.Background()
	createTestUser(t, db, "u1")

	act := newTestActivity("a1", "u1", activity.TypeCourse, time.Now().Add(24*time.Hour), 4)
	lat, lng := 39.9, 116.4
	act.Latitude = &lat
	act.Longitude = &lng
	act.Images = []string{"https://img.example/1.jpg"}
	act.Fee = 80
	act.Category = "双打"

	require.NoError(t, repo.Create(ctx, act, ""))

	got, err := repo.Get(ctx, "a1")
	require.NoError(t, err)
	require.Equal(t, activity.TypeCourse, got.Type)
	require.Equal(t, act.Title, got.Title)
	require.True(t, act.StartTime.Equal(got.StartTime))
	require.Equal(t, 4, got.MaxParticipants)
	require.Equal(t, 0, got.CurrentParticipants)
	require.Equal(t, 80.0, got.Fee)
	require.Equal(t, "双打", got.Category)
	require.Equal(t, []string{"https://img.example/1.jpg"}, got.Images)
	require.NotNil(t, got.Latitude)
	require.InDelta(t, 39.9, *got.Latitude, 1e-9)
	require.Nil(t, got.ClubID)
}

func TestActivityRepository_CreateWithCreatorSeat(t *testing.T) {
	db := NewTestDB(t)
	repo := NewActivityRepository(db)
	regs := NewRegistrationRepository(db)
	ctx := context.Background()
	createTestUser(t, db, "u1")

	act := newTestActivity("a1", "u1", activity.TypePlay, time.Now().Add(time.Hour), 4)
	act.CreatorParticipates = true
	act.CurrentParticipants = 1
	require.NoError(t, repo.Create(ctx, act, "seat1"))

	require.Equal(t, 1, countActive(t, db, "a1"))

	seat, err := regs.GetActive(ctx, "a1", "u1")
	require.NoError(t, err)
	require.Equal(t, "seat1", seat.ID)
}

func TestActivityRepository_CreateUnknownCreator(t *testing.T) {
	db := NewTestDB(t)
	repo := NewActivityRepository(db)

	act := newTestActivity("a1", "ghost", activity.TypePlay, time.Now().Add(time.Hour), 4)
	err := repo.Create(context.Background(), act, "")
	require.ErrorIs(t, err, repository.ErrForeignKeyViolation)
}

func TestActivityRepository_GetNotFound(t *testing.T) {
	db := NewTestDB(t)
	_, err := NewActivityRepository(db).Get(context.Background(), "missing")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestActivityRepository_ListOpen(t *testing.T) {
	db := NewTestDB(t)
	repo := NewActivityRepository(db)
	ctx := context.Background()
	createTestUser(t, db, "u1")

	now := time.Now().UTC().Truncate(time.Second)
	later := newTestActivity("later", "u1", activity.TypePlay, now.Add(48*time.Hour), 4)
	sooner := newTestActivity("sooner", "u1", activity.TypePlay, now.Add(2*time.Hour), 4)
	past := newTestActivity("past", "u1", activity.TypePlay, now.Add(-2*time.Hour), 4)
	course := newTestActivity("course", "u1", activity.TypeCourse, now.Add(3*time.Hour), 4)
	cancelled := newTestActivity("cancelled", "u1", activity.TypePlay, now.Add(4*time.Hour), 4)
	cancelled.Status = activity.StatusCancelled
	for _, a := range []*activity.Activity{later, sooner, past, course, cancelled} {
		require.NoError(t, repo.Create(ctx, a, ""))
	}

	acts, err := repo.ListOpen(ctx, activity.ListOptions{Type: activity.TypePlay, From: now})
	require.NoError(t, err)
	require.Len(t, acts, 2)
	require.Equal(t, "sooner", acts[0].ID)
	require.Equal(t, "later", acts[1].ID)

	until := now.Add(24 * time.Hour)
	acts, err = repo.ListOpen(ctx, activity.ListOptions{Type: activity.TypePlay, From: now, Until: &until})
	require.NoError(t, err)
	require.Len(t, acts, 1)
	require.Equal(t, "sooner", acts[0].ID)

	starts, err := repo.StartTimes(ctx, activity.ListOptions{Type: activity.TypePlay, From: now})
	require.NoError(t, err)
	require.Len(t, starts, 2)
}

func TestActivityRepository_ListByCreator(t *testing.T) {
	db := NewTestDB(t)
	repo := NewActivityRepository(db)
	ctx := context.Background()
	createTestUser(t, db, "u1")
	createTestUser(t, db, "u2")

	now := time.Now()
	require.NoError(t, repo.Create(ctx, newTestActivity("a1", "u1", activity.TypePlay, now.Add(time.Hour), 4), ""))
	require.NoError(t, repo.Create(ctx, newTestActivity("a2", "u1", activity.TypeCourse, now.Add(2*time.Hour), 4), ""))
	require.NoError(t, repo.Create(ctx, newTestActivity("a3", "u2", activity.TypePlay, now.Add(3*time.Hour), 4), ""))

	acts, err := repo.ListByCreator(ctx, "u1", nil)
	require.NoError(t, err)
	require.Len(t, acts, 2)
	require.Equal(t, "a2", acts[0].ID)

	play := activity.TypePlay
	acts, err = repo.ListByCreator(ctx, "u1", &play)
	require.NoError(t, err)
	require.Len(t, acts, 1)
	require.Equal(t, "a1", acts[0].ID)
}

func TestActivityRepository_UpdateRecomputesStatus(t *testing.T) {
	db := NewTestDB(t)
	repo := NewActivityRepository(db)
	regs := NewRegistrationRepository(db)
	ctx := context.Background()
	createTestUser(t, db, "u1")
	createTestUser(t, db, "u2")

	act := newTestActivity("a1", "u1", activity.TypePlay, time.Now().Add(time.Hour), 2)
	require.NoError(t, repo.Create(ctx, act, ""))
	require.NoError(t, regs.Register(ctx, newTestRegistration("r1", "a1", "u1")))
	require.NoError(t, regs.Register(ctx, newTestRegistration("r2", "a1", "u2")))

	full, err := repo.Get(ctx, "a1")
	require.NoError(t, err)
	require.Equal(t, activity.StatusFull, full.Status)

	full.MaxParticipants = 4
	full.UpdatedAt = time.Now()
	require.NoError(t, repo.Update(ctx, full))

	reopened, err := repo.Get(ctx, "a1")
	require.NoError(t, err)
	require.Equal(t, activity.StatusOpen, reopened.Status)
	require.Equal(t, 2, reopened.CurrentParticipants)

	reopened.MaxParticipants = 1
	require.ErrorIs(t, repo.Update(ctx, reopened), repository.ErrCapacityExhausted)
}

func TestActivityRepository_UpdateStatus(t *testing.T) {
	db := NewTestDB(t)
	repo := NewActivityRepository(db)
	ctx := context.Background()
	createTestUser(t, db, "u1")

	require.NoError(t, repo.Create(ctx, newTestActivity("a1", "u1", activity.TypePlay, time.Now().Add(time.Hour), 2), ""))
	require.NoError(t, repo.UpdateStatus(ctx, "a1", activity.StatusCancelled))

	got, err := repo.Get(ctx, "a1")
	require.NoError(t, err)
	require.Equal(t, activity.StatusCancelled, got.Status)

	require.ErrorIs(t, repo.UpdateStatus(ctx, "missing", activity.StatusCancelled), repository.ErrNotFound)
}

func TestActivityRepository_DeleteCascades(t *testing.T) {
	db := NewTestDB(t)
	repo := NewActivityRepository(db)
	regs := NewRegistrationRepository(db)
	ctx := context.Background()
	createTestUser(t, db, "u1")
	createTestUser(t, db, "u2")

	act := newTestActivity("a1", "u1", activity.TypePlay, time.Now().Add(time.Hour), 4)
	require.NoError(t, repo.Create(ctx, act, ""))
	require.NoError(t, regs.Register(ctx, newTestRegistration("r1", "a1", "u2")))

	require.NoError(t, repo.Delete(ctx, "a1"))

	_, err := repo.Get(ctx, "a1")
	require.ErrorIs(t, err, repository.ErrNotFound)

	_, err = regs.Get(ctx, "r1")
	require.ErrorIs(t, err, repository.ErrNotFound)

	acts, err := repo.ListByCreator(ctx, "u1", nil)
	require.NoError(t, err)
	require.Empty(t, acts)

	require.ErrorIs(t, repo.Delete(ctx, "a1"), repository.ErrNotFound)
}

func TestActivityRepository_ListRegistered(t *testing.T) {
	db := NewTestDB(t)
	repo := NewActivityRepository(db)
	regs := NewRegistrationRepository(db)
	ctx := context.Background()
	createTestUser(t, db, "u1")
	createTestUser(t, db, "u2")

	now := time.Now()
	require.NoError(t, repo.Create(ctx, newTestActivity("a1", "u1", activity.TypePlay, now.Add(time.Hour), 4), ""))
	require.NoError(t, repo.Create(ctx, newTestActivity("a2", "u1", activity.TypePlay, now.Add(2*time.Hour), 4), ""))
	require.NoError(t, regs.Register(ctx, newTestRegistration("r1", "a1", "u2")))
	require.NoError(t, regs.Register(ctx, newTestRegistration("r2", "a2", "u2")))
	_, err := regs.Cancel(ctx, "a2", "u2", now)
	require.NoError(t, err)

	acts, err := repo.ListRegistered(ctx, "u2")
	require.NoError(t, err)
	require.Len(t, acts, 1)
	require.Equal(t, "a1", acts[0].ID)
}

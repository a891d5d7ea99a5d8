package sqlite

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/qiuyou/courtside/internal/domain/activity"
	"github.com/qiuyou/courtside/internal/domain/registration"
	"github.com/qiuyou/courtside/internal/repository"
	"github.com/stretchr/testify/require"
)

func newTestRegistration(id, activityID, userID string) *registration.Registration {
	return &registration.Registration{
		ID:            id,
		ActivityID:    activityID,
		UserID:        userID,
		Status:        registration.StatusConfirmed,
		PaymentStatus: registration.PaymentUnpaid,
		RegisteredAt:  time.Now(),
	}
}

func setupRegistrationTest(t *testing.T, max int) (*DB, *ActivityRepository, *RegistrationRepository) {
	t.Helper()
	db := NewTestDB(t)
	acts := NewActivityRepository(db)
	createTestUser(t, db, "creator")
	act := newTestActivity("a1", "creator", activity.TypePlay, time.Now().Add(24*time.Hour), max)
	require.NoError(t, acts.Create(context.Background(), act, ""))
	return db, acts, NewRegistrationRepository(db)
}

func TestRegistrationRepository_Register(t *testing.T) {
	db, acts, regs := setupRegistrationTest(t, 4)
	ctx := context.Background()
	createTestUser(t, db, "u1")

	require.NoError(t, regs.Register(ctx, newTestRegistration("r1", "a1", "u1")))

	act, err := acts.Get(ctx, "a1")
	require.NoError(t, err)
	require.Equal(t, 1, act.CurrentParticipants)
	require.Equal(t, activity.StatusOpen, act.Status)

	reg, err := regs.GetActive(ctx, "a1", "u1")
	require.NoError(t, err)
	require.Equal(t, "r1", reg.ID)
	require.Nil(t, reg.PaymentMethod)
	require.Nil(t, reg.CancelledAt)
}

func TestRegistrationRepository_RegisterDuplicate(t *testing.T) {
	db, acts, regs := setupRegistrationTest(t, 4)
	ctx := context.Background()
	createTestUser(t, db, "u1")

	require.NoError(t, regs.Register(ctx, newTestRegistration("r1", "a1", "u1")))
	err := regs.Register(ctx, newTestRegistration("r2", "a1", "u1"))
	require.ErrorIs(t, err, repository.ErrConflict)

	act, err := acts.Get(ctx, "a1")
	require.NoError(t, err)
	require.Equal(t, 1, act.CurrentParticipants)
}

func TestRegistrationRepository_RegisterFull(t *testing.T) {
	db, acts, regs := setupRegistrationTest(t, 2)
	ctx := context.Background()
	for _, id := range []string{"u1", "u2", "u3"} {
		createTestUser(t, db, id)
	}

	require.NoError(t, regs.Register(ctx, newTestRegistration("r1", "a1", "u1")))
	require.NoError(t, regs.Register(ctx, newTestRegistration("r2", "a1", "u2")))

	act, err := acts.Get(ctx, "a1")
	require.NoError(t, err)
	require.Equal(t, activity.StatusFull, act.Status)
	require.Equal(t, 2, act.CurrentParticipants)

	err = regs.Register(ctx, newTestRegistration("r3", "a1", "u3"))
	require.ErrorIs(t, err, repository.ErrCapacityExhausted)

	_, err = regs.Get(ctx, "r3")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestRegistrationRepository_RegisterClosed(t *testing.T) {
	db, acts, regs := setupRegistrationTest(t, 4)
	ctx := context.Background()
	createTestUser(t, db, "u1")

	require.NoError(t, acts.UpdateStatus(ctx, "a1", activity.StatusCancelled))
	err := regs.Register(ctx, newTestRegistration("r1", "a1", "u1"))
	require.ErrorIs(t, err, repository.ErrNotOpen)
}

func TestRegistrationRepository_RegisterUnknownActivity(t *testing.T) {
	db, _, regs := setupRegistrationTest(t, 4)
	createTestUser(t, db, "u1")

	err := regs.Register(context.Background(), newTestRegistration("r1", "missing", "u1"))
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestRegistrationRepository_RegisterUnknownUser(t *testing.T) {
	_, acts, regs := setupRegistrationTest(t, 4)
	ctx := context.Background()

	err := regs.Register(ctx, newTestRegistration("r1", "a1", "ghost"))
	require.ErrorIs(t, err, repository.ErrInvalidInput)

	act, err := acts.Get(ctx, "a1")
	require.NoError(t, err)
	require.Equal(t, 0, act.CurrentParticipants)
}

func TestRegistrationRepository_CancelReopens(t *testing.T) {
	db, acts, regs := setupRegistrationTest(t, 2)
	ctx := context.Background()
	createTestUser(t, db, "u1")
	createTestUser(t, db, "u2")

	require.NoError(t, regs.Register(ctx, newTestRegistration("r1", "a1", "u1")))
	require.NoError(t, regs.Register(ctx, newTestRegistration("r2", "a1", "u2")))

	cancelled, err := regs.Cancel(ctx, "a1", "u1", time.Now())
	require.NoError(t, err)
	require.Equal(t, registration.StatusCancelled, cancelled.Status)
	require.NotNil(t, cancelled.CancelledAt)

	act, err := acts.Get(ctx, "a1")
	require.NoError(t, err)
	require.Equal(t, activity.StatusOpen, act.Status)
	require.Equal(t, 1, act.CurrentParticipants)

	_, err = regs.GetActive(ctx, "a1", "u1")
	require.ErrorIs(t, err, repository.ErrNotFound)

	// a cancelled user may register again
	require.NoError(t, regs.Register(ctx, newTestRegistration("r3", "a1", "u1")))
}

func TestRegistrationRepository_CancelRefundsPaid(t *testing.T) {
	db, _, regs := setupRegistrationTest(t, 2)
	ctx := context.Background()
	createTestUser(t, db, "u1")

	require.NoError(t, regs.Register(ctx, newTestRegistration("r1", "a1", "u1")))
	require.NoError(t, regs.UpdatePayment(ctx, "r1", registration.PaymentWechat, registration.PaymentPaid))

	cancelled, err := regs.Cancel(ctx, "a1", "u1", time.Now())
	require.NoError(t, err)
	require.Equal(t, registration.PaymentRefunded, cancelled.PaymentStatus)

	stored, err := regs.Get(ctx, "r1")
	require.NoError(t, err)
	require.Equal(t, registration.PaymentRefunded, stored.PaymentStatus)
	require.NotNil(t, stored.PaymentMethod)
	require.Equal(t, registration.PaymentWechat, *stored.PaymentMethod)
}

func TestRegistrationRepository_CancelNotFound(t *testing.T) {
	_, acts, regs := setupRegistrationTest(t, 2)
	ctx := context.Background()

	_, err := regs.Cancel(ctx, "a1", "nobody", time.Now())
	require.ErrorIs(t, err, repository.ErrNotFound)

	act, err := acts.Get(ctx, "a1")
	require.NoError(t, err)
	require.Equal(t, 0, act.CurrentParticipants)
}

func TestRegistrationRepository_CancelKeepsTerminalStatus(t *testing.T) {
	db, acts, regs := setupRegistrationTest(t, 2)
	ctx := context.Background()
	createTestUser(t, db, "u1")

	require.NoError(t, regs.Register(ctx, newTestRegistration("r1", "a1", "u1")))
	require.NoError(t, acts.UpdateStatus(ctx, "a1", activity.StatusCompleted))

	_, err := regs.Cancel(ctx, "a1", "u1", time.Now())
	require.NoError(t, err)

	act, err := acts.Get(ctx, "a1")
	require.NoError(t, err)
	require.Equal(t, activity.StatusCompleted, act.Status)
	require.Equal(t, 0, act.CurrentParticipants)
}

func TestRegistrationRepository_CapacityNeverExceeded(t *testing.T) {
	const max = 3
	db, acts, regs := setupRegistrationTest(t, max)
	ctx := context.Background()

	users := make([]string, 6)
	for i := range users {
		users[i] = fmt.Sprintf("u%d", i)
		createTestUser(t, db, users[i])
	}

	seq := 0
	for round := 0; round < 4; round++ {
		for _, u := range users {
			seq++
			err := regs.Register(ctx, newTestRegistration(fmt.Sprintf("r%d", seq), "a1", u))
			if err != nil {
				require.True(t, errors.Is(err, repository.ErrCapacityExhausted) || errors.Is(err, repository.ErrConflict), err)
			}

			act, err := acts.Get(ctx, "a1")
			require.NoError(t, err)
			live := countActive(t, db, "a1")
			require.LessOrEqual(t, act.CurrentParticipants, max)
			require.Equal(t, live, act.CurrentParticipants)
			require.Equal(t, act.CurrentParticipants == max, act.Status == activity.StatusFull)
		}

		for i, u := range users {
			if (i+round)%2 == 0 {
				continue
			}
			_, err := regs.Cancel(ctx, "a1", u, time.Now())
			if err != nil {
				require.ErrorIs(t, err, repository.ErrNotFound)
			}
		}
	}
}

func TestRegistrationRepository_ConcurrentRegister(t *testing.T) {
	const max = 5
	db, acts, regs := setupRegistrationTest(t, max)
	ctx := context.Background()

	const contenders = 20
	for i := 0; i < contenders; i++ {
		createTestUser(t, db, fmt.Sprintf("u%d", i))
	}

	errs := make(chan error, contenders)
	for i := 0; i < contenders; i++ {
		go func(i int) {
			id := fmt.Sprintf("u%d", i)
			errs <- regs.Register(ctx, newTestRegistration("r-"+id, "a1", id))
		}(i)
	}

	succeeded := 0
	for i := 0; i < contenders; i++ {
		err := <-errs
		if err == nil {
			succeeded++
			continue
		}
		require.ErrorIs(t, err, repository.ErrCapacityExhausted)
	}
	require.Equal(t, max, succeeded)

	act, err := acts.Get(ctx, "a1")
	require.NoError(t, err)
	require.Equal(t, max, act.CurrentParticipants)
	require.Equal(t, activity.StatusFull, act.Status)
}

func TestRegistrationRepository_ListForUserAndParticipants(t *testing.T) {
	db, acts, regs := setupRegistrationTest(t, 4)
	ctx := context.Background()
	createTestUser(t, db, "u1")
	createTestUser(t, db, "u2")
	require.NoError(t, acts.Create(ctx, newTestActivity("a2", "creator", activity.TypeCourse, time.Now().Add(time.Hour), 4), ""))

	require.NoError(t, regs.Register(ctx, newTestRegistration("r1", "a1", "u1")))
	require.NoError(t, regs.Register(ctx, newTestRegistration("r2", "a2", "u1")))
	require.NoError(t, regs.Register(ctx, newTestRegistration("r3", "a1", "u2")))

	list, err := regs.ListForUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 2)

	participants, err := regs.Participants(ctx, "a1")
	require.NoError(t, err)
	require.Len(t, participants, 2)
	ids := []string{participants[0].ID, participants[1].ID}
	require.ElementsMatch(t, []string{"u1", "u2"}, ids)

	fee, err := regs.ActivityFee(ctx, "a1")
	require.NoError(t, err)
	require.Equal(t, 0.0, fee)

	_, err = regs.ActivityFee(ctx, "missing")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

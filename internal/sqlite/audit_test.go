package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/qiuyou/courtside/internal/domain/audit"
	"github.com/stretchr/testify/require"
)

func TestAuditRepository_LogAndList(t *testing.T) {
	db := NewTestDB(t)
	repo := NewAuditRepository(db)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	entries := []*audit.Entry{
		{ActivityID: "a1", UserID: "u1", Kind: audit.KindActivityCreated, Summary: "created", CreatedAt: base},
		{ActivityID: "a1", UserID: "u2", Kind: audit.KindRegistrationConfirmed, Summary: "joined", CreatedAt: base.Add(time.Minute)},
		{ActivityID: "a2", UserID: "u2", Kind: audit.KindActivityCreated, Summary: "created", CreatedAt: base.Add(2 * time.Minute)},
	}
	for _, e := range entries {
		require.NoError(t, repo.Log(ctx, e))
		require.NotZero(t, e.ID)
	}

	all, err := repo.List(ctx, audit.ListOptions{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, "a2", all[0].ActivityID)

	byActivity, err := repo.List(ctx, audit.ListOptions{ActivityID: "a1"})
	require.NoError(t, err)
	require.Len(t, byActivity, 2)
	require.Equal(t, audit.KindRegistrationConfirmed, byActivity[0].Kind)

	kind := audit.KindActivityCreated
	byKind, err := repo.List(ctx, audit.ListOptions{UserID: "u2", Kind: &kind})
	require.NoError(t, err)
	require.Len(t, byKind, 1)
	require.Equal(t, "a2", byKind[0].ActivityID)

	page, err := repo.List(ctx, audit.ListOptions{Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, page, 1)
	require.Equal(t, "joined", page[0].Summary)

	tail, err := repo.List(ctx, audit.ListOptions{Offset: 2})
	require.NoError(t, err)
	require.Len(t, tail, 1)
	require.Equal(t, "a1", tail[0].ActivityID)
}

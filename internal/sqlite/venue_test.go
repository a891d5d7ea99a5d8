package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/qiuyou/courtside/internal/domain/venue"
	"github.com/qiuyou/courtside/internal/repository"
	"github.com/stretchr/testify/require"
)

func TestVenueRepository(t *testing.T) {
	db := NewTestDB(t)
	repo := NewVenueRepository(db)
	ctx := context.Background()

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	require.Zero(t, count)

	venues := []venue.Venue{
		{ID: "v1", Name: "Olympic Center", City: "北京市", Address: "Chaoyang", CourtCount: 10, Rating: 4.8},
		{ID: "v2", Name: "Park Courts", City: "北京市", Address: "Haidian", CourtCount: 4, Rating: 4.2},
		{ID: "v3", Name: "Qizhong", City: "上海市", Address: "Minhang", CourtCount: 16, Rating: 4.9},
	}
	for i := range venues {
		venues[i].CreatedAt = time.Now()
		require.NoError(t, repo.Create(ctx, &venues[i]))
	}
	require.ErrorIs(t, repo.Create(ctx, &venues[0]), repository.ErrConflict)

	list, err := repo.ListByCity(ctx, "北京市")
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "v1", list[0].ID)

	cities, err := repo.Cities(ctx)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"北京市", "上海市"}, cities)

	got, err := repo.Get(ctx, "v3")
	require.NoError(t, err)
	require.Equal(t, 16, got.CourtCount)

	_, err = repo.Get(ctx, "missing")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestClubRepository(t *testing.T) {
	db := NewTestDB(t)
	repo := NewClubRepository(db)
	ctx := context.Background()

	clubs := []venue.Club{
		{ID: "c1", Name: "Ace Club", Address: "A road", CourtCount: 3, Images: []string{"a.jpg"}},
		{ID: "c2", Name: "Baseline 100%", Address: "B road", CourtCount: 2},
	}
	for i := range clubs {
		clubs[i].CreatedAt = time.Now()
		require.NoError(t, repo.Create(ctx, &clubs[i]))
	}

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, "c1", all[0].ID)
	require.Equal(t, []string{"a.jpg"}, all[0].Images)

	found, err := repo.SearchByName(ctx, "ace")
	require.NoError(t, err)
	require.Len(t, found, 1)

	found, err = repo.SearchByName(ctx, "100%")
	require.NoError(t, err)
	require.Len(t, found, 1)
	require.Equal(t, "c2", found[0].ID)

	found, err = repo.SearchByName(ctx, "%")
	require.NoError(t, err)
	require.Len(t, found, 1)

	_, err = repo.Get(ctx, "missing")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

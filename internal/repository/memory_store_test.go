package repository

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saswath-06/roommait/internal/domain"
)

func TestMemoryRepo_ScansAndPlacements(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepo()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	r.now = func() time.Time { tick++; return base.Add(time.Duration(tick) * time.Minute) }

	sub := "auth0|u1"
	dims := domain.RoomDimensions{Width: 10, Depth: 10, Height: 8}
	require.NoError(t, r.CreateScan(ctx, domain.NewRoomScan("s1", &sub, dims, nil, 0.9)))
	require.NoError(t, r.CreateScan(ctx, domain.NewRoomScan("s2", &sub, dims, nil, 0.5)))
	require.NoError(t, r.CreateScan(ctx, domain.NewRoomScan("anon", nil, dims, nil, 0.9)))
	assert.ErrorIs(t, r.CreateScan(ctx, domain.NewRoomScan("s1", nil, dims, nil, 0.9)), ErrAlreadyExists)

	batch := []domain.FurniturePlacement{
		{PlacementID: "p1", ScanID: "s1", ModelID: "bed", EstimatedCost: decimal.NewFromInt(150)},
		{PlacementID: "p1", ScanID: "s1", ModelID: "lamp", EstimatedCost: decimal.NewFromInt(30)},
	}
	require.NoError(t, r.SavePlacements(ctx, batch))
	assert.Equal(t, int64(1), batch[0].ID)
	assert.Equal(t, int64(2), batch[1].ID)

	assert.ErrorIs(t, r.SavePlacements(ctx, []domain.FurniturePlacement{{PlacementID: "p2", ScanID: "nope"}}), ErrNotFound)

	got, err := r.ListPlacements(ctx, "p1")
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.True(t, domain.TotalCost(got).Equal(decimal.NewFromInt(180)))

	none, err := r.ListPlacements(ctx, "missing")
	require.NoError(t, err)
	assert.Empty(t, none)

	scans, err := r.ListScansByUser(ctx, sub)
	require.NoError(t, err)
	require.Len(t, scans, 2)
	assert.Equal(t, "s2", scans[0].ScanID)
	assert.Equal(t, 0, scans[0].PlacementCount)
	assert.Equal(t, 2, scans[1].PlacementCount)

	_, err = r.GetScan(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryRepo_Users(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepo()

	_, err := r.GetBySubject(ctx, "auth0|u1")
	assert.ErrorIs(t, err, ErrNotFound)

	first, err := r.UpsertBySubject(ctx, domain.User{Subject: "auth0|u1", Email: "a@b.c"})
	require.NoError(t, err)
	second, err := r.UpsertBySubject(ctx, domain.User{Subject: "auth0|u1", Name: "Ann"})
	require.NoError(t, err)
	assert.Equal(t, first.UserID, second.UserID)
	assert.Equal(t, "a@b.c", second.Email)
	assert.Equal(t, "Ann", second.Name)
}

func TestMemoryRepo_ModelsSeed(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepo()

	n, err := SeedGenericModels(ctx, r)
	require.NoError(t, err)
	assert.Equal(t, 8, n)

	// seeding twice is idempotent
	_, err = SeedGenericModels(ctx, r)
	require.NoError(t, err)

	all, err := r.ListModels(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 8)

	storage, err := r.ListModels(ctx, "storage")
	require.NoError(t, err)
	require.Len(t, storage, 2)
	assert.Equal(t, "generic-dresser", storage[0].ModelID)
	assert.Equal(t, "/models/generic-dresser.glb", storage[0].ModelURL)
}

func TestMemoryRepo_SearchesAndDesigns(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepo()

	id, err := r.LogSearch(ctx, &domain.ProductSearch{SearchQuery: "seating"})
	require.NoError(t, err)
	require.NoError(t, r.UpdateResultsCount(ctx, id, 3))
	s, ok := r.Search(id)
	require.True(t, ok)
	assert.Equal(t, 3, s.ResultsCount)
	assert.ErrorIs(t, r.UpdateResultsCount(ctx, 99, 1), ErrNotFound)

	require.NoError(t, r.CreateDesign(ctx, &domain.RoomDesign{DesignID: "d1", UserID: "u"}))
	require.NoError(t, r.CreateDesign(ctx, &domain.RoomDesign{DesignID: "d2", UserID: "u"}))
	require.NoError(t, r.CreateDesign(ctx, &domain.RoomDesign{DesignID: "d3", UserID: "other"}))
	designs, err := r.ListDesignsByUser(ctx, "u")
	require.NoError(t, err)
	require.Len(t, designs, 2)
	assert.Equal(t, "d2", designs[0].DesignID)
}

func TestNewMemoryStore_SharesState(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.Scans.CreateScan(ctx, domain.NewRoomScan("s1", nil, domain.RoomDimensions{Width: 1, Depth: 1, Height: 1}, nil, 1)))
	require.NoError(t, s.Placements.SavePlacements(ctx, []domain.FurniturePlacement{{PlacementID: "p", ScanID: "s1", ModelID: "x"}}))
}

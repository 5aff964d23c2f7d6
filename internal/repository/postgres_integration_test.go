//go:build integration
// +build integration

package repository

import (
	"context"
	"database/sql"
	"os"
	"strconv"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saswath-06/roommait/internal/domain"
	"github.com/saswath-06/roommait/pkg/database"
)

func getTestDB(t *testing.T) *sql.DB {
	cfg := database.Config{
		Host:     getEnv("TEST_DB_HOST", "localhost"),
		Port:     getEnvInt("TEST_DB_PORT", 5432),
		User:     getEnv("TEST_DB_USER", "postgres"),
		Password: getEnv("TEST_DB_PASSWORD", "postgres"),
		Database: getEnv("TEST_DB_NAME", "roommait_test"),
		SSLMode:  getEnv("TEST_DB_SSLMODE", "disable"),
	}
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		t.Skipf("Skipping integration test: cannot connect to database: %v", err)
		return nil
	}
	require.NoError(t, EnsureSchema(context.Background(), db))
	return db
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func TestPostgresStore_ScanPlacementRoundTrip(t *testing.T) {
	db := getTestDB(t)
	defer db.Close()
	ctx := context.Background()
	store := NewPostgresStore(db)

	sub := "auth0|it-" + uuid.NewString()
	scanID := "it-" + uuid.NewString()
	placementID := uuid.NewString()
	defer func() {
		db.Exec(`DELETE FROM furniture_placements WHERE scan_id = $1`, scanID)
		db.Exec(`DELETE FROM room_scans WHERE scan_id = $1`, scanID)
		db.Exec(`DELETE FROM users WHERE auth0_user_id = $1`, sub)
	}()

	_, err := store.Users.UpsertBySubject(ctx, domain.User{Subject: sub, Email: "it@example.com"})
	require.NoError(t, err)

	scan := domain.NewRoomScan(scanID, &sub, domain.RoomDimensions{Width: 10, Depth: 8, Height: 8}, nil, 0.8)
	require.NoError(t, store.Scans.CreateScan(ctx, scan))

	batch := []domain.FurniturePlacement{
		{PlacementID: placementID, ScanID: scanID, UserID: &sub, ModelID: "generic-bed-twin", EstimatedCost: decimal.NewFromInt(150)},
		{PlacementID: placementID, ScanID: scanID, UserID: &sub, ModelID: "generic-floor-lamp", EstimatedCost: decimal.NewFromInt(30)},
	}
	require.NoError(t, store.Placements.SavePlacements(ctx, batch))

	got, err := store.Placements.ListPlacements(ctx, placementID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.True(t, domain.TotalCost(got).Equal(decimal.NewFromInt(180)))

	scans, err := store.Scans.ListScansByUser(ctx, sub)
	require.NoError(t, err)
	require.Len(t, scans, 1)
	assert.Equal(t, 2, scans[0].PlacementCount)
}

package domain

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoomDimensions_AreaVolume(t *testing.T) {
	d := RoomDimensions{Width: 10, Depth: 8, Height: 8}
	assert.Equal(t, 80.0, d.Area())
	assert.Equal(t, 640.0, d.Volume())
	assert.NoError(t, d.Validate())
}

func TestRoomDimensions_ValidateRejectsNonPositive(t *testing.T) {
	cases := []RoomDimensions{
		{Width: 0, Depth: 8, Height: 8},
		{Width: 10, Depth: -1, Height: 8},
		{Width: 10, Depth: 8, Height: 0},
		{Width: math.NaN(), Depth: 8, Height: 8},
		{Width: math.Inf(1), Depth: 8, Height: 8},
	}
	for _, c := range cases {
		assert.Error(t, c.Validate(), "%+v", c)
	}
}

func TestNewRoomScan_DerivesMetadata(t *testing.T) {
	surfaces := []DetectedSurface{
		{SurfaceID: "f", SurfaceType: SurfaceFloor, Confidence: 0.9, Area: 80},
		{SurfaceID: "w1", SurfaceType: SurfaceWall, Confidence: 0.8, Area: 64},
	}
	scan := NewRoomScan("scan-1", nil, RoomDimensions{Width: 10, Depth: 8, Height: 8}, surfaces, 0.9)

	assert.Equal(t, "feet", scan.Dimensions.Units)
	assert.Equal(t, 2, scan.Metadata.SurfacesCount)
	assert.Equal(t, 80.0, scan.Metadata.RoomArea)
	assert.Equal(t, 640.0, scan.Metadata.RoomVolume)
	assert.Nil(t, scan.UserID)
}

func TestDetectedSurface_Validate(t *testing.T) {
	ok := DetectedSurface{SurfaceID: "f", SurfaceType: SurfaceFloor, Confidence: 1}
	require.NoError(t, ok.Validate())

	bad := ok
	bad.Confidence = 1.2
	assert.Error(t, bad.Validate())

	bad = ok
	bad.SurfaceType = "window"
	assert.Error(t, bad.Validate())
}

func TestFurnitureItem_Validate(t *testing.T) {
	assert.Error(t, FurnitureItem{ItemID: "a"}.Validate())
	assert.Error(t, FurnitureItem{ItemID: "a", ModelID: "desk", Position: Vector3{X: math.NaN()}}.Validate())
	assert.NoError(t, FurnitureItem{ItemID: "a", ModelID: "desk"}.Validate())
}

func TestTotalCost(t *testing.T) {
	placements := []FurniturePlacement{
		{EstimatedCost: decimal.NewFromFloat(150)},
		{EstimatedCost: decimal.NewFromFloat(30)},
		{EstimatedCost: decimal.NewFromFloat(19.99)},
	}
	assert.True(t, decimal.NewFromFloat(199.99).Equal(TotalCost(placements)))
	assert.True(t, TotalCost(nil).IsZero())
}

func TestBudgetRange(t *testing.T) {
	b := BudgetRange{Min: 50, Max: 100}
	assert.True(t, b.Contains(50))
	assert.True(t, b.Contains(100))
	assert.False(t, b.Contains(100.01))
	assert.NoError(t, b.Validate())
	assert.Error(t, BudgetRange{Min: 200, Max: 100}.Validate())
	assert.Error(t, BudgetRange{Min: -1, Max: 100}.Validate())
}

func TestRoomContext_Defaults(t *testing.T) {
	c := RoomContext{}
	assert.Equal(t, DefaultBudget, c.Budget())
	assert.Equal(t, 100.0, c.FloorArea())

	c.Dimensions = map[string]float64{"width": 12, "depth": 9}
	assert.Equal(t, 108.0, c.FloorArea())
}

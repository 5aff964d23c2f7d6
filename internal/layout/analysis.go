package layout

import (
	"math"

	"github.com/saswath-06/roommait/internal/domain"
)

// Size categories by floor area.
const (
	SizeMicro  = "micro"
	SizeSmall  = "small"
	SizeMedium = "medium"
	SizeLarge  = "large"
)

// SizeCategory buckets: <50 micro, <80 small, <120 medium, else large.
func SizeCategory(area float64) string {
	switch {
	case area < 50:
		return SizeMicro
	case area < 80:
		return SizeSmall
	case area < 120:
		return SizeMedium
	default:
		return SizeLarge
	}
}

// Capacity rough furniture counts a floor area can hold.
type Capacity struct {
	MajorPieces       int    `json:"major_pieces"`
	StorageUnits      int    `json:"storage_units"`
	DecorativeItems   int    `json:"decorative_items"`
	RecommendedLayout string `json:"recommended_layout"`
}

func EstimateCapacity(area float64) Capacity {
	c := Capacity{
		MajorPieces:     min(floorDiv(area, 25), 6),
		StorageUnits:    min(floorDiv(area, 40), 4),
		DecorativeItems: min(floorDiv(area, 15), 8),
	}
	switch {
	case area < 80:
		c.RecommendedLayout = "linear"
	case area < 120:
		c.RecommendedLayout = "L-shaped"
	default:
		c.RecommendedLayout = "flexible"
	}
	return c
}

func floorDiv(area, per float64) int {
	n := math.Floor(area / per)
	if n < 0 {
		return 0
	}
	return int(n)
}

// RoomMetrics computed view of a room, rounded for display.
type RoomMetrics struct {
	AreaSqft         float64 `json:"area_sqft"`
	VolumeCuft       float64 `json:"volume_cuft"`
	SurfacesDetected int     `json:"surfaces_detected"`
	RoomCategory     string  `json:"room_category"`
}

// AnalyzeRoom metrics for a scan; category uses the unrounded area.
func AnalyzeRoom(dims domain.RoomDimensions, surfaces int) RoomMetrics {
	return RoomMetrics{
		AreaSqft:         Round1(dims.Area()),
		VolumeCuft:       Round1(dims.Volume()),
		SurfacesDetected: surfaces,
		RoomCategory:     SizeCategory(dims.Area()),
	}
}

// Round1 rounds half away from zero to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Round2 rounds half away from zero to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// PlacementHint an item-type level suggestion returned after a scan.
type PlacementHint struct {
	ItemType     string `json:"item_type"`
	Suggestion   string `json:"suggestion"`
	Priority     string `json:"priority"`
	PositionHint string `json:"position_hint"`
}

// PlacementHints depends only on whether the room is small (< 80 sq ft).
func PlacementHints(dims domain.RoomDimensions) []PlacementHint {
	if dims.Area() < smallRoomAreaCutoff {
		return []PlacementHint{
			{ItemType: "bed", Suggestion: "Place bed along the longest wall to maximize floor space", Priority: "high", PositionHint: "corner_placement"},
			{ItemType: "desk", Suggestion: "Position desk near window for natural light", Priority: "high", PositionHint: "wall_adjacent"},
			{ItemType: "storage", Suggestion: "Use vertical storage solutions to save floor area", Priority: "medium", PositionHint: "wall_mounted"},
		}
	}
	return []PlacementHint{
		{ItemType: "bed", Suggestion: "Consider centering bed to create distinct zones", Priority: "medium", PositionHint: "room_center"},
		{ItemType: "seating", Suggestion: "Add seating area for socializing", Priority: "low", PositionHint: "corner_grouping"},
	}
}

// RescanTips returned alongside a low-quality scan.
func RescanTips() []string {
	return []string{
		"Ensure good lighting in the room",
		"Move phone slowly during scanning",
		"Scan all corners and surfaces thoroughly",
	}
}

// FurniturePriority share of floor space a piece should get.
type FurniturePriority struct {
	Item            string  `json:"item"`
	Importance      string  `json:"importance"`
	SpaceAllocation float64 `json:"space_allocation"`
}

// BudgetGuidance spending advice scaled by floor area.
type BudgetGuidance struct {
	TotalRecommended float64 `json:"total_recommended"`
	PrioritySpending string  `json:"priority_spending"`
	SavingsTips      string  `json:"savings_tips"`
}

// RoomInsights qualitative analysis for /ai/room-analysis.
type RoomInsights struct {
	SpaceEfficiency      string              `json:"space_efficiency"`
	LayoutSuggestions    []string            `json:"layout_suggestions"`
	FurniturePriorities  []FurniturePriority `json:"furniture_priorities"`
	ColorRecommendations []string            `json:"color_recommendations"`
	BudgetGuidance       BudgetGuidance      `json:"budget_guidance"`
}

const (
	budgetPerSqft  = 15.0
	maxBudgetGuide = 800.0
)

// SpaceEfficiency good above 80 sq ft, challenging above 50.
func SpaceEfficiency(area float64) string {
	switch {
	case area > 80:
		return "good"
	case area > 50:
		return "challenging"
	default:
		return "very_tight"
	}
}

func Insights(area float64) RoomInsights {
	return RoomInsights{
		SpaceEfficiency: SpaceEfficiency(area),
		LayoutSuggestions: []string{
			"Place bed along the longest wall to maximize floor space",
			"Use vertical storage solutions to save floor area",
			"Consider a lofted bed to create study space underneath",
		},
		FurniturePriorities: []FurniturePriority{
			{Item: "bed", Importance: "essential", SpaceAllocation: 0.3},
			{Item: "desk", Importance: "high", SpaceAllocation: 0.2},
			{Item: "storage", Importance: "high", SpaceAllocation: 0.15},
			{Item: "seating", Importance: "medium", SpaceAllocation: 0.1},
		},
		ColorRecommendations: []string{
			"Light colors to make space feel larger",
			"Mirrors to reflect light and create depth",
			"Minimal patterns to avoid visual clutter",
		},
		BudgetGuidance: BudgetGuidance{
			TotalRecommended: math.Min(area*budgetPerSqft, maxBudgetGuide),
			PrioritySpending: "bed and desk (60% of budget)",
			SavingsTips:      "Check local student marketplaces for gently used items",
		},
	}
}

// Package layout holds the rule-based room and placement heuristics. Every
// function here is pure: no I/O, no logging.
package layout

import (
	"strings"

	"github.com/saswath-06/roommait/internal/domain"
)

const (
	WarnOutOfBounds   = "Item is placed outside room boundaries"
	WarnFloatingBed   = "Bed appears to be floating - should be placed on floor"
	WarnNearWall      = "Item may be too close to wall - ensure accessibility"
	SuggestLowerBed   = "Lower bed to floor level"
	SuggestWallMargin = "Move item at least 2 feet from walls for access"

	// MaxBedHeight beds above this y are considered floating.
	MaxBedHeight = 2.0
	// WallClearance minimum distance from the x=0 / z=0 walls.
	WallClearance = 2.0
)

// Validation outcome for one item. Never persisted.
type Validation struct {
	IsValid     bool     `json:"is_valid"`
	Warnings    []string `json:"warnings"`
	Suggestions []string `json:"suggestions"`
}

// IsBed reports whether a model id names a bed (case-insensitive substring).
func IsBed(modelID string) bool {
	return strings.Contains(strings.ToLower(modelID), "bed")
}

// ValidatePlacement checks one item against the room. Only a bounds
// violation makes the item invalid; the other rules are advisory.
func ValidatePlacement(item domain.FurnitureItem, dims domain.RoomDimensions) Validation {
	v := Validation{IsValid: true, Warnings: []string{}, Suggestions: []string{}}
	pos := item.Position

	if pos.X < 0 || pos.X > dims.Width || pos.Z < 0 || pos.Z > dims.Depth {
		v.Warnings = append(v.Warnings, WarnOutOfBounds)
		v.IsValid = false
	}

	if IsBed(item.ModelID) && pos.Y > MaxBedHeight {
		v.Warnings = append(v.Warnings, WarnFloatingBed)
		v.Suggestions = append(v.Suggestions, SuggestLowerBed)
	}

	if pos.X < WallClearance || pos.Z < WallClearance {
		v.Warnings = append(v.Warnings, WarnNearWall)
		v.Suggestions = append(v.Suggestions, SuggestWallMargin)
	}

	return v
}

package domain

import (
	"fmt"
	"math"
)

// Vector3 position/rotation/scale triple. Missing JSON keys decode as 0.
type Vector3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

func (v Vector3) finite() bool {
	return isFinite(v.X) && isFinite(v.Y) && isFinite(v.Z)
}

// RoomDimensions room extents as measured by the client.
type RoomDimensions struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Depth  float64 `json:"depth"`
	Units  string  `json:"units"`
}

const DefaultUnits = "feet"

// Area floor area (width x depth).
func (d RoomDimensions) Area() float64 {
	return d.Width * d.Depth
}

// Volume area x height.
func (d RoomDimensions) Volume() float64 {
	return d.Area() * d.Height
}

// Validate rejects zero, negative and non-finite extents.
func (d RoomDimensions) Validate() error {
	for _, f := range []struct {
		name string
		v    float64
	}{{"width", d.Width}, {"depth", d.Depth}, {"height", d.Height}} {
		if !isFinite(f.v) || f.v <= 0 {
			return fmt.Errorf("dimensions.%s must be a positive number", f.name)
		}
	}
	return nil
}

// SurfaceType kind of a detected plane.
type SurfaceType string

const (
	SurfaceFloor   SurfaceType = "floor"
	SurfaceWall    SurfaceType = "wall"
	SurfaceCeiling SurfaceType = "ceiling"
)

// DetectedSurface a plane reported by the device's scanner.
type DetectedSurface struct {
	SurfaceID   string             `json:"surface_id"`
	SurfaceType SurfaceType        `json:"surface_type"`
	Confidence  float64            `json:"confidence"`
	Bounds      map[string]float64 `json:"bounds"`
	Area        float64            `json:"area"`
}

func (s DetectedSurface) Validate() error {
	switch s.SurfaceType {
	case SurfaceFloor, SurfaceWall, SurfaceCeiling:
	default:
		return fmt.Errorf("surface %q: unknown surface_type %q", s.SurfaceID, s.SurfaceType)
	}
	if !isFinite(s.Confidence) || s.Confidence < 0 || s.Confidence > 1 {
		return fmt.Errorf("surface %q: confidence must be within [0,1]", s.SurfaceID)
	}
	if !isFinite(s.Area) || s.Area < 0 {
		return fmt.Errorf("surface %q: area must not be negative", s.SurfaceID)
	}
	return nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

package domain

import "time"

// LowQualityThreshold scans below this score get rescanning advice.
const LowQualityThreshold = 0.6

// RoomScan stored scan (room_scans table). Immutable once created.
type RoomScan struct {
	ScanID           string            `db:"scan_id"`
	UserID           *string           `db:"user_id"` // provider subject, nil for anonymous scans
	Dimensions       RoomDimensions    `db:"room_dimensions"`
	DetectedSurfaces []DetectedSurface `db:"detected_surfaces"`
	ScanQuality      float64           `db:"scan_quality"`
	Metadata         ScanMetadata      `db:"processing_metadata"`
	CreatedAt        time.Time         `db:"created_at"`
}

// ScanMetadata fields derived once at creation.
type ScanMetadata struct {
	SurfacesCount int     `json:"surfaces_count"`
	RoomArea      float64 `json:"room_area"`
	RoomVolume    float64 `json:"room_volume"`
}

// NewRoomScan fills the derived metadata.
func NewRoomScan(scanID string, userID *string, dims RoomDimensions, surfaces []DetectedSurface, quality float64) *RoomScan {
	if dims.Units == "" {
		dims.Units = DefaultUnits
	}
	if surfaces == nil {
		surfaces = []DetectedSurface{}
	}
	return &RoomScan{
		ScanID:           scanID,
		UserID:           userID,
		Dimensions:       dims,
		DetectedSurfaces: surfaces,
		ScanQuality:      quality,
		Metadata: ScanMetadata{
			SurfacesCount: len(surfaces),
			RoomArea:      dims.Area(),
			RoomVolume:    dims.Volume(),
		},
	}
}

// ScanSummary list row for a user's scans.
type ScanSummary struct {
	ScanID           string         `json:"scan_id"`
	Dimensions       RoomDimensions `json:"room_dimensions"`
	ScanQuality      float64        `json:"scan_quality"`
	SurfacesDetected int            `json:"surfaces_detected"`
	PlacementCount   int            `json:"placement_count"`
	CreatedAt        time.Time      `json:"created_at"`
}

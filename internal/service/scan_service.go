package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/saswath-06/roommait/internal/auth"
	"github.com/saswath-06/roommait/internal/domain"
	"github.com/saswath-06/roommait/internal/events"
	"github.com/saswath-06/roommait/internal/layout"
	"github.com/saswath-06/roommait/internal/metrics"
	"github.com/saswath-06/roommait/internal/repository"
)

const lowQualityMessage = "Scan quality is low. Consider rescanning for better results."

// ScanService stores room scans and answers with a first analysis.
type ScanService interface {
	ProcessScan(ctx context.Context, req ProcessScanRequest) (*ProcessScanResponse, error)
	ListUserScans(ctx context.Context, id auth.Identity) (*ListUserScansResponse, error)
}

type scanService struct {
	scans     repository.ScansRepository
	publisher events.Publisher
	logger    *zap.Logger
}

func NewScanService(scans repository.ScansRepository, publisher events.Publisher, logger *zap.Logger) ScanService {
	return &scanService{scans: scans, publisher: publisher, logger: logger}
}

type ProcessScanRequest struct {
	Identity         auth.Identity
	ScanID           string
	Dimensions       domain.RoomDimensions
	DetectedSurfaces []domain.DetectedSurface
	ScanQuality      float64
}

// ProcessScanResponse Status is "warning" for scans below
// domain.LowQualityThreshold; Message and Recommendations are set then.
type ProcessScanResponse struct {
	Status               string                 `json:"status"`
	Message              string                 `json:"message,omitempty"`
	ScanID               string                 `json:"scan_id"`
	QualityScore         float64                `json:"quality_score"`
	RoomAnalysis         layout.RoomMetrics     `json:"room_analysis"`
	PlacementSuggestions []layout.PlacementHint `json:"placement_suggestions"`
	Recommendations      []string               `json:"recommendations,omitempty"`
}

type ListUserScansResponse struct {
	Scans  []domain.ScanSummary `json:"scans"`
	Count  int                  `json:"count"`
	Status string               `json:"status"`
}

func (req ProcessScanRequest) validate() error {
	if err := req.Dimensions.Validate(); err != nil {
		return asValidation("dimensions", err)
	}
	if !finite(req.ScanQuality) || req.ScanQuality < 0 || req.ScanQuality > 1 {
		return invalid("scan_quality", "must be within [0,1]")
	}
	for i, s := range req.DetectedSurfaces {
		if err := s.Validate(); err != nil {
			return asValidation(fmt.Sprintf("detected_surfaces[%d]", i), err)
		}
	}
	return nil
}

func (s *scanService) ProcessScan(ctx context.Context, req ProcessScanRequest) (*ProcessScanResponse, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	scanID := strings.TrimSpace(req.ScanID)
	if scanID == "" {
		scanID = uuid.NewString()
	}

	// The insert itself detects duplicates so concurrent submissions of one
	// client id resolve to exactly one winner.
	scan := domain.NewRoomScan(scanID, auth.SubjectPtr(req.Identity), req.Dimensions, req.DetectedSurfaces, req.ScanQuality)
	if err := s.scans.CreateScan(ctx, scan); err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return nil, fmt.Errorf("scan %s: %w", scanID, ErrScanExists)
		}
		return nil, fmt.Errorf("failed to store scan: %w", err)
	}
	metrics.RecordScan(scan.ScanQuality, domain.LowQualityThreshold)

	resp := &ProcessScanResponse{
		Status:               "success",
		ScanID:               scan.ScanID,
		QualityScore:         scan.ScanQuality,
		RoomAnalysis:         layout.AnalyzeRoom(scan.Dimensions, len(scan.DetectedSurfaces)),
		PlacementSuggestions: layout.PlacementHints(scan.Dimensions),
	}
	if scan.ScanQuality < domain.LowQualityThreshold {
		resp.Status = "warning"
		resp.Message = lowQualityMessage
		resp.Recommendations = layout.RescanTips()
	}

	s.logger.Info("Room scan processed",
		zap.String("scan_id", scan.ScanID),
		zap.Float64("scan_quality", scan.ScanQuality),
		zap.String("room_category", resp.RoomAnalysis.RoomCategory),
	)

	payload := events.ScanProcessed{
		ScanID:       scan.ScanID,
		ScanQuality:  scan.ScanQuality,
		AreaSqft:     resp.RoomAnalysis.AreaSqft,
		RoomCategory: resp.RoomAnalysis.RoomCategory,
	}
	if scan.UserID != nil {
		payload.UserID = *scan.UserID
	}
	if err := s.publisher.Publish(ctx, events.Event{Type: events.TypeScanProcessed, Data: payload}); err != nil {
		s.logger.Warn("Failed to publish scan event", zap.String("scan_id", scan.ScanID), zap.Error(err))
	}
	return resp, nil
}

// ListUserScans is empty for anonymous callers.
func (s *scanService) ListUserScans(ctx context.Context, id auth.Identity) (*ListUserScansResponse, error) {
	sub, ok := auth.SubjectOf(id)
	if !ok {
		return &ListUserScansResponse{Scans: []domain.ScanSummary{}, Count: 0, Status: "success"}, nil
	}
	scans, err := s.scans.ListScansByUser(ctx, sub)
	if err != nil {
		return nil, fmt.Errorf("failed to list scans: %w", err)
	}
	return &ListUserScansResponse{Scans: scans, Count: len(scans), Status: "success"}, nil
}

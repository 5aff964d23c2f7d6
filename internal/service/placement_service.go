package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/saswath-06/roommait/internal/auth"
	"github.com/saswath-06/roommait/internal/domain"
	"github.com/saswath-06/roommait/internal/events"
	"github.com/saswath-06/roommait/internal/layout"
	"github.com/saswath-06/roommait/internal/metrics"
	"github.com/saswath-06/roommait/internal/repository"
)

const DefaultDesignName = "AR Design"

// PlacementService saves, reads and validates furniture placements.
type PlacementService interface {
	SavePlacement(ctx context.Context, req SavePlacementRequest) (*SavePlacementResponse, error)
	GetPlacement(ctx context.Context, placementID string) (*GetPlacementResponse, error)
	ValidatePlacement(ctx context.Context, req ValidatePlacementRequest) (*ValidatePlacementResponse, error)
}

type placementService struct {
	scans      repository.ScansRepository
	placements repository.PlacementsRepository
	users      repository.UsersRepository
	publisher  events.Publisher
	logger     *zap.Logger
}

func NewPlacementService(
	scans repository.ScansRepository,
	placements repository.PlacementsRepository,
	users repository.UsersRepository,
	publisher events.Publisher,
	logger *zap.Logger,
) PlacementService {
	return &placementService{
		scans:      scans,
		placements: placements,
		users:      users,
		publisher:  publisher,
		logger:     logger,
	}
}

// ============================================
// Request/Response DTOs
// ============================================

type SavePlacementRequest struct {
	Identity       auth.Identity
	ScanID         string
	FurnitureItems []domain.FurnitureItem
	DesignName     string
}

type SavePlacementResponse struct {
	Status             string  `json:"status"`
	PlacementID        string  `json:"placement_id"`
	ItemsPlaced        int     `json:"items_placed"`
	EstimatedTotalCost float64 `json:"estimated_total_cost"`
	DesignName         string  `json:"design_name"`
	Message            string  `json:"message"`
}

// ScanData the scan a placement batch belongs to.
type ScanData struct {
	ScanID           string                   `json:"scan_id"`
	Dimensions       domain.RoomDimensions    `json:"dimensions"`
	DetectedSurfaces []domain.DetectedSurface `json:"detected_surfaces"`
}

// PlacedItem one stored placement row. ItemID is the row id.
type PlacedItem struct {
	ItemID        string         `json:"item_id"`
	ModelID       string         `json:"model_id"`
	Position      domain.Vector3 `json:"position"`
	Rotation      domain.Vector3 `json:"rotation"`
	Scale         domain.Vector3 `json:"scale"`
	SurfaceID     *string        `json:"surface_id"`
	EstimatedCost float64        `json:"estimated_cost"`
}

// GetPlacementResponse ScanData is nil when the scan row is gone.
type GetPlacementResponse struct {
	PlacementID        string       `json:"placement_id"`
	ScanData           *ScanData    `json:"scan_data"`
	FurnitureItems     []PlacedItem `json:"furniture_items"`
	TotalEstimatedCost float64      `json:"total_estimated_cost"`
	DesignName         string       `json:"design_name"`
	CreatedAt          time.Time    `json:"created_at"`
	Status             string       `json:"status"`
}

type ValidatePlacementRequest struct {
	ScanID         string
	FurnitureItems []domain.FurnitureItem
}

type ItemValidation struct {
	ItemID      string   `json:"item_id"`
	ModelID     string   `json:"model_id"`
	IsValid     bool     `json:"is_valid"`
	Warnings    []string `json:"warnings"`
	Suggestions []string `json:"suggestions"`
}

type ValidatePlacementResponse struct {
	OverallValid      bool             `json:"overall_valid"`
	ItemValidations   []ItemValidation `json:"item_validations"`
	GlobalSuggestions []string         `json:"global_suggestions"`
	Status            string           `json:"status"`
}

// ============================================
// Service methods
// ============================================

func validateItems(items []domain.FurnitureItem) error {
	for i, item := range items {
		if err := item.Validate(); err != nil {
			return asValidation(fmt.Sprintf("furniture_items[%d]", i), err)
		}
	}
	return nil
}

func (s *placementService) loadScan(ctx context.Context, scanID string) (*domain.RoomScan, error) {
	if strings.TrimSpace(scanID) == "" {
		return nil, invalid("scan_id", "is required")
	}
	scan, err := s.scans.GetScan(ctx, scanID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("scan %s: %w", scanID, ErrScanNotFound)
		}
		return nil, fmt.Errorf("failed to get scan %s: %w", scanID, err)
	}
	return scan, nil
}

// SavePlacement stores all items as one batch under a fresh placement id.
// Authenticated callers get a users row on first save.
func (s *placementService) SavePlacement(ctx context.Context, req SavePlacementRequest) (*SavePlacementResponse, error) {
	if len(req.FurnitureItems) == 0 {
		return nil, invalid("furniture_items", "must not be empty")
	}
	if err := validateItems(req.FurnitureItems); err != nil {
		return nil, err
	}
	scan, err := s.loadScan(ctx, req.ScanID)
	if err != nil {
		return nil, err
	}

	if a, ok := req.Identity.(auth.Authenticated); ok && a.Claims.Subject != "" {
		_, err := s.users.UpsertBySubject(ctx, domain.User{
			Subject: a.Claims.Subject,
			Email:   a.Claims.Email,
			Name:    a.Claims.Name,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to upsert user: %w", err)
		}
	}

	designName := strings.TrimSpace(req.DesignName)
	if designName == "" {
		designName = DefaultDesignName
	}
	placementID := uuid.NewString()
	userID := auth.SubjectPtr(req.Identity)

	batch := make([]domain.FurniturePlacement, 0, len(req.FurnitureItems))
	for _, item := range req.FurnitureItems {
		p := domain.FurniturePlacement{
			PlacementID:   placementID,
			ScanID:        scan.ScanID,
			UserID:        userID,
			ModelID:       item.ModelID,
			Position:      item.Position,
			Rotation:      item.Rotation,
			Scale:         item.Scale,
			EstimatedCost: layout.EstimateCost(item.ModelID),
			DesignName:    designName,
		}
		if item.SurfaceID != "" {
			surfaceID := item.SurfaceID
			p.SurfaceID = &surfaceID
		}
		batch = append(batch, p)
	}

	if err := s.placements.SavePlacements(ctx, batch); err != nil {
		return nil, fmt.Errorf("failed to save placement %s: %w", placementID, err)
	}
	total := domain.TotalCost(batch)
	metrics.RecordPlacementItems(len(batch))

	s.logger.Info("Furniture placement saved",
		zap.String("placement_id", placementID),
		zap.String("scan_id", scan.ScanID),
		zap.Int("items", len(batch)),
		zap.String("estimated_total_cost", total.StringFixed(2)),
	)

	payload := events.PlacementSaved{
		PlacementID:   placementID,
		ScanID:        scan.ScanID,
		ItemsPlaced:   len(batch),
		EstimatedCost: total.StringFixed(2),
	}
	if userID != nil {
		payload.UserID = *userID
	}
	if err := s.publisher.Publish(ctx, events.Event{Type: events.TypePlacementSaved, Data: payload}); err != nil {
		s.logger.Warn("Failed to publish placement event", zap.String("placement_id", placementID), zap.Error(err))
	}

	return &SavePlacementResponse{
		Status:             "success",
		PlacementID:        placementID,
		ItemsPlaced:        len(batch),
		EstimatedTotalCost: money(total),
		DesignName:         designName,
		Message:            "Furniture placement saved successfully",
	}, nil
}

func (s *placementService) GetPlacement(ctx context.Context, placementID string) (*GetPlacementResponse, error) {
	if strings.TrimSpace(placementID) == "" {
		return nil, invalid("placement_id", "is required")
	}
	rows, err := s.placements.ListPlacements(ctx, placementID)
	if err != nil {
		return nil, fmt.Errorf("failed to list placement %s: %w", placementID, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("placement %s: %w", placementID, ErrPlacementNotFound)
	}

	resp := &GetPlacementResponse{
		PlacementID:        placementID,
		FurnitureItems:     make([]PlacedItem, 0, len(rows)),
		TotalEstimatedCost: money(domain.TotalCost(rows)),
		DesignName:         rows[0].DesignName,
		CreatedAt:          rows[0].CreatedAt,
		Status:             "success",
	}
	for _, p := range rows {
		resp.FurnitureItems = append(resp.FurnitureItems, PlacedItem{
			ItemID:        strconv.FormatInt(p.ID, 10),
			ModelID:       p.ModelID,
			Position:      p.Position,
			Rotation:      p.Rotation,
			Scale:         p.Scale,
			SurfaceID:     p.SurfaceID,
			EstimatedCost: money(p.EstimatedCost),
		})
	}

	scan, err := s.scans.GetScan(ctx, rows[0].ScanID)
	switch {
	case err == nil:
		resp.ScanData = &ScanData{
			ScanID:           scan.ScanID,
			Dimensions:       scan.Dimensions,
			DetectedSurfaces: scan.DetectedSurfaces,
		}
	case errors.Is(err, repository.ErrNotFound):
		s.logger.Warn("Placement references missing scan",
			zap.String("placement_id", placementID), zap.String("scan_id", rows[0].ScanID))
	default:
		return nil, fmt.Errorf("failed to get scan %s: %w", rows[0].ScanID, err)
	}
	return resp, nil
}

// ValidatePlacement runs the per-item checks and the room-level advisor.
// Overall validity is the conjunction of item validity.
func (s *placementService) ValidatePlacement(ctx context.Context, req ValidatePlacementRequest) (*ValidatePlacementResponse, error) {
	if err := validateItems(req.FurnitureItems); err != nil {
		return nil, err
	}
	scan, err := s.loadScan(ctx, req.ScanID)
	if err != nil {
		return nil, err
	}

	resp := &ValidatePlacementResponse{
		OverallValid:      true,
		ItemValidations:   make([]ItemValidation, 0, len(req.FurnitureItems)),
		GlobalSuggestions: layout.LayoutSuggestions(req.FurnitureItems, scan.Dimensions),
		Status:            "success",
	}
	for _, item := range req.FurnitureItems {
		v := layout.ValidatePlacement(item, scan.Dimensions)
		resp.OverallValid = resp.OverallValid && v.IsValid
		resp.ItemValidations = append(resp.ItemValidations, ItemValidation{
			ItemID:      item.ItemID,
			ModelID:     item.ModelID,
			IsValid:     v.IsValid,
			Warnings:    v.Warnings,
			Suggestions: v.Suggestions,
		})
	}
	return resp, nil
}

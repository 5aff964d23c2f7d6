package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/saswath-06/roommait/internal/auth"
	"github.com/saswath-06/roommait/internal/domain"
	"github.com/saswath-06/roommait/internal/repository"
)

// UserService profile and saved designs for authenticated users.
type UserService interface {
	GetProfile(ctx context.Context, claims auth.Claims) (*ProfileResponse, error)
	ListDesigns(ctx context.Context, claims auth.Claims) (*ListDesignsResponse, error)
	CreateDesign(ctx context.Context, claims auth.Claims, req CreateDesignRequest) (*CreateDesignResponse, error)
}

type userService struct {
	users      repository.UsersRepository
	designs    repository.DesignsRepository
	placements repository.PlacementsRepository
	logger     *zap.Logger
}

func NewUserService(
	users repository.UsersRepository,
	designs repository.DesignsRepository,
	placements repository.PlacementsRepository,
	logger *zap.Logger,
) UserService {
	return &userService{users: users, designs: designs, placements: placements, logger: logger}
}

type ProfileResponse struct {
	UserID    string    `json:"user_id"`
	Subject   string    `json:"auth0_user_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	Status    string    `json:"status"`
}

type DesignView struct {
	DesignID    string    `json:"design_id"`
	ScanID      string    `json:"scan_id"`
	PlacementID string    `json:"placement_id"`
	DesignName  string    `json:"design_name"`
	TotalCost   float64   `json:"total_cost"`
	CreatedAt   time.Time `json:"created_at"`
}

type ListDesignsResponse struct {
	Designs []DesignView `json:"designs"`
	Count   int          `json:"count"`
	Status  string       `json:"status"`
}

type CreateDesignRequest struct {
	PlacementID string `json:"placement_id"`
	DesignName  string `json:"design_name"`
}

type CreateDesignResponse struct {
	Design DesignView `json:"design"`
	Status string     `json:"status"`
}

func designView(d domain.RoomDesign) DesignView {
	return DesignView{
		DesignID:    d.DesignID,
		ScanID:      d.ScanID,
		PlacementID: d.PlacementID,
		DesignName:  d.DesignName,
		TotalCost:   money(d.TotalCost),
		CreatedAt:   d.CreatedAt,
	}
}

// GetProfile creates the users row on first read.
func (s *userService) GetProfile(ctx context.Context, claims auth.Claims) (*ProfileResponse, error) {
	u, err := s.users.UpsertBySubject(ctx, domain.User{Subject: claims.Subject, Email: claims.Email, Name: claims.Name})
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	return &ProfileResponse{
		UserID:    u.UserID,
		Subject:   u.Subject,
		Email:     u.Email,
		Name:      u.Name,
		CreatedAt: u.CreatedAt,
		Status:    "success",
	}, nil
}

func (s *userService) ListDesigns(ctx context.Context, claims auth.Claims) (*ListDesignsResponse, error) {
	designs, err := s.designs.ListDesignsByUser(ctx, claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("failed to list designs: %w", err)
	}
	views := make([]DesignView, 0, len(designs))
	for _, d := range designs {
		views = append(views, designView(d))
	}
	return &ListDesignsResponse{Designs: views, Count: len(views), Status: "success"}, nil
}

// CreateDesign names a saved placement batch. Batches owned by another user
// are reported as not found.
func (s *userService) CreateDesign(ctx context.Context, claims auth.Claims, req CreateDesignRequest) (*CreateDesignResponse, error) {
	placementID := strings.TrimSpace(req.PlacementID)
	if placementID == "" {
		return nil, invalid("placement_id", "is required")
	}
	rows, err := s.placements.ListPlacements(ctx, placementID)
	if err != nil {
		return nil, fmt.Errorf("failed to list placement %s: %w", placementID, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("placement %s: %w", placementID, ErrPlacementNotFound)
	}
	if owner := rows[0].UserID; owner != nil && *owner != claims.Subject {
		return nil, fmt.Errorf("placement %s: %w", placementID, ErrPlacementNotFound)
	}

	if _, err := s.users.UpsertBySubject(ctx, domain.User{Subject: claims.Subject, Email: claims.Email, Name: claims.Name}); err != nil {
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}

	name := strings.TrimSpace(req.DesignName)
	if name == "" {
		name = rows[0].DesignName
	}
	if name == "" {
		name = DefaultDesignName
	}
	d := &domain.RoomDesign{
		DesignID:    uuid.NewString(),
		UserID:      claims.Subject,
		ScanID:      rows[0].ScanID,
		PlacementID: placementID,
		DesignName:  name,
		TotalCost:   domain.TotalCost(rows),
	}
	if err := s.designs.CreateDesign(ctx, d); err != nil {
		return nil, err
	}
	s.logger.Info("Room design created",
		zap.String("design_id", d.DesignID),
		zap.String("placement_id", placementID),
	)
	return &CreateDesignResponse{Design: designView(*d), Status: "success"}, nil
}

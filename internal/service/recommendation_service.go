package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/saswath-06/roommait/internal/auth"
	"github.com/saswath-06/roommait/internal/catalog"
	"github.com/saswath-06/roommait/internal/domain"
	"github.com/saswath-06/roommait/internal/layout"
	"github.com/saswath-06/roommait/internal/metrics"
	"github.com/saswath-06/roommait/internal/repository"
)

const (
	defaultStylePreference = "modern"
	defaultRoomType        = "dorm"
)

// RecommendationService product search, room analysis and style advice.
type RecommendationService interface {
	SearchProducts(ctx context.Context, req ProductSearchRequest) (*ProductSearchResponse, error)
	AnalyzeRoom(ctx context.Context, req RoomAnalysisRequest) (*RoomAnalysisResponse, error)
	StyleSuggestions(ctx context.Context, roomSize, budget float64) (*StyleSuggestionsResponse, error)
}

type recommendationService struct {
	generator *catalog.Generator
	searches  repository.SearchesRepository
	logger    *zap.Logger
}

func NewRecommendationService(generator *catalog.Generator, searches repository.SearchesRepository, logger *zap.Logger) RecommendationService {
	return &recommendationService{generator: generator, searches: searches, logger: logger}
}

type ProductSearchRequest struct {
	Identity         auth.Identity
	RoomContext      domain.RoomContext
	SelectedCategory string
	Subcategory      string
	SearchIntent     string
	MaxResults       int
}

type ProductSearchResponse struct {
	Recommendations []domain.ProductRecommendation `json:"recommendations"`
	SearchContext   domain.RoomContext             `json:"search_context"`
	TotalResults    int                            `json:"total_results"`
	Status          string                         `json:"status"`
}

type RoomAnalysisRequest struct {
	Dimensions       domain.RoomDimensions
	DetectedSurfaces int
	RoomType         string
}

type CalculatedMetrics struct {
	AreaSqft          float64         `json:"area_sqft"`
	VolumeCuft        float64         `json:"volume_cuft"`
	SpaceCategory     string          `json:"space_category"`
	FurnitureCapacity layout.Capacity `json:"furniture_capacity"`
}

type RoomAnalysisResponse struct {
	RoomAnalysis      layout.RoomInsights `json:"room_analysis"`
	CalculatedMetrics CalculatedMetrics   `json:"calculated_metrics"`
	RoomType          string              `json:"room_type"`
	Status            string              `json:"status"`
}

type StyleSuggestionsResponse struct {
	StyleSuggestions []domain.StyleSuggestion `json:"style_suggestions"`
	RoomSize         float64                  `json:"room_size"`
	BudgetRange      float64                  `json:"budget_range"`
	Status           string                   `json:"status"`
}

// withDefaults fills the optional room context fields the way clients expect
// to see them echoed back.
func withDefaults(rc domain.RoomContext) domain.RoomContext {
	if rc.Dimensions == nil {
		rc.Dimensions = map[string]float64{}
	}
	if rc.StylePreference == "" {
		rc.StylePreference = defaultStylePreference
	}
	if rc.BudgetRange == nil {
		b := domain.DefaultBudget
		rc.BudgetRange = &b
	}
	if rc.ExistingItems == nil {
		rc.ExistingItems = []string{}
	}
	if rc.RoomType == "" {
		rc.RoomType = defaultRoomType
	}
	return rc
}

func (req ProductSearchRequest) validate() error {
	if strings.TrimSpace(req.SelectedCategory) == "" {
		return invalid("selected_category", "is required")
	}
	if strings.TrimSpace(req.SearchIntent) == "" {
		return invalid("search_intent", "is required")
	}
	if req.MaxResults < 0 {
		return invalid("max_results", "must not be negative")
	}
	if b := req.RoomContext.BudgetRange; b != nil {
		if err := b.Validate(); err != nil {
			return asValidation("room_context.budget_range", err)
		}
	}
	for k, v := range req.RoomContext.Dimensions {
		if !finite(v) || v <= 0 {
			return invalid("room_context.dimensions."+k, "must be a positive number")
		}
	}
	return nil
}

// SearchProducts logs the search, filters the catalog, then records the
// result count on the log row. Analytics failures never fail the search.
func (s *recommendationService) SearchProducts(ctx context.Context, req ProductSearchRequest) (*ProductSearchResponse, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	rc := withDefaults(req.RoomContext)

	logRow := &domain.ProductSearch{
		UserID:        auth.SubjectPtr(req.Identity),
		SearchQuery:   req.SearchIntent,
		Category:      req.SelectedCategory,
		RoomContext:   rc,
		ExistingItems: rc.ExistingItems,
	}
	searchID, logErr := s.searches.LogSearch(ctx, logRow)
	if logErr != nil {
		s.logger.Warn("Failed to log product search", zap.String("category", req.SelectedCategory), zap.Error(logErr))
	}

	recs, err := s.generator.Recommend(ctx, catalog.Query{
		Category:   req.SelectedCategory,
		Budget:     rc.Budget(),
		RoomArea:   rc.FloorArea(),
		MaxResults: catalog.ClampMaxResults(req.MaxResults),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate recommendations: %w", err)
	}
	metrics.RecordRecommendations(req.SelectedCategory, len(recs))

	if logErr == nil {
		if err := s.searches.UpdateResultsCount(ctx, searchID, len(recs)); err != nil {
			s.logger.Warn("Failed to update search results count", zap.Int64("search_id", searchID), zap.Error(err))
		}
	}

	return &ProductSearchResponse{
		Recommendations: recs,
		SearchContext:   rc,
		TotalResults:    len(recs),
		Status:          "success",
	}, nil
}

func (s *recommendationService) AnalyzeRoom(_ context.Context, req RoomAnalysisRequest) (*RoomAnalysisResponse, error) {
	if err := req.Dimensions.Validate(); err != nil {
		return nil, asValidation("dimensions", err)
	}
	if req.DetectedSurfaces < 0 {
		return nil, invalid("detected_surfaces", "must not be negative")
	}
	roomType := req.RoomType
	if roomType == "" {
		roomType = defaultRoomType
	}

	area := req.Dimensions.Area()
	return &RoomAnalysisResponse{
		RoomAnalysis: layout.Insights(area),
		CalculatedMetrics: CalculatedMetrics{
			AreaSqft:          layout.Round1(area),
			VolumeCuft:        layout.Round1(req.Dimensions.Volume()),
			SpaceCategory:     layout.SizeCategory(area),
			FurnitureCapacity: layout.EstimateCapacity(area),
		},
		RoomType: roomType,
		Status:   "success",
	}, nil
}

func (s *recommendationService) StyleSuggestions(ctx context.Context, roomSize, budget float64) (*StyleSuggestionsResponse, error) {
	if !finite(roomSize) || roomSize <= 0 {
		return nil, invalid("room_size", "must be a positive number")
	}
	if !finite(budget) || budget < 0 {
		return nil, invalid("budget", "must be a non-negative number")
	}
	styles, err := s.generator.StyleSuggestions(ctx, roomSize, budget)
	if err != nil {
		return nil, fmt.Errorf("failed to suggest styles: %w", err)
	}
	return &StyleSuggestionsResponse{
		StyleSuggestions: styles,
		RoomSize:         roomSize,
		BudgetRange:      budget,
		Status:           "success",
	}, nil
}

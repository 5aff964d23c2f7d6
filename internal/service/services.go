package service

import (
	"go.uber.org/zap"

	"github.com/saswath-06/roommait/internal/catalog"
	"github.com/saswath-06/roommait/internal/events"
	"github.com/saswath-06/roommait/internal/repository"
)

// Services every service the HTTP layer needs.
type Services struct {
	Scans           ScanService
	Placements      PlacementService
	Recommendations RecommendationService
	Models          ModelService
	Users           UserService
}

func NewServices(store *repository.Store, generator *catalog.Generator, publisher events.Publisher, logger *zap.Logger) *Services {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &Services{
		Scans:           NewScanService(store.Scans, publisher, logger),
		Placements:      NewPlacementService(store.Scans, store.Placements, store.Users, publisher, logger),
		Recommendations: NewRecommendationService(generator, store.Searches, logger),
		Models:          NewModelService(store.Models, logger),
		Users:           NewUserService(store.Users, store.Designs, store.Placements, logger),
	}
}

package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/saswath-06/roommait/internal/domain"
	"github.com/saswath-06/roommait/internal/repository"
)

// ModelService the generic furniture model catalog.
type ModelService interface {
	ListModels(ctx context.Context, category string) (*ListModelsResponse, error)
	SeedDefaults(ctx context.Context) (int, error)
}

type modelService struct {
	models repository.GenericModelsRepository
	logger *zap.Logger
}

func NewModelService(models repository.GenericModelsRepository, logger *zap.Logger) ModelService {
	return &modelService{models: models, logger: logger}
}

type ListModelsResponse struct {
	Models []domain.GenericModel `json:"models"`
	Count  int                   `json:"count"`
	Status string                `json:"status"`
}

func (s *modelService) ListModels(ctx context.Context, category string) (*ListModelsResponse, error) {
	models, err := s.models.ListModels(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("failed to list models: %w", err)
	}
	return &ListModelsResponse{Models: models, Count: len(models), Status: "success"}, nil
}

func (s *modelService) SeedDefaults(ctx context.Context) (int, error) {
	n, err := repository.SeedGenericModels(ctx, s.models)
	if err != nil {
		return 0, err
	}
	s.logger.Info("Seeded generic models", zap.Int("count", n))
	return n, nil
}

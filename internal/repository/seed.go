package repository

import (
	"context"
	"fmt"

	"github.com/saswath-06/roommait/internal/domain"
)

func genericModel(id, category, sub, name, desc string, w, d, h float64) domain.GenericModel {
	return domain.GenericModel{
		ModelID:      id,
		Category:     category,
		Subcategory:  sub,
		DisplayName:  name,
		Description:  desc,
		ModelURL:     "/models/" + id + ".glb",
		ThumbnailURL: "/images/" + id + "-thumb.jpg",
		Width:        w,
		Depth:        d,
		Height:       h,
		PolygonCount: 3000,
		FileSizeMB:   2.5,
		IsActive:     true,
	}
}

// DefaultGenericModels the starter dorm furniture set.
func DefaultGenericModels() []domain.GenericModel {
	return []domain.GenericModel{
		genericModel("generic-bed-twin", "sleeping", "twin-bed", "Twin Bed", "Standard twin bed for dorms", 38, 75, 20),
		genericModel("generic-desk-study", "workspace", "desk", "Study Desk", "Computer desk for studying", 48, 24, 30),
		genericModel("generic-dresser", "storage", "dresser", "Dresser", "Clothing storage dresser", 36, 18, 32),
		genericModel("generic-nightstand", "storage", "nightstand", "Nightstand", "Bedside storage table", 18, 16, 24),
		genericModel("generic-floor-lamp", "lighting", "floor-lamp", "Floor Lamp", "Standing room lighting", 12, 12, 60),
		genericModel("generic-mini-fridge", "appliances", "refrigerator", "Mini Fridge", "Compact dorm refrigerator", 19, 20, 33),
		genericModel("generic-bean-bag", "seating", "casual-chair", "Bean Bag Chair", "Casual seating for relaxation", 36, 36, 30),
		genericModel("generic-plant-pot", "decor", "plant", "Plant Pot", "Decorative plant container", 8, 8, 12),
	}
}

// SeedGenericModels upserts the default set.
func SeedGenericModels(ctx context.Context, repo GenericModelsRepository) (int, error) {
	models := DefaultGenericModels()
	for _, m := range models {
		if err := repo.UpsertModel(ctx, m); err != nil {
			return 0, fmt.Errorf("failed to seed model %s: %w", m.ModelID, err)
		}
	}
	return len(models), nil
}

package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// FurnitureItem one model instance as sent by the client.
type FurnitureItem struct {
	ItemID    string  `json:"item_id"`
	ModelID   string  `json:"model_id"`
	Position  Vector3 `json:"position"`
	Rotation  Vector3 `json:"rotation"`
	Scale     Vector3 `json:"scale"`
	SurfaceID string  `json:"surface_id,omitempty"`
}

func (f FurnitureItem) Validate() error {
	if strings.TrimSpace(f.ModelID) == "" {
		return fmt.Errorf("item %q: model_id is required", f.ItemID)
	}
	if !f.Position.finite() || !f.Rotation.finite() || !f.Scale.finite() {
		return fmt.Errorf("item %q: transform contains a non-finite value", f.ItemID)
	}
	return nil
}

// FurniturePlacement stored placement row (furniture_placements table).
// Rows of one save share PlacementID.
type FurniturePlacement struct {
	ID            int64           `db:"id"`
	PlacementID   string          `db:"placement_id"`
	ScanID        string          `db:"scan_id"`
	UserID        *string         `db:"user_id"`
	ModelID       string          `db:"model_id"`
	Position      Vector3         `db:"position"`
	Rotation      Vector3         `db:"rotation"`
	Scale         Vector3         `db:"scale"`
	SurfaceID     *string         `db:"surface_id"`
	EstimatedCost decimal.Decimal `db:"estimated_cost"`
	DesignName    string          `db:"design_name"`
	CreatedAt     time.Time       `db:"created_at"`
}

// TotalCost sums estimated costs of a batch.
func TotalCost(placements []FurniturePlacement) decimal.Decimal {
	total := decimal.Zero
	for _, p := range placements {
		total = total.Add(p.EstimatedCost)
	}
	return total
}

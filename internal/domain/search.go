package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductSearch analytics row (product_searches table).
type ProductSearch struct {
	SearchID      int64       `db:"search_id"`
	UserID        *string     `db:"user_id"`
	SearchQuery   string      `db:"search_query"`
	Category      string      `db:"category"`
	RoomContext   RoomContext `db:"room_context"`
	ExistingItems []string    `db:"existing_items"`
	ResultsCount  int         `db:"results_count"`
	CreatedAt     time.Time   `db:"created_at"`
}

// RoomDesign a named, saved placement batch (room_designs table).
type RoomDesign struct {
	DesignID    string          `db:"design_id" json:"design_id"`
	UserID      string          `db:"user_id" json:"user_id"`
	ScanID      string          `db:"scan_id" json:"scan_id"`
	PlacementID string          `db:"placement_id" json:"placement_id"`
	DesignName  string          `db:"design_name" json:"design_name"`
	TotalCost   decimal.Decimal `db:"total_cost" json:"total_cost"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
}

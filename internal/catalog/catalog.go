// Package catalog supplies purchasable products and decor styles, and turns
// them into budget-filtered recommendations.
package catalog

import (
	"context"

	"github.com/saswath-06/roommait/internal/domain"
)

// Lookup source of catalog entries. The recommendation logic only depends
// on this interface, so the embedded table and a retail API are
// interchangeable.
type Lookup interface {
	// Products candidates for a category; unknown categories yield an empty
	// slice, not an error.
	Products(ctx context.Context, category string) ([]domain.Product, error)
	Styles(ctx context.Context) ([]domain.Style, error)
}

// Furniture categories understood by the static catalog.
const (
	CategorySeating  = "seating"
	CategoryStorage  = "storage"
	CategorySleeping = "sleeping"
	CategoryLighting = "lighting"
	CategoryDecor    = "decor"
	CategoryStudy    = "study"
)

package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/saswath-06/roommait/internal/domain"
)

const (
	DefaultMaxResults = 10
	MaxResultsLimit   = 50
	maxStyles         = 3
	smallRoomSqft     = 60.0
	smallRoomMarker   = "Small spaces"
)

// Query a product search after request validation.
type Query struct {
	Category   string
	Budget     domain.BudgetRange
	RoomArea   float64
	MaxResults int
}

// Generator filters catalog entries for a room.
type Generator struct {
	lookup Lookup
}

func NewGenerator(lookup Lookup) *Generator {
	return &Generator{lookup: lookup}
}

// ClampMaxResults applies the default and upper bound to a requested count.
func ClampMaxResults(n int) int {
	if n <= 0 {
		return DefaultMaxResults
	}
	if n > MaxResultsLimit {
		return MaxResultsLimit
	}
	return n
}

// Recommend keeps products priced inside the budget (inclusive), in catalog
// order, truncated to q.MaxResults.
func (g *Generator) Recommend(ctx context.Context, q Query) ([]domain.ProductRecommendation, error) {
	products, err := g.lookup.Products(ctx, q.Category)
	if err != nil {
		return nil, fmt.Errorf("catalog lookup for %q: %w", q.Category, err)
	}

	limit := ClampMaxResults(q.MaxResults)
	out := make([]domain.ProductRecommendation, 0, min(limit, len(products)))
	for _, p := range products {
		if len(out) >= limit {
			break
		}
		if !q.Budget.Contains(p.Price) {
			continue
		}
		out = append(out, toRecommendation(p, q))
	}
	return out, nil
}

func toRecommendation(p domain.Product, q Query) domain.ProductRecommendation {
	specs := p.Specifications
	if specs == nil {
		specs = map[string]any{}
	}
	return domain.ProductRecommendation{
		ProductName:    p.ProductName,
		Price:          p.Price,
		SalePrice:      p.SalePrice,
		Rating:         p.Rating,
		ReviewCount:    p.ReviewCount,
		ImageURL:       p.ImageURL,
		Store:          p.Store,
		ProductURL:     p.ProductURL,
		AffiliateLink:  p.AffiliateLink,
		WhyRecommended: RenderRationale(p.WhyTemplate, q.RoomArea, q.Budget.Max),
		Shipping:       p.Shipping,
		InStock:        p.InStock,
		Specifications: specs,
	}
}

// RenderRationale substitutes {room_size} and {budget_max}, both rounded to
// whole numbers.
func RenderRationale(tmpl string, roomArea, budgetMax float64) string {
	return strings.NewReplacer(
		"{room_size}", fmt.Sprintf("%.0f", roomArea),
		"{budget_max}", fmt.Sprintf("%.0f", budgetMax),
	).Replace(tmpl)
}

// StyleSuggestions rooms under 60 sq ft only get styles meant for small
// spaces. At most three are returned.
func (g *Generator) StyleSuggestions(ctx context.Context, roomSize, budget float64) ([]domain.StyleSuggestion, error) {
	styles, err := g.lookup.Styles(ctx)
	if err != nil {
		return nil, fmt.Errorf("style lookup: %w", err)
	}

	out := make([]domain.StyleSuggestion, 0, maxStyles)
	for _, s := range styles {
		if len(out) >= maxStyles {
			break
		}
		if roomSize < smallRoomSqft && !strings.Contains(s.BestFor, smallRoomMarker) {
			continue
		}
		fit := s.Budget.FitBelow
		if budget >= s.Budget.Threshold {
			fit = s.Budget.FitAbove
		}
		out = append(out, domain.StyleSuggestion{
			StyleName:    s.StyleName,
			Description:  s.Description,
			BestFor:      s.BestFor,
			KeyPieces:    s.KeyPieces,
			ColorPalette: s.ColorPalette,
			BudgetFit:    fit,
			Difficulty:   s.Difficulty,
		})
	}
	return out, nil
}

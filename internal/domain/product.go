package domain

import (
	"fmt"
	"math"
)

// BudgetRange inclusive price window.
type BudgetRange struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

// DefaultBudget used when the client sends none.
var DefaultBudget = BudgetRange{Min: 50, Max: 200}

func (b BudgetRange) Contains(price float64) bool {
	return price >= b.Min && price <= b.Max
}

func (b BudgetRange) Validate() error {
	if math.IsNaN(b.Min) || math.IsNaN(b.Max) || b.Min < 0 {
		return fmt.Errorf("budget_range.min must be a non-negative number")
	}
	if b.Min > b.Max {
		return fmt.Errorf("budget_range.min must not exceed budget_range.max")
	}
	return nil
}

// RoomContext what the client knows about the room when searching.
type RoomContext struct {
	Dimensions      map[string]float64 `json:"dimensions"`
	StylePreference string             `json:"style_preference"`
	BudgetRange     *BudgetRange       `json:"budget_range,omitempty"`
	ExistingItems   []string           `json:"existing_items"`
	RoomType        string             `json:"room_type"`
}

// Budget returns the requested range or DefaultBudget.
func (c RoomContext) Budget() BudgetRange {
	if c.BudgetRange == nil {
		return DefaultBudget
	}
	return *c.BudgetRange
}

// FloorArea width x depth, defaulting each missing side to 10.
func (c RoomContext) FloorArea() float64 {
	w, ok := c.Dimensions["width"]
	if !ok {
		w = 10
	}
	d, ok := c.Dimensions["depth"]
	if !ok {
		d = 10
	}
	return w * d
}

// Product catalog candidate before filtering. WhyTemplate may reference
// {room_size} and {budget_max}.
type Product struct {
	ProductName    string         `json:"product_name" yaml:"product_name"`
	Price          float64        `json:"price" yaml:"price"`
	SalePrice      *float64       `json:"sale_price,omitempty" yaml:"sale_price"`
	Rating         float64        `json:"rating" yaml:"rating"`
	ReviewCount    int            `json:"review_count" yaml:"review_count"`
	ImageURL       string         `json:"image_url" yaml:"image_url"`
	Store          string         `json:"store" yaml:"store"`
	ProductURL     string         `json:"product_url" yaml:"product_url"`
	AffiliateLink  *string        `json:"affiliate_link,omitempty" yaml:"affiliate_link"`
	WhyTemplate    string         `json:"why_recommended" yaml:"why_recommended"`
	Shipping       string         `json:"shipping" yaml:"shipping"`
	InStock        bool           `json:"in_stock" yaml:"in_stock"`
	Specifications map[string]any `json:"specifications" yaml:"specifications"`
}

// ProductRecommendation product returned to the client.
type ProductRecommendation struct {
	ProductName    string         `json:"product_name"`
	Price          float64        `json:"price"`
	SalePrice      *float64       `json:"sale_price,omitempty"`
	Rating         float64        `json:"rating"`
	ReviewCount    int            `json:"review_count"`
	ImageURL       string         `json:"image_url"`
	Store          string         `json:"store"`
	ProductURL     string         `json:"product_url"`
	AffiliateLink  *string        `json:"affiliate_link,omitempty"`
	WhyRecommended string         `json:"why_recommended"`
	Shipping       string         `json:"shipping"`
	InStock        bool           `json:"in_stock"`
	Specifications map[string]any `json:"specifications"`
}

// Style catalog entry. Budget fit is FitAbove when budget >= Threshold.
type Style struct {
	StyleName    string   `yaml:"style_name"`
	Description  string   `yaml:"description"`
	BestFor      string   `yaml:"best_for"`
	KeyPieces    []string `yaml:"key_pieces"`
	ColorPalette []string `yaml:"color_palette"`
	Difficulty   string   `yaml:"difficulty"`
	Budget       struct {
		Threshold float64 `yaml:"threshold"`
		FitAbove  string  `yaml:"fit_above"`
		FitBelow  string  `yaml:"fit_below"`
	} `yaml:"budget"`
}

// StyleSuggestion style evaluated against a budget.
type StyleSuggestion struct {
	StyleName    string   `json:"style_name"`
	Description  string   `json:"description"`
	BestFor      string   `json:"best_for"`
	KeyPieces    []string `json:"key_pieces"`
	ColorPalette []string `json:"color_palette"`
	BudgetFit    string   `json:"budget_fit"`
	Difficulty   string   `json:"difficulty"`
}

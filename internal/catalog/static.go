package catalog

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/saswath-06/roommait/internal/domain"
)

//go:embed catalog.yaml
var defaultCatalogYAML []byte

type catalogFile struct {
	Products map[string][]domain.Product `yaml:"products"`
	Styles   []domain.Style              `yaml:"styles"`
}

// StaticCatalog in-memory sample data; stands in for a retail search API.
type StaticCatalog struct {
	products map[string][]domain.Product
	styles   []domain.Style
}

var _ Lookup = (*StaticCatalog)(nil)

// NewStaticCatalog parses a catalog document.
func NewStaticCatalog(doc []byte) (*StaticCatalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(doc, &f); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	products := make(map[string][]domain.Product, len(f.Products))
	for category, items := range f.Products {
		products[strings.ToLower(category)] = items
	}
	return &StaticCatalog{products: products, styles: f.Styles}, nil
}

// DefaultStaticCatalog the embedded sample catalog.
func DefaultStaticCatalog() (*StaticCatalog, error) {
	return NewStaticCatalog(defaultCatalogYAML)
}

func (c *StaticCatalog) Products(ctx context.Context, category string) ([]domain.Product, error) {
	items := c.products[strings.ToLower(strings.TrimSpace(category))]
	out := make([]domain.Product, len(items))
	copy(out, items)
	return out, nil
}

func (c *StaticCatalog) Styles(ctx context.Context) ([]domain.Style, error) {
	out := make([]domain.Style, len(c.styles))
	copy(out, c.styles)
	return out, nil
}

// Categories lists categories that have at least one product.
func (c *StaticCatalog) Categories() []string {
	out := make([]string, 0, len(c.products))
	for k, v := range c.products {
		if len(v) > 0 {
			out = append(out, k)
		}
	}
	return out
}

package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/saswath-06/roommait/internal/domain"
)

type retailSearchRequest struct {
	Category string `json:"category"`
}

type retailSearchResponse struct {
	Products []domain.Product `json:"products"`
}

// RetailClient product lookup against a retail search API. Styles are not
// offered by the retail side and come from the fallback lookup.
type RetailClient struct {
	httpClient *resty.Client
	styles     Lookup
	logger     *zap.Logger
}

var _ Lookup = (*RetailClient)(nil)

// NewRetailClient baseURL is the search service root; apiKey is optional.
func NewRetailClient(baseURL, apiKey string, timeout time.Duration, styles Lookup, logger *zap.Logger) *RetailClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetRetryCount(2).
		SetRetryWaitTime(200 * time.Millisecond).
		SetRetryMaxWaitTime(2 * time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	if apiKey != "" {
		client.SetHeader("X-API-Key", apiKey)
	}
	return &RetailClient{httpClient: client, styles: styles, logger: logger}
}

func (c *RetailClient) Products(ctx context.Context, category string) ([]domain.Product, error) {
	var out retailSearchResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(retailSearchRequest{Category: category}).
		SetResult(&out).
		Post("/products/search")
	if err != nil {
		c.logger.Error("Retail search call failed", zap.String("category", category), zap.Error(err))
		return nil, fmt.Errorf("failed to call retail search: %w", err)
	}
	if resp.IsError() {
		c.logger.Error("Retail search returned error",
			zap.String("category", category),
			zap.Int("status_code", resp.StatusCode()),
		)
		return nil, fmt.Errorf("retail search error: status %d", resp.StatusCode())
	}

	c.logger.Debug("Retail search ok", zap.String("category", category), zap.Int("product_count", len(out.Products)))
	if out.Products == nil {
		return []domain.Product{}, nil
	}
	return out.Products, nil
}

func (c *RetailClient) Styles(ctx context.Context) ([]domain.Style, error) {
	if c.styles == nil {
		return []domain.Style{}, nil
	}
	return c.styles.Styles(ctx)
}

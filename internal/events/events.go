// Package events fans domain events out to MQTT subscribers.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	TypeScanProcessed  = "scan.processed"
	TypePlacementSaved = "placement.saved"
)

// Event envelope published for every domain event.
type Event struct {
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`
	Data       any       `json:"data"`
}

// ScanProcessed payload of scan.processed.
type ScanProcessed struct {
	ScanID       string  `json:"scan_id"`
	UserID       string  `json:"user_id,omitempty"`
	ScanQuality  float64 `json:"scan_quality"`
	AreaSqft     float64 `json:"area_sqft"`
	RoomCategory string  `json:"room_category"`
}

// PlacementSaved payload of placement.saved.
type PlacementSaved struct {
	PlacementID   string `json:"placement_id"`
	ScanID        string `json:"scan_id"`
	UserID        string `json:"user_id,omitempty"`
	ItemsPlaced   int    `json:"items_placed"`
	EstimatedCost string `json:"estimated_total_cost"`
}

// Publisher delivers events. Implementations must not block request
// handling for long; failures are reported, never retried here.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// NopPublisher drops every event; used when MQTT is disabled.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }

// mqttPublisher the subset of pkg/mqtt.Client used here.
type mqttPublisher interface {
	Publish(topic string, retained bool, payload []byte) error
}

// MQTTPublisher publishes JSON events to <prefix>/<event type>.
type MQTTPublisher struct {
	client mqttPublisher
	prefix string
	logger *zap.Logger
}

var _ Publisher = (*MQTTPublisher)(nil)

func NewMQTTPublisher(client mqttPublisher, prefix string, logger *zap.Logger) *MQTTPublisher {
	return &MQTTPublisher{client: client, prefix: strings.TrimSuffix(prefix, "/"), logger: logger}
}

func (p *MQTTPublisher) Topic(eventType string) string {
	return p.prefix + "/" + eventType
}

func (p *MQTTPublisher) Publish(_ context.Context, e Event) error {
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now().UTC()
	}
	payload, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to marshal event %s: %w", e.Type, err)
	}
	topic := p.Topic(e.Type)
	if err := p.client.Publish(topic, false, payload); err != nil {
		return fmt.Errorf("failed to publish event %s: %w", e.Type, err)
	}
	p.logger.Debug("Published event", zap.String("topic", topic), zap.Int("bytes", len(payload)))
	return nil
}

package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestStreamPublisher_Publish(t *testing.T) {
	client := setupRedis(t)
	p := NewStreamPublisher(client, "roommait:events", 1000, zap.NewNop())
	ctx := context.Background()

	require.NoError(t, p.Publish(ctx, Event{
		Type: TypePlacementSaved,
		Data: PlacementSaved{PlacementID: "p-1", ScanID: "s-1", ItemsPlaced: 2, EstimatedCost: "250.00"},
	}))

	entries, err := client.XRange(ctx, "roommait:events", "-", "+").Result()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "placement.saved", entries[0].Values["type"])

	var data map[string]any
	require.NoError(t, json.Unmarshal([]byte(entries[0].Values["data"].(string)), &data))
	assert.Equal(t, "p-1", data["placement_id"])
	assert.Equal(t, "250.00", data["estimated_total_cost"])
}

func TestStreamPublisher_ClosedClient(t *testing.T) {
	client := setupRedis(t)
	require.NoError(t, client.Close())

	p := NewStreamPublisher(client, "roommait:events", 0, zap.NewNop())
	err := p.Publish(context.Background(), Event{Type: TypeScanProcessed})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "roommait:events")
}

func TestFanout(t *testing.T) {
	ok := &fakeMQTT{}
	bad := &fakeMQTT{err: errors.New("broker down")}
	f := Fanout{
		NewMQTTPublisher(ok, "a", zap.NewNop()),
		NewMQTTPublisher(bad, "b", zap.NewNop()),
	}

	err := f.Publish(context.Background(), Event{Type: TypeScanProcessed})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broker down")
	assert.Len(t, ok.topics, 1)

	assert.NoError(t, Fanout{}.Publish(context.Background(), Event{Type: TypeScanProcessed}))
}

package httpapi

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const apiVersion = "1.0.0"

// Pinger reports whether a backing dependency is reachable.
type Pinger func(ctx context.Context) error

type HealthHandler struct {
	environment    string
	database       Pinger
	redis          Pinger
	authConfigured bool
	logger         *zap.Logger
}

// NewHealthHandler nil pingers are reported as "disabled".
func NewHealthHandler(environment string, database, redis Pinger, authConfigured bool, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		environment:    environment,
		database:       database,
		redis:          redis,
		authConfigured: authConfigured,
		logger:         logger,
	}
}

func (h *HealthHandler) Root(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	writeJSON(w, http.StatusOK, Ok(map[string]any{
		"message": "roomait API is running!",
		"version": apiVersion,
		"status":  "healthy",
	}))
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	database := h.check(ctx, "database", h.database)
	redis := h.check(ctx, "redis", h.redis)
	authStatus := "not_configured"
	if h.authConfigured {
		authStatus = "configured"
	}

	status := "healthy"
	if database == "unavailable" || redis == "unavailable" {
		status = "degraded"
	}
	writeJSON(w, http.StatusOK, Ok(map[string]any{
		"status":      status,
		"version":     apiVersion,
		"environment": h.environment,
		"database":    database,
		"redis":       redis,
		"auth":        authStatus,
		"ai_service":  "ready",
	}))
}

func (h *HealthHandler) check(ctx context.Context, name string, ping Pinger) string {
	if ping == nil {
		return "disabled"
	}
	if err := ping(ctx); err != nil {
		h.logger.Warn("Health check failed", zap.String("dependency", name), zap.Error(err))
		return "unavailable"
	}
	return "connected"
}

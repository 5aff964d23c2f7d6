package httpapi

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/saswath-06/roommait/internal/config"
	"github.com/saswath-06/roommait/internal/metrics"
	"github.com/saswath-06/roommait/internal/service"
)

// NewAPI registers every route and wraps the router in the middleware stack:
// access log, metrics, CORS, then rate limiting.
func NewAPI(cfg *config.Config, svc *service.Services, verifier TokenVerifier, health *HealthHandler, limiter *RateLimiter, logger *zap.Logger) http.Handler {
	maxBody := cfg.HTTP.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = 1 << 20
	}
	resolver := NewAuthResolver(verifier, logger)

	router := NewRouter(logger)
	router.RegisterHealthRoutes(health)
	router.RegisterMetricsRoute()
	router.RegisterModelRoutes(NewModelsHandler(svc.Models, logger))
	router.RegisterARRoutes(NewARHandler(svc.Scans, svc.Placements, resolver, maxBody, logger))
	router.RegisterAIRoutes(NewAIHandler(svc.Recommendations, resolver, maxBody, logger))
	router.RegisterUserRoutes(NewUserHandler(svc.Users, resolver, maxBody, logger))

	mws := []Middleware{
		AccessLog(logger),
		metrics.InstrumentHandler,
		CORS(cfg.HTTP.CORSOrigins),
	}
	if limiter != nil {
		mws = append(mws, limiter.Middleware)
	}
	return Chain(router, mws...)
}

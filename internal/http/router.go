package httpapi

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/saswath-06/roommait/internal/metrics"
)

const apiPrefix = "/api/v1"

// Router wraps http.ServeMux; handlers dispatch on path and method themselves.
type Router struct {
	mux    *http.ServeMux
	logger *zap.Logger
}

func NewRouter(logger *zap.Logger) *Router {
	return &Router{
		mux:    http.NewServeMux(),
		logger: logger,
	}
}

func (r *Router) Handle(pattern string, h http.HandlerFunc) {
	r.mux.HandleFunc(pattern, h)
}

func (r *Router) HandleHandler(pattern string, h http.Handler) {
	r.mux.Handle(pattern, h)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

func (r *Router) RegisterHealthRoutes(h *HealthHandler) {
	r.Handle("/", func(w http.ResponseWriter, req *http.Request) {
		if req.URL.Path != "/" {
			notFound(w)
			return
		}
		h.Root(w, req)
	})
	r.Handle(apiPrefix+"/health", h.Health)
}

func (r *Router) RegisterMetricsRoute() {
	r.HandleHandler("/metrics", metrics.Handler())
}

func (r *Router) RegisterARRoutes(h *ARHandler) {
	r.HandleHandler(apiPrefix+"/ar/", h)
}

func (r *Router) RegisterAIRoutes(h *AIHandler) {
	r.HandleHandler(apiPrefix+"/ai/", h)
}

func (r *Router) RegisterModelRoutes(h *ModelsHandler) {
	r.Handle(apiPrefix+"/models", h.ListModels)
}

func (r *Router) RegisterUserRoutes(h *UserHandler) {
	r.HandleHandler(apiPrefix+"/user/", h)
}

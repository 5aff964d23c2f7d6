package httpapi

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/saswath-06/roommait/internal/service"
)

type ModelsHandler struct {
	models service.ModelService
	logger *zap.Logger
}

func NewModelsHandler(models service.ModelService, logger *zap.Logger) *ModelsHandler {
	return &ModelsHandler{models: models, logger: logger}
}

// ListModels GET /api/v1/models?category=
func (h *ModelsHandler) ListModels(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	category := strings.TrimSpace(r.URL.Query().Get("category"))
	resp, err := h.models.ListModels(r.Context(), category)
	if err != nil {
		writeServiceError(w, h.logger, "Listing models", err, zap.String("category", category))
		return
	}
	writeJSON(w, http.StatusOK, Ok(resp))
}

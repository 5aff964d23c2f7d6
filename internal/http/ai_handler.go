package httpapi

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/saswath-06/roommait/internal/auth"
	"github.com/saswath-06/roommait/internal/domain"
	"github.com/saswath-06/roommait/internal/service"
)

const aiPrefix = apiPrefix + "/ai"

// AIHandler product search, room analysis and style suggestion endpoints.
type AIHandler struct {
	recommendations service.RecommendationService
	auth            *AuthResolver
	maxBodyBytes    int64
	logger          *zap.Logger
}

func NewAIHandler(recommendations service.RecommendationService, resolver *AuthResolver, maxBodyBytes int64, logger *zap.Logger) *AIHandler {
	return &AIHandler{
		recommendations: recommendations,
		auth:            resolver,
		maxBodyBytes:    maxBodyBytes,
		logger:          logger,
	}
}

type productSearchBody struct {
	RoomContext      domain.RoomContext `json:"room_context"`
	SelectedCategory string             `json:"selected_category"`
	Subcategory      string             `json:"subcategory"`
	SearchIntent     string             `json:"search_intent"`
	MaxResults       int                `json:"max_results"`
}

type roomAnalysisBody struct {
	Dimensions       domain.RoomDimensions `json:"dimensions"`
	DetectedSurfaces int                   `json:"detected_surfaces"`
	RoomType         string                `json:"room_type"`
}

func (h *AIHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.URL.Path == aiPrefix+"/product-search" && r.Method == http.MethodPost:
		h.auth.Optional(h.ProductSearch)(w, r)
	case r.URL.Path == aiPrefix+"/room-analysis" && r.Method == http.MethodPost:
		h.auth.Optional(h.RoomAnalysis)(w, r)
	case r.URL.Path == aiPrefix+"/style-suggestions" && r.Method == http.MethodGet:
		h.auth.Optional(h.StyleSuggestions)(w, r)
	case r.URL.Path == aiPrefix+"/product-search",
		r.URL.Path == aiPrefix+"/room-analysis",
		r.URL.Path == aiPrefix+"/style-suggestions":
		methodNotAllowed(w)
	default:
		notFound(w)
	}
}

func (h *AIHandler) ProductSearch(w http.ResponseWriter, r *http.Request) {
	var body productSearchBody
	if err := readBodyJSON(r, h.maxBodyBytes, &body); err != nil {
		writeBadRequest(w, err)
		return
	}

	resp, err := h.recommendations.SearchProducts(r.Context(), service.ProductSearchRequest{
		Identity:         auth.FromContext(r.Context()),
		RoomContext:      body.RoomContext,
		SelectedCategory: body.SelectedCategory,
		Subcategory:      body.Subcategory,
		SearchIntent:     body.SearchIntent,
		MaxResults:       body.MaxResults,
	})
	if err != nil {
		writeServiceError(w, h.logger, "Product search", err, zap.String("category", body.SelectedCategory))
		return
	}
	writeJSON(w, http.StatusOK, Ok(resp))
}

func (h *AIHandler) RoomAnalysis(w http.ResponseWriter, r *http.Request) {
	var body roomAnalysisBody
	if err := readBodyJSON(r, h.maxBodyBytes, &body); err != nil {
		writeBadRequest(w, err)
		return
	}

	resp, err := h.recommendations.AnalyzeRoom(r.Context(), service.RoomAnalysisRequest{
		Dimensions:       body.Dimensions,
		DetectedSurfaces: body.DetectedSurfaces,
		RoomType:         body.RoomType,
	})
	if err != nil {
		writeServiceError(w, h.logger, "Room analysis", err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(resp))
}

func (h *AIHandler) StyleSuggestions(w http.ResponseWriter, r *http.Request) {
	roomSize, err := parseFloatParam(r, "room_size")
	if err != nil {
		writeBadRequest(w, err)
		return
	}
	budget, err := parseFloatParam(r, "budget")
	if err != nil {
		writeBadRequest(w, err)
		return
	}

	resp, err := h.recommendations.StyleSuggestions(r.Context(), roomSize, budget)
	if err != nil {
		writeServiceError(w, h.logger, "Style suggestions", err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(resp))
}

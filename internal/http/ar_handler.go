package httpapi

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/saswath-06/roommait/internal/auth"
	"github.com/saswath-06/roommait/internal/domain"
	"github.com/saswath-06/roommait/internal/service"
)

const arPrefix = apiPrefix + "/ar"

// ARHandler scan processing and furniture placement endpoints.
type ARHandler struct {
	scans        service.ScanService
	placements   service.PlacementService
	auth         *AuthResolver
	maxBodyBytes int64
	logger       *zap.Logger
}

func NewARHandler(scans service.ScanService, placements service.PlacementService, resolver *AuthResolver, maxBodyBytes int64, logger *zap.Logger) *ARHandler {
	return &ARHandler{
		scans:        scans,
		placements:   placements,
		auth:         resolver,
		maxBodyBytes: maxBodyBytes,
		logger:       logger,
	}
}

type processScanBody struct {
	ScanID           string                   `json:"scan_id"`
	Dimensions       domain.RoomDimensions    `json:"dimensions"`
	DetectedSurfaces []domain.DetectedSurface `json:"detected_surfaces"`
	ScanQuality      float64                  `json:"scan_quality"`
}

type placementBody struct {
	ScanID         string                 `json:"scan_id"`
	FurnitureItems []domain.FurnitureItem `json:"furniture_items"`
	DesignName     string                 `json:"design_name"`
}

func (h *ARHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path
	switch {
	case path == arPrefix+"/scan/process":
		if r.Method != http.MethodPost {
			methodNotAllowed(w)
			return
		}
		h.auth.Optional(h.ProcessScan)(w, r)
	case path == arPrefix+"/placement/save":
		if r.Method != http.MethodPost {
			methodNotAllowed(w)
			return
		}
		h.auth.Optional(h.SavePlacement)(w, r)
	case path == arPrefix+"/user/scans":
		if r.Method != http.MethodGet {
			methodNotAllowed(w)
			return
		}
		h.auth.Optional(h.ListUserScans)(w, r)
	case path == arPrefix+"/validate-placement":
		if r.Method != http.MethodPost {
			methodNotAllowed(w)
			return
		}
		h.ValidatePlacement(w, r)
	default:
		if id, ok := pathID(path, arPrefix+"/placement/", "/export"); ok {
			if r.Method != http.MethodGet {
				methodNotAllowed(w)
				return
			}
			h.auth.Optional(func(w http.ResponseWriter, r *http.Request) { h.ExportPlacement(w, r, id) })(w, r)
			return
		}
		if id, ok := pathID(path, arPrefix+"/placement/", ""); ok {
			if r.Method != http.MethodGet {
				methodNotAllowed(w)
				return
			}
			h.auth.Optional(func(w http.ResponseWriter, r *http.Request) { h.GetPlacement(w, r, id) })(w, r)
			return
		}
		notFound(w)
	}
}

func (h *ARHandler) ProcessScan(w http.ResponseWriter, r *http.Request) {
	var body processScanBody
	if err := readBodyJSON(r, h.maxBodyBytes, &body); err != nil {
		writeBadRequest(w, err)
		return
	}

	resp, err := h.scans.ProcessScan(r.Context(), service.ProcessScanRequest{
		Identity:         auth.FromContext(r.Context()),
		ScanID:           body.ScanID,
		Dimensions:       body.Dimensions,
		DetectedSurfaces: body.DetectedSurfaces,
		ScanQuality:      body.ScanQuality,
	})
	if err != nil {
		writeServiceError(w, h.logger, "Room scan processing", err, zap.String("scan_id", body.ScanID))
		return
	}
	writeJSON(w, http.StatusOK, Ok(resp))
}

func (h *ARHandler) SavePlacement(w http.ResponseWriter, r *http.Request) {
	var body placementBody
	if err := readBodyJSON(r, h.maxBodyBytes, &body); err != nil {
		writeBadRequest(w, err)
		return
	}

	resp, err := h.placements.SavePlacement(r.Context(), service.SavePlacementRequest{
		Identity:       auth.FromContext(r.Context()),
		ScanID:         body.ScanID,
		FurnitureItems: body.FurnitureItems,
		DesignName:     body.DesignName,
	})
	if err != nil {
		writeServiceError(w, h.logger, "Saving placement", err, zap.String("scan_id", body.ScanID))
		return
	}
	writeJSON(w, http.StatusOK, Ok(resp))
}

func (h *ARHandler) GetPlacement(w http.ResponseWriter, r *http.Request, placementID string) {
	resp, err := h.placements.GetPlacement(r.Context(), placementID)
	if err != nil {
		writeServiceError(w, h.logger, "Retrieving placement", err, zap.String("placement_id", placementID))
		return
	}
	writeJSON(w, http.StatusOK, Ok(resp))
}

// ExportPlacement streams the placement batch as an XLSX shopping list.
func (h *ARHandler) ExportPlacement(w http.ResponseWriter, r *http.Request, placementID string) {
	resp, err := h.placements.GetPlacement(r.Context(), placementID)
	if err != nil {
		writeServiceError(w, h.logger, "Retrieving placement", err, zap.String("placement_id", placementID))
		return
	}

	data, err := GeneratePlacementShoppingList(resp)
	if err != nil {
		h.logger.Error("GeneratePlacementShoppingList failed", zap.String("placement_id", placementID), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("failed to generate export"))
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=placement-%s.xlsx", placementID))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (h *ARHandler) ListUserScans(w http.ResponseWriter, r *http.Request) {
	resp, err := h.scans.ListUserScans(r.Context(), auth.FromContext(r.Context()))
	if err != nil {
		writeServiceError(w, h.logger, "Retrieving scans", err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(resp))
}

func (h *ARHandler) ValidatePlacement(w http.ResponseWriter, r *http.Request) {
	var body placementBody
	if err := readBodyJSON(r, h.maxBodyBytes, &body); err != nil {
		writeBadRequest(w, err)
		return
	}

	resp, err := h.placements.ValidatePlacement(r.Context(), service.ValidatePlacementRequest{
		ScanID:         body.ScanID,
		FurnitureItems: body.FurnitureItems,
	})
	if err != nil {
		writeServiceError(w, h.logger, "Validating placement", err, zap.String("scan_id", body.ScanID))
		return
	}
	writeJSON(w, http.StatusOK, Ok(resp))
}

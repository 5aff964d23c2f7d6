package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/saswath-06/roommait/internal/auth"
	"github.com/saswath-06/roommait/internal/catalog"
	"github.com/saswath-06/roommait/internal/config"
	"github.com/saswath-06/roommait/internal/repository"
	"github.com/saswath-06/roommait/internal/service"
)

// fakeVerifier accepts tokens listed in claims.
type fakeVerifier struct {
	claims        map[string]auth.Claims
	notConfigured bool
}

func (f *fakeVerifier) Verify(_ context.Context, token string) (auth.Claims, error) {
	if f.notConfigured {
		return auth.Claims{}, auth.ErrNotConfigured
	}
	c, ok := f.claims[token]
	if !ok {
		return auth.Claims{}, auth.ErrInvalidToken
	}
	return c, nil
}

type testAPI struct {
	handler  http.Handler
	svc      *service.Services
	verifier *fakeVerifier
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	static, err := catalog.DefaultStaticCatalog()
	require.NoError(t, err)

	logger := zap.NewNop()
	svc := service.NewServices(repository.NewMemoryStore(), catalog.NewGenerator(static), nil, logger)
	verifier := &fakeVerifier{claims: map[string]auth.Claims{
		"alice-token": {Subject: "auth0|alice", Email: "alice@example.com", Name: "Alice"},
		"bob-token":   {Subject: "auth0|bob", Email: "bob@example.com", Name: "Bob"},
	}}

	cfg := &config.Config{}
	cfg.HTTP.MaxBodyBytes = 1 << 20
	cfg.HTTP.CORSOrigins = []string{"http://localhost:3000"}
	health := NewHealthHandler("test", nil, nil, true, logger)

	return &testAPI{
		handler:  NewAPI(cfg, svc, verifier, health, nil, logger),
		svc:      svc,
		verifier: verifier,
	}
}

func (a *testAPI) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func decodeResult(t *testing.T, rec *httptest.ResponseRecorder) Result[map[string]any] {
	t.Helper()
	var out Result[map[string]any]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func scanBody(scanID string, quality float64) map[string]any {
	return map[string]any{
		"scan_id":    scanID,
		"dimensions": map[string]any{"width": 10, "depth": 10, "height": 8, "units": "feet"},
		"detected_surfaces": []map[string]any{
			{"surface_id": "floor-1", "surface_type": "floor", "confidence": 0.95, "bounds": map[string]float64{"x": 0, "y": 0, "z": 0}, "area": 100},
		},
		"scan_quality": quality,
	}
}

func placementItems() []map[string]any {
	return []map[string]any{
		{"item_id": "i1", "model_id": "generic-bed-twin", "position": map[string]float64{"x": 1, "y": 0, "z": 1}, "rotation": map[string]float64{}, "scale": map[string]float64{"x": 1, "y": 1, "z": 1}},
		{"item_id": "i2", "model_id": "generic-desk-basic", "position": map[string]float64{"x": 5, "y": 0, "z": 5}, "rotation": map[string]float64{}, "scale": map[string]float64{"x": 1, "y": 1, "z": 1}, "surface_id": "floor-1"},
	}
}

func TestRootAndHealth(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodGet, "/", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	res := decodeResult(t, rec)
	assert.Equal(t, ResultSuccess, res.Code)
	assert.Equal(t, "roomait API is running!", res.Result["message"])
	assert.Equal(t, "healthy", res.Result["status"])

	rec = api.do(t, http.MethodGet, "/api/v1/health", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	res = decodeResult(t, rec)
	assert.Equal(t, "healthy", res.Result["status"])
	assert.Equal(t, "disabled", res.Result["database"])
	assert.Equal(t, "configured", res.Result["auth"])

	rec = api.do(t, http.MethodGet, "/nope", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealth_Degraded(t *testing.T) {
	down := func(context.Context) error { return errors.New("connection refused") }
	up := func(context.Context) error { return nil }
	h := NewHealthHandler("production", down, up, false, zap.NewNop())

	rec := httptest.NewRecorder()
	h.Health(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	res := decodeResult(t, rec)
	assert.Equal(t, "degraded", res.Result["status"])
	assert.Equal(t, "unavailable", res.Result["database"])
	assert.Equal(t, "connected", res.Result["redis"])
	assert.Equal(t, "not_configured", res.Result["auth"])
	assert.Equal(t, "production", res.Result["environment"])
}

func TestScanPlacementFlow(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/api/v1/ar/scan/process", scanBody("scan-1", 0.9), "alice-token")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	res := decodeResult(t, rec)
	assert.Equal(t, "success", res.Result["status"])
	assert.Equal(t, "scan-1", res.Result["scan_id"])
	analysis := res.Result["room_analysis"].(map[string]any)
	assert.EqualValues(t, 100, analysis["area_sqft"])
	assert.Equal(t, "medium", analysis["room_category"])

	rec = api.do(t, http.MethodPost, "/api/v1/ar/placement/save", map[string]any{
		"scan_id":         "scan-1",
		"furniture_items": placementItems(),
		"design_name":     "Dorm v1",
	}, "alice-token")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	res = decodeResult(t, rec)
	placementID, _ := res.Result["placement_id"].(string)
	require.NotEmpty(t, placementID)
	assert.EqualValues(t, 2, res.Result["items_placed"])
	assert.EqualValues(t, 250, res.Result["estimated_total_cost"])

	rec = api.do(t, http.MethodGet, "/api/v1/ar/placement/"+placementID, nil, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	res = decodeResult(t, rec)
	assert.Equal(t, placementID, res.Result["placement_id"])
	assert.EqualValues(t, 250, res.Result["total_estimated_cost"])
	assert.Equal(t, "Dorm v1", res.Result["design_name"])
	assert.Len(t, res.Result["furniture_items"], 2)

	rec = api.do(t, http.MethodGet, "/api/v1/ar/user/scans", nil, "alice-token")
	require.Equal(t, http.StatusOK, rec.Code)
	res = decodeResult(t, rec)
	assert.EqualValues(t, 1, res.Result["count"])

	rec = api.do(t, http.MethodGet, "/api/v1/ar/user/scans", nil, "")
	res = decodeResult(t, rec)
	assert.EqualValues(t, 0, res.Result["count"])
}

func TestGetPlacement_RepeatedRequestsMatch(t *testing.T) {
	api := newTestAPI(t)
	require.Equal(t, http.StatusOK, api.do(t, http.MethodPost, "/api/v1/ar/scan/process", scanBody("scan-r", 0.9), "").Code)
	rec := api.do(t, http.MethodPost, "/api/v1/ar/placement/save", map[string]any{
		"scan_id":         "scan-r",
		"furniture_items": placementItems(),
	}, "")
	require.Equal(t, http.StatusOK, rec.Code)
	placementID := decodeResult(t, rec).Result["placement_id"].(string)

	first := api.do(t, http.MethodGet, "/api/v1/ar/placement/"+placementID, nil, "")
	second := api.do(t, http.MethodGet, "/api/v1/ar/placement/"+placementID, nil, "")
	require.Equal(t, http.StatusOK, first.Code)
	require.Equal(t, http.StatusOK, second.Code)

	a, b := decodeResult(t, first), decodeResult(t, second)
	assert.Equal(t, a.Result["furniture_items"], b.Result["furniture_items"])
	assert.Equal(t, a.Result["total_estimated_cost"], b.Result["total_estimated_cost"])
	assert.JSONEq(t, first.Body.String(), second.Body.String())
}

func TestPlacementExport(t *testing.T) {
	api := newTestAPI(t)
	require.Equal(t, http.StatusOK, api.do(t, http.MethodPost, "/api/v1/ar/scan/process", scanBody("scan-x", 0.8), "").Code)
	rec := api.do(t, http.MethodPost, "/api/v1/ar/placement/save", map[string]any{
		"scan_id":         "scan-x",
		"furniture_items": placementItems(),
	}, "")
	require.Equal(t, http.StatusOK, rec.Code)
	placementID := decodeResult(t, rec).Result["placement_id"].(string)

	rec = api.do(t, http.MethodGet, "/api/v1/ar/placement/"+placementID+"/export", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), placementID)

	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue(shoppingListSheet, "B1")
	require.NoError(t, err)
	assert.Equal(t, "Model ID", header)
	model, err := f.GetCellValue(shoppingListSheet, "B2")
	require.NoError(t, err)
	assert.Equal(t, "generic-bed-twin", model)
	total, err := f.GetCellValue(shoppingListSheet, "G4")
	require.NoError(t, err)
	assert.Equal(t, "250", total)

	rec = api.do(t, http.MethodGet, "/api/v1/ar/placement/missing/export", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestARErrors(t *testing.T) {
	api := newTestAPI(t)
	require.Equal(t, http.StatusOK, api.do(t, http.MethodPost, "/api/v1/ar/scan/process", scanBody("dup", 0.9), "").Code)

	negative := scanBody("neg", 0.9)
	negative["dimensions"] = map[string]any{"width": -1, "depth": 10, "height": 8}

	tests := []struct {
		name     string
		method   string
		path     string
		body     any
		wantCode int
	}{
		{"malformed json", http.MethodPost, "/api/v1/ar/scan/process", "{not json", http.StatusBadRequest},
		{"empty body", http.MethodPost, "/api/v1/ar/scan/process", "", http.StatusBadRequest},
		{"negative width", http.MethodPost, "/api/v1/ar/scan/process", negative, http.StatusBadRequest},
		{"duplicate scan", http.MethodPost, "/api/v1/ar/scan/process", scanBody("dup", 0.9), http.StatusConflict},
		{"wrong method", http.MethodGet, "/api/v1/ar/scan/process", nil, http.StatusMethodNotAllowed},
		{"unknown scan on save", http.MethodPost, "/api/v1/ar/placement/save", map[string]any{"scan_id": "ghost", "furniture_items": placementItems()}, http.StatusNotFound},
		{"empty items", http.MethodPost, "/api/v1/ar/placement/save", map[string]any{"scan_id": "dup", "furniture_items": []any{}}, http.StatusBadRequest},
		{"unknown placement", http.MethodGet, "/api/v1/ar/placement/ghost", nil, http.StatusNotFound},
		{"nested placement path", http.MethodGet, "/api/v1/ar/placement/a/b", nil, http.StatusNotFound},
		{"unknown scan on validate", http.MethodPost, "/api/v1/ar/validate-placement", map[string]any{"scan_id": "ghost", "furniture_items": placementItems()}, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := api.do(t, tt.method, tt.path, tt.body, "")
			assert.Equal(t, tt.wantCode, rec.Code, rec.Body.String())
			res := decodeResult(t, rec)
			assert.Equal(t, ResultError, res.Code)
			assert.Equal(t, "error", res.Type)
		})
	}
}

func TestValidatePlacementEndpoint(t *testing.T) {
	api := newTestAPI(t)
	require.Equal(t, http.StatusOK, api.do(t, http.MethodPost, "/api/v1/ar/scan/process", scanBody("v1", 0.9), "").Code)

	rec := api.do(t, http.MethodPost, "/api/v1/ar/validate-placement", map[string]any{
		"scan_id":         "v1",
		"furniture_items": placementItems()[:1],
	}, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	res := decodeResult(t, rec)
	assert.Equal(t, true, res.Result["overall_valid"])

	items := res.Result["item_validations"].([]any)
	require.Len(t, items, 1)
	first := items[0].(map[string]any)
	assert.Equal(t, true, first["is_valid"])
	assert.NotEmpty(t, first["warnings"])
}

func TestLowQualityScanWarning(t *testing.T) {
	api := newTestAPI(t)
	rec := api.do(t, http.MethodPost, "/api/v1/ar/scan/process", scanBody("low", 0.3), "")
	require.Equal(t, http.StatusOK, rec.Code)
	res := decodeResult(t, rec)
	assert.Equal(t, "warning", res.Result["status"])
	assert.NotEmpty(t, res.Result["message"])
	assert.NotEmpty(t, res.Result["recommendations"])
}

func TestAIEndpoints(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/api/v1/ai/room-analysis", map[string]any{
		"dimensions":        map[string]any{"width": 10, "depth": 8, "height": 8},
		"detected_surfaces": 3,
	}, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	res := decodeResult(t, rec)
	metrics := res.Result["calculated_metrics"].(map[string]any)
	assert.EqualValues(t, 80, metrics["area_sqft"])
	assert.EqualValues(t, 640, metrics["volume_cuft"])
	assert.Equal(t, "medium", metrics["space_category"])
	assert.Equal(t, "dorm", res.Result["room_type"])

	rec = api.do(t, http.MethodPost, "/api/v1/ai/product-search", map[string]any{
		"room_context": map[string]any{
			"dimensions":   map[string]float64{"width": 10, "depth": 10},
			"budget_range": map[string]float64{"min": 20, "max": 120},
		},
		"selected_category": "seating",
		"search_intent":     "comfortable chair",
		"max_results":       2,
	}, "alice-token")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	res = decodeResult(t, rec)
	recs := res.Result["recommendations"].([]any)
	assert.LessOrEqual(t, len(recs), 2)
	for _, r := range recs {
		price := r.(map[string]any)["price"].(float64)
		assert.GreaterOrEqual(t, price, 20.0)
		assert.LessOrEqual(t, price, 120.0)
	}

	rec = api.do(t, http.MethodPost, "/api/v1/ai/product-search", map[string]any{"selected_category": "seating"}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(t, http.MethodGet, "/api/v1/ai/style-suggestions?room_size=100&budget=300", nil, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	res = decodeResult(t, rec)
	assert.EqualValues(t, 100, res.Result["room_size"])
	assert.EqualValues(t, 300, res.Result["budget_range"])

	rec = api.do(t, http.MethodGet, "/api/v1/ai/style-suggestions?room_size=abc&budget=300", nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = api.do(t, http.MethodGet, "/api/v1/ai/style-suggestions?room_size=100", nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = api.do(t, http.MethodPost, "/api/v1/ai/style-suggestions", nil, "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestModelsEndpoint(t *testing.T) {
	api := newTestAPI(t)
	_, err := api.svc.Models.SeedDefaults(context.Background())
	require.NoError(t, err)

	rec := api.do(t, http.MethodGet, "/api/v1/models", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	all := decodeResult(t, rec)
	assert.EqualValues(t, 8, all.Result["count"])

	rec = api.do(t, http.MethodGet, "/api/v1/models?category=seating", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	seating := decodeResult(t, rec)
	for _, m := range seating.Result["models"].([]any) {
		assert.Equal(t, "seating", m.(map[string]any)["category"])
	}
}

func TestUserEndpoints_RequireAuth(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodGet, "/api/v1/user/profile", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, ResultTokenExpired, decodeResult(t, rec).Code)

	rec = api.do(t, http.MethodGet, "/api/v1/user/profile", nil, "forged")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, ResultTokenExpired, decodeResult(t, rec).Code)

	rec = api.do(t, http.MethodGet, "/api/v1/user/profile", nil, "alice-token")
	require.Equal(t, http.StatusOK, rec.Code)
	res := decodeResult(t, rec)
	assert.Equal(t, "auth0|alice", res.Result["auth0_user_id"])
	assert.Equal(t, "alice@example.com", res.Result["email"])

	api.verifier.notConfigured = true
	rec = api.do(t, http.MethodGet, "/api/v1/user/profile", nil, "alice-token")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestOptionalAuth_BadTokenProceedsAnonymously(t *testing.T) {
	api := newTestAPI(t)
	rec := api.do(t, http.MethodPost, "/api/v1/ar/scan/process", scanBody("anon", 0.9), "forged")
	require.Equal(t, http.StatusOK, rec.Code)

	api.verifier.notConfigured = true
	rec = api.do(t, http.MethodPost, "/api/v1/ar/scan/process", scanBody("anon-2", 0.9), "alice-token")
	require.Equal(t, http.StatusOK, rec.Code)

	api.verifier.notConfigured = false
	rec = api.do(t, http.MethodGet, "/api/v1/ar/user/scans", nil, "alice-token")
	assert.EqualValues(t, 0, decodeResult(t, rec).Result["count"])
}

func TestDesigns(t *testing.T) {
	api := newTestAPI(t)
	require.Equal(t, http.StatusOK, api.do(t, http.MethodPost, "/api/v1/ar/scan/process", scanBody("d1", 0.9), "alice-token").Code)
	rec := api.do(t, http.MethodPost, "/api/v1/ar/placement/save", map[string]any{
		"scan_id":         "d1",
		"furniture_items": placementItems(),
	}, "alice-token")
	require.Equal(t, http.StatusOK, rec.Code)
	placementID := decodeResult(t, rec).Result["placement_id"].(string)

	rec = api.do(t, http.MethodPost, "/api/v1/user/designs", map[string]any{"placement_id": placementID, "design_name": "Final"}, "alice-token")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	design := decodeResult(t, rec).Result["design"].(map[string]any)
	assert.Equal(t, "Final", design["design_name"])
	assert.EqualValues(t, 250, design["total_cost"])

	rec = api.do(t, http.MethodPost, "/api/v1/user/designs", map[string]any{"placement_id": placementID}, "bob-token")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = api.do(t, http.MethodPost, "/api/v1/user/designs", map[string]any{}, "alice-token")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(t, http.MethodGet, "/api/v1/user/designs", nil, "alice-token")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 1, decodeResult(t, rec).Result["count"])

	rec = api.do(t, http.MethodGet, "/api/v1/user/designs", nil, "bob-token")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 0, decodeResult(t, rec).Result["count"])

	rec = api.do(t, http.MethodDelete, "/api/v1/user/designs", nil, "alice-token")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	api := newTestAPI(t)
	api.do(t, http.MethodGet, "/api/v1/health", nil, "")

	rec := api.do(t, http.MethodGet, "/metrics", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "roommait_http_requests_total")
}

package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geoprumo/route-service/internal/infrastructure/config"
)

var (
	routerOnce sync.Once
	router     *echo.Echo
)

// testRouter builds the router once per test binary: the HTTP metrics
// middleware registers its collectors with the default registry.
func testRouter() *echo.Echo {
	routerOnce.Do(func() {
		cfg := &config.Config{
			MaxBodySize: "1M",
			Ingest:      config.IngestConfig{Workers: 2},
			Solver:      config.SolverConfig{TimeLimit: 200 * time.Millisecond},
		}
		router = NewRouter(cfg, nil, zerolog.Nop())
	})
	return router
}

func serve(method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	testRouter().ServeHTTP(rec, req)
	return rec
}

func errorBody(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Error
}

func TestRouter_Health(t *testing.T) {
	rec := serve(http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(http.MethodGet, "/health/ready", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"disabled"`)
}

func TestRouter_ProcessOffline(t *testing.T) {
	body := `{
		"existing_points": [
			{"name": "Depot", "latitude": -19.90, "longitude": -43.90},
			{"name": "Far",   "latitude": -19.70, "longitude": -43.90},
			{"name": "Near",  "latitude": -19.80, "longitude": -43.90},
			{"name": "End",   "latitude": -19.60, "longitude": -43.90}
		],
		"options": {"optimization_mode": "offline"}
	}`
	rec := serve(http.MethodPost, "/api/v1/process/optimize", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))

	var resp struct {
		Status         string `json:"status"`
		RequestID      string `json:"request_id"`
		OptimizedRoute []struct {
			Order int    `json:"order"`
			Name  string `json:"name"`
		} `json:"optimized_route"`
		MapGeoJSON json.RawMessage `json:"map_geojson"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, rec.Header().Get(echo.HeaderXRequestID), resp.RequestID)
	require.Len(t, resp.OptimizedRoute, 4)
	assert.Equal(t, "Depot", resp.OptimizedRoute[0].Name)
	assert.Equal(t, "Near", resp.OptimizedRoute[1].Name)
	assert.Equal(t, "Far", resp.OptimizedRoute[2].Name)
	assert.Equal(t, "End", resp.OptimizedRoute[3].Name)
	assert.Equal(t, 4, resp.OptimizedRoute[3].Order)
	assert.Contains(t, string(resp.MapGeoJSON), "FeatureCollection")
}

func TestRouter_ProcessOnlineWithoutKey(t *testing.T) {
	body := `{"existing_points": [
		{"name": "A", "latitude": -19.90, "longitude": -43.90},
		{"name": "B", "latitude": -19.80, "longitude": -43.90},
		{"name": "C", "latitude": -19.70, "longitude": -43.90}
	]}`
	rec := serve(http.MethodPost, "/api/v1/process/optimize", body)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRouter_ProcessWithoutInput(t *testing.T) {
	rec := serve(http.MethodPost, "/api/v1/process/optimize", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, errorBody(t, rec), "no input data")
}

func TestRouter_Export(t *testing.T) {
	points := `[{"name": "A", "latitude": -19.9, "longitude": -43.9}]`

	rec := serve(http.MethodPost, "/api/v1/export/csv", points)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "attachment; filename=rota_otimizada.csv", rec.Header().Get(echo.HeaderContentDisposition))

	rec = serve(http.MethodPost, "/api/v1/export/pdf", points)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NotEmpty(t, errorBody(t, rec))

	rec = serve(http.MethodPost, "/api/v1/export/google-maps-links", points)
	require.Equal(t, http.StatusOK, rec.Code)
	var links []string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &links))
	assert.Len(t, links, 1)
}

func TestRouter_Geocode(t *testing.T) {
	rec := serve(http.MethodGet, "/api/v1/geocode/search?q=-19.9167,-43.9345", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"latitude":-19.9167`)

	rec = serve(http.MethodGet, "/api/v1/geocode/search?q=Pra%C3%A7a+Sete", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = serve(http.MethodGet, "/api/v1/geocode/autocomplete?q=Pra%C3%A7a", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestRouter_NotFound(t *testing.T) {
	rec := serve(http.MethodGet, "/api/v1/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "route not found", errorBody(t, rec))
}

func TestRouter_Metrics(t *testing.T) {
	serve(http.MethodGet, "/api/v1/geocode/autocomplete?q=ab", "")

	rec := serve(http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "routing_http_requests_total")
}

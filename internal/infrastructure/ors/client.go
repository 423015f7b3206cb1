// Package ors is a client for the OpenRouteService optimization,
// directions and geocoding APIs.
package ors

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/geoprumo/route-service/internal/api/metrics"
	"github.com/geoprumo/route-service/internal/core/domain"
	"github.com/geoprumo/route-service/internal/core/ports"
)

const (
	DefaultBaseURL = "https://api.openrouteservice.org"
	DefaultProfile = "driving-car"

	defaultTimeout             = 30 * time.Second
	defaultGeocodeTimeout      = 10 * time.Second
	defaultAutocompleteTimeout = 5 * time.Second

	maxErrorBody = 4 << 10
	vehicleID    = 1
)

// Autocomplete results are biased towards Belo Horizonte.
const (
	focusLon = "-43.9333"
	focusLat = "-19.9167"
)

// Config holds the credential, endpoint and per-call timeouts.
type Config struct {
	APIKey              string
	BaseURL             string
	Profile             string
	Timeout             time.Duration
	GeocodeTimeout      time.Duration
	AutocompleteTimeout time.Duration
}

// Client implements ports.RoutingProvider and ports.Geocoder.
type Client struct {
	cfg        Config
	httpClient *http.Client
	logger     zerolog.Logger
}

// New returns a Client. A nil httpClient uses http.DefaultClient; timeouts
// are applied per request through the context.
func New(cfg Config, httpClient *http.Client, logger zerolog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Profile == "" {
		cfg.Profile = DefaultProfile
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.GeocodeTimeout <= 0 {
		cfg.GeocodeTimeout = defaultGeocodeTimeout
	}
	if cfg.AutocompleteTimeout <= 0 {
		cfg.AutocompleteTimeout = defaultAutocompleteTimeout
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{cfg: cfg, httpClient: httpClient, logger: logger}
}

func (c *Client) Configured() bool {
	return strings.TrimSpace(c.cfg.APIKey) != ""
}

// --- Optimization ---

type optimizationJob struct {
	ID       int        `json:"id"`
	Location [2]float64 `json:"location"`
}

type optimizationVehicle struct {
	ID      int        `json:"id"`
	Profile string     `json:"profile"`
	Start   [2]float64 `json:"start"`
	End     [2]float64 `json:"end"`
}

type optimizationRequest struct {
	Jobs     []optimizationJob     `json:"jobs"`
	Vehicles []optimizationVehicle `json:"vehicles"`
}

type optimizationResponse struct {
	Routes []struct {
		Steps []struct {
			Type string `json:"type"`
			ID   int    `json:"id"`
		} `json:"steps"`
	} `json:"routes"`
}

// Optimize submits the jobs for one vehicle and returns job positions in
// visiting order. Job ids on the wire are positions plus one.
func (c *Client) Optimize(ctx context.Context, req ports.OptimizeRequest) ([]int, error) {
	body := optimizationRequest{
		Jobs: make([]optimizationJob, len(req.Jobs)),
		Vehicles: []optimizationVehicle{{
			ID:      vehicleID,
			Profile: c.cfg.Profile,
			Start:   req.Start,
			End:     req.End,
		}},
	}
	for i, loc := range req.Jobs {
		body.Jobs[i] = optimizationJob{ID: i + 1, Location: loc}
	}

	var resp optimizationResponse
	if err := c.do(ctx, "optimization", http.MethodPost, c.cfg.BaseURL+"/optimization", body, c.cfg.Timeout, &resp); err != nil {
		return nil, err
	}
	if len(resp.Routes) == 0 {
		return nil, fmt.Errorf("%w: optimization response has no routes", domain.ErrDataFormat)
	}

	var ids []int
	for _, s := range resp.Routes[0].Steps {
		if s.Type != "job" {
			continue
		}
		if s.ID < 1 || s.ID > len(req.Jobs) {
			return nil, fmt.Errorf("%w: optimization returned unknown job id %d", domain.ErrDataFormat, s.ID)
		}
		ids = append(ids, s.ID-1)
	}
	return ids, nil
}

// --- Directions ---

type directionsRequest struct {
	Coordinates [][2]float64 `json:"coordinates"`
}

type directionsResponse struct {
	Features []struct {
		Properties struct {
			Summary *struct {
				Distance float64 `json:"distance"`
				Duration float64 `json:"duration"`
			} `json:"summary"`
		} `json:"properties"`
	} `json:"features"`
}

// Directions returns the routed GeoJSON FeatureCollection through coords
// along with its distance and duration.
func (c *Client) Directions(ctx context.Context, coords [][2]float64) (*ports.Directions, error) {
	endpoint := fmt.Sprintf("%s/v2/directions/%s/geojson", c.cfg.BaseURL, url.PathEscape(c.cfg.Profile))

	var raw json.RawMessage
	if err := c.do(ctx, "directions", http.MethodPost, endpoint, directionsRequest{Coordinates: coords}, c.cfg.Timeout, &raw); err != nil {
		return nil, err
	}

	var resp directionsResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("%w: directions: %v", domain.ErrDataFormat, err)
	}
	if len(resp.Features) == 0 || resp.Features[0].Properties.Summary == nil {
		return nil, fmt.Errorf("%w: directions response has no route summary", domain.ErrDataFormat)
	}
	sum := resp.Features[0].Properties.Summary
	return &ports.Directions{
		Geometry:        raw,
		DistanceMeters:  sum.Distance,
		DurationSeconds: sum.Duration,
	}, nil
}

// --- Geocoding ---

type geocodeResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
		Properties struct {
			Label string `json:"label"`
		} `json:"properties"`
	} `json:"features"`
}

// Search returns the best match for query.
func (c *Client) Search(ctx context.Context, query string) (*domain.Place, error) {
	q := url.Values{}
	q.Set("text", query)
	q.Set("size", "1")

	var resp geocodeResponse
	if err := c.do(ctx, "geocode", http.MethodGet, c.cfg.BaseURL+"/geocode/search?"+q.Encode(), nil, c.cfg.GeocodeTimeout, &resp); err != nil {
		return nil, err
	}
	if len(resp.Features) == 0 {
		return nil, fmt.Errorf("%w: no result for %q", domain.ErrNotFound, query)
	}

	f := resp.Features[0]
	if len(f.Geometry.Coordinates) < 2 {
		return nil, fmt.Errorf("%w: geocode feature without coordinates", domain.ErrDataFormat)
	}
	name := f.Properties.Label
	if name == "" {
		name = query
	}
	return &domain.Place{Name: name, Latitude: f.Geometry.Coordinates[1], Longitude: f.Geometry.Coordinates[0]}, nil
}

// Autocomplete returns suggestion labels for a partial address.
func (c *Client) Autocomplete(ctx context.Context, query string) ([]string, error) {
	q := url.Values{}
	q.Set("text", query)
	q.Set("focus.point.lon", focusLon)
	q.Set("focus.point.lat", focusLat)

	var resp geocodeResponse
	if err := c.do(ctx, "autocomplete", http.MethodGet, c.cfg.BaseURL+"/geocode/autocomplete?"+q.Encode(), nil, c.cfg.AutocompleteTimeout, &resp); err != nil {
		return nil, err
	}
	labels := make([]string, 0, len(resp.Features))
	for _, f := range resp.Features {
		if f.Properties.Label != "" {
			labels = append(labels, f.Properties.Label)
		}
	}
	return labels, nil
}

// do sends one request and decodes the JSON response into out. Transport
// failures and non-2xx statuses are connectivity errors; undecodable bodies
// are data-format errors.
func (c *Client) do(ctx context.Context, endpoint, method, reqURL string, body any, timeout time.Duration, out any) (err error) {
	if !c.Configured() {
		return fmt.Errorf("%w: routing service API key is not set", domain.ErrConfiguration)
	}
	defer func() {
		metrics.ExternalRequestsTotal.WithLabelValues(endpoint, metrics.Result(err)).Inc()
	}()

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", endpoint, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reader)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", endpoint, err)
	}
	req.Header.Set("Authorization", c.cfg.APIKey)
	req.Header.Set("Accept", "application/json, application/geo+json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrConnectivity, endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		c.logger.Warn().
			Str("endpoint", endpoint).
			Int("status", resp.StatusCode).
			Str("body", string(snippet)).
			Msg("routing service returned an error status")
		return fmt.Errorf("%w: %s: HTTP %d", domain.ErrConnectivity, endpoint, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %s: decode response: %v", domain.ErrDataFormat, endpoint, err)
	}
	c.logger.Debug().Str("endpoint", endpoint).Dur("elapsed", time.Since(started)).Msg("routing service call")
	return nil
}

package ingest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"time"

	"github.com/rs/zerolog"

	"github.com/geoprumo/route-service/internal/api/metrics"
)

const (
	DefaultMapLinkBaseURL = "https://www.google.com/maps/d/kml"
	defaultMapLinkTimeout = 15 * time.Second
	maxMapLinkBody        = 20 << 20
	mapLinkUserAgent      = "Mozilla/5.0"
)

var midPattern = regexp.MustCompile(`mid=([a-zA-Z0-9_-]+)`)

// IsMapLink reports whether link embeds a shareable map identifier.
func IsMapLink(link string) bool {
	return midPattern.MatchString(link)
}

// MapLinkConfig configures the shared-map resolver.
type MapLinkConfig struct {
	BaseURL string
	Timeout time.Duration
}

// MapLinkResolver downloads the KML export of a shared map and parses it
// with the placemark adapter.
type MapLinkResolver struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	log        zerolog.Logger
}

// NewMapLinkResolver returns a resolver. A nil client uses http.DefaultClient.
func NewMapLinkResolver(cfg MapLinkConfig, client *http.Client, log zerolog.Logger) *MapLinkResolver {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultMapLinkBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultMapLinkTimeout
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &MapLinkResolver{
		baseURL:    cfg.BaseURL,
		timeout:    cfg.Timeout,
		httpClient: client,
		log:        log,
	}
}

// Resolve fetches the placemarks behind link. Links without an identifier
// yield an empty table; fetch failures are returned for the engine to log.
func (r *MapLinkResolver) Resolve(ctx context.Context, link string) (Table, error) {
	m := midPattern.FindStringSubmatch(link)
	if m == nil {
		return Table{}, nil
	}

	content, err := r.fetch(ctx, m[1])
	metrics.ExternalRequestsTotal.WithLabelValues("mymaps", metrics.Result(err)).Inc()
	if err != nil {
		return Table{}, fmt.Errorf("fetch map %s: %w", m[1], err)
	}
	return ParseKML(content)
}

func (r *MapLinkResolver) fetch(ctx context.Context, mid string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	q := url.Values{}
	q.Set("mid", mid)
	q.Set("forcekml", "1")
	reqURL := r.baseURL + "?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", mapLinkUserAgent)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxMapLinkBody))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	r.log.Debug().Str("mid", mid).Int("bytes", len(body)).Msg("shared map fetched")
	return body, nil
}

package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/geoprumo/route-service/internal/api/metrics"
	"github.com/geoprumo/route-service/internal/core/domain"
	"github.com/geoprumo/route-service/internal/core/ports"
	"github.com/geoprumo/route-service/internal/geo"
)

// minAutocompleteLength is the shortest query worth sending upstream.
const minAutocompleteLength = 3

// GeocodeService resolves addresses to coordinates. Queries that already
// contain a coordinate pair never reach the geocoder.
type GeocodeService struct {
	geocoder ports.Geocoder
	cache    ports.GeocodeCache
	logger   zerolog.Logger
}

// NewGeocodeService returns a GeocodeService. cache may be nil.
func NewGeocodeService(geocoder ports.Geocoder, cache ports.GeocodeCache, logger zerolog.Logger) *GeocodeService {
	return &GeocodeService{geocoder: geocoder, cache: cache, logger: logger}
}

func (s *GeocodeService) Search(ctx context.Context, query string) (*domain.Place, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: empty query", domain.ErrValidation)
	}
	if c, ok := geo.Extract(query); ok {
		return &domain.Place{Name: query, Latitude: c.Lat, Longitude: c.Lng}, nil
	}

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, query)
		switch {
		case err != nil:
			metrics.GeocodeCacheTotal.WithLabelValues("error").Inc()
			s.logger.Warn().Err(err).Msg("geocode cache read failed")
		case cached != nil:
			metrics.GeocodeCacheTotal.WithLabelValues("hit").Inc()
			return cached, nil
		default:
			metrics.GeocodeCacheTotal.WithLabelValues("miss").Inc()
		}
	}

	if !s.geocoder.Configured() {
		return nil, fmt.Errorf("%w: geocoding API key is not set", domain.ErrConfiguration)
	}
	place, err := s.geocoder.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, query, place); err != nil {
			s.logger.Warn().Err(err).Msg("geocode cache write failed")
		}
	}
	return place, nil
}

// Autocomplete returns address suggestions. It never fails: short queries,
// a missing credential and upstream errors all yield an empty list.
func (s *GeocodeService) Autocomplete(ctx context.Context, query string) []string {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < minAutocompleteLength || !s.geocoder.Configured() {
		return []string{}
	}
	labels, err := s.geocoder.Autocomplete(ctx, query)
	if err != nil {
		s.logger.Warn().Err(err).Str("query", query).Msg("autocomplete failed")
		return []string{}
	}
	if labels == nil {
		labels = []string{}
	}
	return labels
}

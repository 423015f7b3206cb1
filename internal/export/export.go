// Package export renders optimized routes into downloadable files.
package export

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/geoprumo/route-service/internal/core/domain"
	"github.com/geoprumo/route-service/internal/core/ports"
)

// RouteName labels the route in formats that carry a document or route name.
const RouteName = "Rota Otimizada"

type renderer func(points []domain.Point) ([]byte, error)

type format struct {
	filename    string
	contentType string
	render      renderer
}

var formats = map[string]format{
	"csv":     {"rota_otimizada.csv", "text/csv; charset=utf-8", CSV},
	"kml":     {"rota_otimizada.kml", "application/vnd.google-earth.kml+xml", KML},
	"gpx":     {"rota_otimizada.gpx", "application/gpx+xml", GPX},
	"geojson": {"rota_otimizada.geojson", "application/geo+json", GeoJSON},
	"mymaps":  {"rota_para_mymaps.csv", "text/csv; charset=utf-8", MyMapsCSV},
	"xlsx":    {"rota_otimizada.xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", XLSX},
}

// Formats lists the supported export format names.
func Formats() []string {
	return []string{"csv", "kml", "gpx", "geojson", "mymaps", "xlsx"}
}

// Service implements ports.ExportService.
type Service struct {
	logger zerolog.Logger
}

func NewService(logger zerolog.Logger) *Service {
	return &Service{logger: logger}
}

// Export renders points in the named format.
func (s *Service) Export(name string, points []domain.Point) (*ports.ExportFile, error) {
	f, ok := formats[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %q (supported: %s)", domain.ErrUnsupportedFormat, name, strings.Join(Formats(), ", "))
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("%w: no points to export", domain.ErrValidation)
	}

	body, err := f.render(points)
	if err != nil {
		return nil, fmt.Errorf("export %s: %w", name, err)
	}
	s.logger.Debug().Str("format", name).Int("points", len(points)).Int("bytes", len(body)).Msg("route exported")
	return &ports.ExportFile{Filename: f.filename, ContentType: f.contentType, Body: body}, nil
}

// MapGeoJSON implements ports.MapRenderer.
func (s *Service) MapGeoJSON(points []domain.Point) ([]byte, error) {
	return GeoJSON(points)
}

// GoogleMapsLinks splits the route into Google Maps directions links.
func (s *Service) GoogleMapsLinks(points []domain.Point) ([]string, error) {
	if len(points) == 0 {
		return nil, fmt.Errorf("%w: no points to link", domain.ErrValidation)
	}
	return GoogleMapsLinks(points), nil
}

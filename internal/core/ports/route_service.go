package ports

import (
	"context"

	"github.com/geoprumo/route-service/internal/core/domain"
)

// Ingestor turns raw sources into a canonical point set.
type Ingestor interface {
	Ingest(ctx context.Context, sources []domain.Source) ([]domain.Point, error)
}

// OptimizeInput carries one optimization request. EndIndex < 0 or out of
// range resolves to the last point.
type OptimizeInput struct {
	Points     []domain.Point
	Mode       domain.OptimizationMode
	StartIndex int
	EndIndex   int
}

// RouteOptimizer orders a point set into a route.
type RouteOptimizer interface {
	Optimize(ctx context.Context, input OptimizeInput) (*domain.Route, error)
}

// FileInput is an uploaded file, already decoded.
type FileInput struct {
	Filename string
	Content  []byte
}

// ProcessOptions tunes a process request.
type ProcessOptions struct {
	Mode            domain.OptimizationMode
	StartIndex      int
	EndIndex        int
	IncludeInactive bool
}

// ProcessInput is the full set of sources for one process request.
type ProcessInput struct {
	Files          []FileInput
	Links          []string
	Texts          []string
	ExistingPoints []domain.Point
	Options        ProcessOptions
}

// MapRenderer draws a route's stops as a GeoJSON document for the map view.
type MapRenderer interface {
	MapGeoJSON(points []domain.Point) ([]byte, error)
}

// ProcessResult is the optimized route plus a map-ready GeoJSON document.
type ProcessResult struct {
	Route      *domain.Route
	MapGeoJSON []byte
}

// ProcessService runs ingestion and optimization as one pipeline.
type ProcessService interface {
	Optimize(ctx context.Context, input ProcessInput) (*ProcessResult, error)
}

// GeocodeService resolves addresses, using coordinates embedded in the
// query when present.
type GeocodeService interface {
	Search(ctx context.Context, query string) (*domain.Place, error)
	Autocomplete(ctx context.Context, query string) []string
}

// ExportFile is a rendered download.
type ExportFile struct {
	Filename    string
	ContentType string
	Body        []byte
}

// ExportService renders routes into downloadable formats.
type ExportService interface {
	Export(format string, points []domain.Point) (*ExportFile, error)
	GoogleMapsLinks(points []domain.Point) ([]string, error)
}

package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/geoprumo/route-service/internal/core/domain"
	"github.com/geoprumo/route-service/internal/core/ports"
)

// fileKinds maps upload extensions to ingestion adapters.
var fileKinds = map[string]domain.SourceKind{
	".csv":  domain.SourceDelimited,
	".txt":  domain.SourceDelimited,
	".xlsx": domain.SourceSpreadsheet,
	".kml":  domain.SourcePlacemarks,
	".gpx":  domain.SourceWaypoints,
}

// ProcessService runs the full pipeline: sources → ingestion → active
// filtering → optimization → map GeoJSON.
type ProcessService struct {
	ingestor  ports.Ingestor
	optimizer ports.RouteOptimizer
	maps      ports.MapRenderer
	logger    zerolog.Logger
}

func NewProcessService(ingestor ports.Ingestor, optimizer ports.RouteOptimizer, maps ports.MapRenderer, logger zerolog.Logger) *ProcessService {
	return &ProcessService{ingestor: ingestor, optimizer: optimizer, maps: maps, logger: logger}
}

// Optimize ingests every source in input and returns the optimized route.
//
// Inactive points never take part in solving. With IncludeInactive they are
// appended after the route in their ingestion order; otherwise they are
// dropped from the result.
func (s *ProcessService) Optimize(ctx context.Context, input ports.ProcessInput) (*ports.ProcessResult, error) {
	sources := s.sources(input)
	if len(sources) == 0 {
		return nil, fmt.Errorf("%w: no input data", domain.ErrValidation)
	}

	points, err := s.ingestor.Ingest(ctx, sources)
	if err != nil {
		return nil, err
	}

	active, inactive := domain.Partition(points)
	route, err := s.optimizer.Optimize(ctx, ports.OptimizeInput{
		Points:     active,
		Mode:       input.Options.Mode,
		StartIndex: input.Options.StartIndex,
		EndIndex:   input.Options.EndIndex,
	})
	if err != nil {
		return nil, err
	}
	if input.Options.IncludeInactive && len(inactive) > 0 {
		route.Points = append(route.Points, inactive...)
		domain.Renumber(route.Points)
	}

	geoJSON := []byte(route.Geometry)
	if len(geoJSON) == 0 {
		if geoJSON, err = s.maps.MapGeoJSON(route.Points); err != nil {
			return nil, fmt.Errorf("process: build map geojson: %w", err)
		}
	}

	s.logger.Info().
		Int("sources", len(sources)).
		Int("points", len(points)).
		Int("inactive", len(inactive)).
		Str("mode", string(input.Options.Mode)).
		Msg("route processed")

	return &ports.ProcessResult{Route: route, MapGeoJSON: geoJSON}, nil
}

// sources assembles raw sources in submission order: existing points, then
// files, links and texts.
func (s *ProcessService) sources(input ports.ProcessInput) []domain.Source {
	var out []domain.Source
	if len(input.ExistingPoints) > 0 {
		out = append(out, domain.Source{Kind: domain.SourcePoints, Name: "existing_points", Points: input.ExistingPoints})
	}
	for _, f := range input.Files {
		kind, ok := fileKinds[strings.ToLower(filepath.Ext(f.Filename))]
		if !ok {
			s.logger.Warn().Str("filename", f.Filename).Msg("unsupported file type skipped")
			continue
		}
		out = append(out, domain.Source{Kind: kind, Name: f.Filename, Content: f.Content})
	}
	for _, l := range input.Links {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, domain.Source{Kind: domain.SourceMapLink, Name: l, Text: l})
		}
	}
	for i, t := range input.Texts {
		if strings.TrimSpace(t) != "" {
			out = append(out, domain.Source{Kind: domain.SourceText, Name: fmt.Sprintf("text[%d]", i), Text: t})
		}
	}
	return out
}

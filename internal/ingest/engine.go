package ingest

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/geoprumo/route-service/internal/api/metrics"
	"github.com/geoprumo/route-service/internal/core/domain"
)

const defaultWorkers = 4

// LinkResolver resolves shared-map links into placemark tables.
type LinkResolver interface {
	Resolve(ctx context.Context, link string) (Table, error)
}

// Config controls the engine.
type Config struct {
	// Workers bounds how many sources are parsed concurrently.
	// Values <= 0 use defaultWorkers.
	Workers int
}

// Engine parses sources concurrently and normalizes them into one point set.
type Engine struct {
	links   LinkResolver
	workers int
	log     zerolog.Logger
}

// NewEngine returns an Engine. links may be nil, in which case shared-map
// links yield no records.
func NewEngine(cfg Config, links LinkResolver, log zerolog.Logger) *Engine {
	if cfg.Workers <= 0 {
		cfg.Workers = defaultWorkers
	}
	return &Engine{links: links, workers: cfg.Workers, log: log}
}

// Ingest parses every source and returns the canonical point set.
//
// Sources are parsed in parallel but concatenated in submission order. A
// source that fails to parse is logged and contributes nothing; only an
// empty final set is an error (domain.ErrEmptyResult).
func (e *Engine) Ingest(ctx context.Context, sources []domain.Source) ([]domain.Point, error) {
	tables := make([]Table, len(sources))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i, src := range sources {
		g.Go(func() error {
			tables[i] = e.parse(gctx, src)
			return nil
		})
	}
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("ingest: %w", err)
	}

	points, dropped := Normalize(tables)
	if dropped > 0 {
		metrics.IngestPointsDroppedTotal.Add(float64(dropped))
		e.log.Debug().Int("dropped", dropped).Msg("rows without valid coordinates removed")
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("ingest: %w: no point with valid coordinates found", domain.ErrEmptyResult)
	}
	return points, nil
}

// parse runs the adapter for one source, turning failures into an empty table.
func (e *Engine) parse(ctx context.Context, src domain.Source) Table {
	t, err := e.adapt(ctx, src)
	if err != nil {
		metrics.IngestAdapterFailuresTotal.WithLabelValues(src.Kind.String()).Inc()
		e.log.Warn().Err(err).
			Str("source", src.Kind.String()).
			Str("name", src.Name).
			Msg("source skipped")
		return Table{}
	}
	metrics.IngestRecordsTotal.WithLabelValues(src.Kind.String()).Add(float64(t.Len()))
	return t
}

func (e *Engine) adapt(ctx context.Context, src domain.Source) (Table, error) {
	switch src.Kind {
	case domain.SourceDelimited:
		return ParseDelimited(src.Content)
	case domain.SourceSpreadsheet:
		return ParseSpreadsheet(src.Content)
	case domain.SourcePlacemarks:
		return ParseKML(src.Content)
	case domain.SourceWaypoints:
		return ParseGPX(src.Content)
	case domain.SourceMapLink:
		if !IsMapLink(src.Text) {
			return ParseLink(src.Text), nil
		}
		if e.links == nil {
			return Table{}, fmt.Errorf("no resolver configured for shared map links")
		}
		return e.links.Resolve(ctx, src.Text)
	case domain.SourceText:
		return ParseText(src.Text)
	case domain.SourcePoints:
		return FromPoints(src.Points), nil
	default:
		return Table{}, fmt.Errorf("unknown source kind %d", src.Kind)
	}
}

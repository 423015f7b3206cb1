package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/geoprumo/route-service/internal/core/domain"
	"github.com/geoprumo/route-service/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

type stubIngestor struct {
	points  []domain.Point
	err     error
	sources []domain.Source
}

func (s *stubIngestor) Ingest(_ context.Context, sources []domain.Source) ([]domain.Point, error) {
	s.sources = sources
	if s.err != nil {
		return nil, s.err
	}
	return s.points, nil
}

// stubOptimizer keeps the input order and records what it was asked to solve.
type stubOptimizer struct {
	input    ports.OptimizeInput
	geometry json.RawMessage
	err      error
}

func (s *stubOptimizer) Optimize(_ context.Context, input ports.OptimizeInput) (*domain.Route, error) {
	s.input = input
	if s.err != nil {
		return nil, s.err
	}
	r := domain.NewRoute(input.Points)
	r.Geometry = s.geometry
	return r, nil
}

// stubMaps renders one feature per stop and counts its calls.
type stubMaps struct {
	calls int
	err   error
}

func (s *stubMaps) MapGeoJSON(points []domain.Point) ([]byte, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	features := make([]json.RawMessage, len(points))
	for i := range points {
		features[i] = json.RawMessage(`{"type":"Feature"}`)
	}
	return json.Marshal(map[string]any{"type": "FeatureCollection", "features": features})
}

func processInput() ports.ProcessInput {
	return ports.ProcessInput{
		ExistingPoints: []domain.Point{{Name: "Base", Latitude: -19.9, Longitude: -43.9, Active: true}},
		Files: []ports.FileInput{
			{Filename: "paradas.CSV", Content: []byte("lat;lng\n-19.9;-43.9\n")},
			{Filename: "rota.kml", Content: []byte("<kml/>")},
			{Filename: "foto.png", Content: []byte{0x89}},
			{Filename: "planilha.xlsx", Content: []byte("PK")},
			{Filename: "trilha.gpx", Content: []byte("<gpx/>")},
		},
		Links: []string{"https://www.google.com/maps/d/viewer?mid=abc", "  "},
		Texts: []string{"-19.9, -43.9", ""},
		Options: ports.ProcessOptions{
			Mode:     domain.ModeOffline,
			EndIndex: -1,
		},
	}
}

// ---------------------------------------------------------------------------
// Source assembly
// ---------------------------------------------------------------------------

func TestProcess_SourceOrder(t *testing.T) {
	ing := &stubIngestor{points: pointsAt(-19.0, -19.5)}
	svc := NewProcessService(ing, &stubOptimizer{}, &stubMaps{}, zerolog.Nop())

	if _, err := svc.Optimize(context.Background(), processInput()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []domain.SourceKind{
		domain.SourcePoints,
		domain.SourceDelimited,
		domain.SourcePlacemarks,
		domain.SourceSpreadsheet,
		domain.SourceWaypoints,
		domain.SourceMapLink,
		domain.SourceText,
	}
	if len(ing.sources) != len(want) {
		t.Fatalf("expected %d sources, got %d: %+v", len(want), len(ing.sources), ing.sources)
	}
	for i, k := range want {
		if ing.sources[i].Kind != k {
			t.Errorf("source %d: kind %s, want %s", i, ing.sources[i].Kind, k)
		}
	}
	if ing.sources[1].Name != "paradas.CSV" {
		t.Errorf("expected file name to be kept, got %q", ing.sources[1].Name)
	}
}

func TestProcess_NoSources(t *testing.T) {
	ing := &stubIngestor{}
	svc := NewProcessService(ing, &stubOptimizer{}, &stubMaps{}, zerolog.Nop())

	_, err := svc.Optimize(context.Background(), ports.ProcessInput{
		Files: []ports.FileInput{{Filename: "notes.docx"}},
		Texts: []string{"   "},
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if ing.sources != nil {
		t.Error("ingestor must not run without sources")
	}
}

func TestProcess_IngestErrorPropagates(t *testing.T) {
	opt := &stubOptimizer{}
	svc := NewProcessService(&stubIngestor{err: domain.ErrEmptyResult}, opt, &stubMaps{}, zerolog.Nop())

	_, err := svc.Optimize(context.Background(), processInput())
	if !errors.Is(err, domain.ErrEmptyResult) {
		t.Fatalf("expected ErrEmptyResult, got %v", err)
	}
	if opt.input.Points != nil {
		t.Error("optimizer must not run after an ingestion failure")
	}
}

// ---------------------------------------------------------------------------
// Active filtering
// ---------------------------------------------------------------------------

func mixedPoints() []domain.Point {
	pts := pointsAt(-19.0, -19.1, -19.2, -19.3)
	pts[1].Active = false
	return pts
}

func TestProcess_InactiveExcludedFromSolving(t *testing.T) {
	opt := &stubOptimizer{}
	svc := NewProcessService(&stubIngestor{points: mixedPoints()}, opt, &stubMaps{}, zerolog.Nop())

	res, err := svc.Optimize(context.Background(), processInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := names(opt.input.Points); got != "ACD" {
		t.Errorf("optimizer received %s, want ACD", got)
	}
	if got := names(res.Route.Points); got != "ACD" {
		t.Errorf("route = %s, want ACD", got)
	}
	if opt.input.Mode != domain.ModeOffline || opt.input.EndIndex != -1 {
		t.Errorf("options not forwarded: %+v", opt.input)
	}
}

func TestProcess_IncludeInactiveAppended(t *testing.T) {
	in := processInput()
	in.Options.IncludeInactive = true
	svc := NewProcessService(&stubIngestor{points: mixedPoints()}, &stubOptimizer{}, &stubMaps{}, zerolog.Nop())

	res, err := svc.Optimize(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := names(res.Route.Points); got != "ACDB" {
		t.Fatalf("route = %s, want ACDB", got)
	}
	last := res.Route.Points[3]
	if last.Active || last.Order != 4 {
		t.Errorf("inactive point should be last with order 4, got %+v", last)
	}
}

// ---------------------------------------------------------------------------
// Map GeoJSON
// ---------------------------------------------------------------------------

func TestProcess_MapGeoJSON(t *testing.T) {
	t.Run("built from stops when no geometry", func(t *testing.T) {
		maps := &stubMaps{}
		svc := NewProcessService(&stubIngestor{points: pointsAt(-19.0, -19.1)}, &stubOptimizer{}, maps, zerolog.Nop())
		res, err := svc.Optimize(context.Background(), processInput())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var fc struct {
			Type     string            `json:"type"`
			Features []json.RawMessage `json:"features"`
		}
		if err := json.Unmarshal(res.MapGeoJSON, &fc); err != nil {
			t.Fatalf("invalid geojson: %v", err)
		}
		if maps.calls != 1 || fc.Type != "FeatureCollection" || len(fc.Features) != 2 {
			t.Errorf("expected one render of 2 stops, got %d calls, %s with %d features", maps.calls, fc.Type, len(fc.Features))
		}
	})

	t.Run("routed geometry passed through", func(t *testing.T) {
		geometry := json.RawMessage(`{"type":"FeatureCollection","features":[{"type":"Feature"}]}`)
		maps := &stubMaps{}
		svc := NewProcessService(&stubIngestor{points: pointsAt(-19.0, -19.1)}, &stubOptimizer{geometry: geometry}, maps, zerolog.Nop())
		res, err := svc.Optimize(context.Background(), processInput())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(res.MapGeoJSON) != string(geometry) {
			t.Errorf("expected geometry passthrough, got %s", res.MapGeoJSON)
		}
		if maps.calls != 0 {
			t.Errorf("renderer must not run when geometry is present, got %d calls", maps.calls)
		}
	})

	t.Run("render failure", func(t *testing.T) {
		maps := &stubMaps{err: errors.New("encode failed")}
		svc := NewProcessService(&stubIngestor{points: pointsAt(-19.0, -19.1)}, &stubOptimizer{}, maps, zerolog.Nop())
		if _, err := svc.Optimize(context.Background(), processInput()); err == nil {
			t.Fatal("expected the render error to surface")
		}
	})
}

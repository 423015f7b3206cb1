package ingest

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/geoprumo/route-service/internal/core/domain"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

type stubResolver struct {
	delay time.Duration
	err   error
	calls atomic.Int32
}

func (r *stubResolver) Resolve(ctx context.Context, link string) (Table, error) {
	r.calls.Add(1)
	if r.delay > 0 {
		time.Sleep(r.delay)
	}
	if r.err != nil {
		return Table{}, r.err
	}
	return ParseKML([]byte(sampleKML))
}

func newTestEngine(links LinkResolver) *Engine {
	return NewEngine(Config{Workers: 4}, links, zerolog.Nop())
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestEngine_Ingest_SubmissionOrderPreserved(t *testing.T) {
	resolver := &stubResolver{delay: 20 * time.Millisecond}
	e := newTestEngine(resolver)

	sources := []domain.Source{
		{Kind: domain.SourceMapLink, Text: "https://www.google.com/maps/d/viewer?mid=abc123"},
		{Kind: domain.SourceDelimited, Name: "a.csv", Content: []byte("nome,lat,lon\nCSV,-20.0,-44.0\n")},
		{Kind: domain.SourceMapLink, Text: "https://maps.google.com/@-21.5,-42.5,15z"},
	}

	points, err := e.Ingest(context.Background(), sources)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(points) != 4 {
		t.Fatalf("expected 4 points, got %d", len(points))
	}

	wantNames := []string{"Praça da Liberdade", defaultPlacemarkName, "CSV", sources[2].Text}
	for i, p := range points {
		if p.Name != wantNames[i] {
			t.Errorf("point %d name = %q, want %q", i, p.Name, wantNames[i])
		}
		if p.OriginalIndex != i {
			t.Errorf("point %d original_index = %d", i, p.OriginalIndex)
		}
	}
	if resolver.calls.Load() != 1 {
		t.Errorf("expected one resolver call, got %d", resolver.calls.Load())
	}
}

func TestEngine_Ingest_BadSourceIsSkipped(t *testing.T) {
	e := newTestEngine(&stubResolver{err: errors.New("boom")})

	points, err := e.Ingest(context.Background(), []domain.Source{
		{Kind: domain.SourceWaypoints, Name: "broken.gpx", Content: []byte("<gpx")},
		{Kind: domain.SourceMapLink, Text: "https://www.google.com/maps/d/edit?mid=zzz"},
		{Kind: domain.SourceSpreadsheet, Name: "broken.xlsx", Content: []byte("nope")},
		{Kind: domain.SourcePlacemarks, Name: "ok.kml", Content: []byte(sampleKML)},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(points) != 2 {
		t.Fatalf("expected 2 points from the valid kml, got %d", len(points))
	}
}

func TestEngine_Ingest_EmptyResult(t *testing.T) {
	e := newTestEngine(nil)

	_, err := e.Ingest(context.Background(), []domain.Source{
		{Kind: domain.SourceText, Text: "nothing useful here"},
		{Kind: domain.SourceDelimited, Content: []byte("lat,lon\n200,300\n")},
	})
	if !errors.Is(err, domain.ErrEmptyResult) {
		t.Fatalf("expected ErrEmptyResult, got %v", err)
	}
}

func TestEngine_Ingest_ExistingPointsKeepFields(t *testing.T) {
	e := newTestEngine(nil)

	points, err := e.Ingest(context.Background(), []domain.Source{
		{Kind: domain.SourcePoints, Points: []domain.Point{
			{Name: "A", Latitude: -19.9, Longitude: -43.9, Observations: "portão azul", Category: "loja", OriginalIndex: 7, Active: true},
			{Name: "B", Latitude: -20.0, Longitude: -44.0, Active: false},
		}},
		{Kind: domain.SourceText, Text: "-21.0, -45.0"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(points) != 3 {
		t.Fatalf("expected 3 points, got %d", len(points))
	}
	if points[0].Observations != "portão azul" || points[0].Category != "loja" {
		t.Errorf("passthrough fields lost: %+v", points[0])
	}
	if points[0].OriginalIndex != 0 {
		t.Errorf("re-submitted points get a fresh index, got %d", points[0].OriginalIndex)
	}
	if points[1].Active {
		t.Errorf("inactive flag lost")
	}
	if !points[2].Active {
		t.Errorf("new points default to active")
	}
}

func TestEngine_Ingest_CancelledContext(t *testing.T) {
	e := newTestEngine(nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.Ingest(ctx, []domain.Source{{Kind: domain.SourceText, Text: "-21.0, -45.0"}})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestMapLinkResolver_Resolve(t *testing.T) {
	var gotUA, gotMid, gotForce string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotMid = r.URL.Query().Get("mid")
		gotForce = r.URL.Query().Get("forcekml")
		w.Header().Set("Content-Type", "application/vnd.google-earth.kml+xml")
		_, _ = w.Write([]byte(sampleKML))
	}))
	defer srv.Close()

	r := NewMapLinkResolver(MapLinkConfig{BaseURL: srv.URL, Timeout: time.Second}, srv.Client(), zerolog.Nop())
	tbl, err := r.Resolve(context.Background(), "https://www.google.com/maps/d/viewer?mid=1AbC-d_9&ll=0,0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tbl.Len() != 2 {
		t.Errorf("expected 2 placemarks, got %d", tbl.Len())
	}
	if gotMid != "1AbC-d_9" || gotForce != "1" {
		t.Errorf("unexpected query mid=%q forcekml=%q", gotMid, gotForce)
	}
	if gotUA != mapLinkUserAgent {
		t.Errorf("unexpected user agent %q", gotUA)
	}
}

func TestMapLinkResolver_FetchFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	r := NewMapLinkResolver(MapLinkConfig{BaseURL: srv.URL}, srv.Client(), zerolog.Nop())
	if _, err := r.Resolve(context.Background(), "https://x/?mid=abc"); err == nil {
		t.Fatal("expected error for non-200 response")
	}

	tbl, err := r.Resolve(context.Background(), "https://x/no-identifier")
	if err != nil || !tbl.Empty() {
		t.Fatalf("links without an identifier yield nothing, got rows=%d err=%v", tbl.Len(), err)
	}
}

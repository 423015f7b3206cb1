package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/geoprumo/route-service/internal/api/metrics"
	"github.com/geoprumo/route-service/internal/core/domain"
	"github.com/geoprumo/route-service/internal/core/ports"
	"github.com/geoprumo/route-service/internal/solver"
)

// RouteOptimizer orders point sets either with the local solver (offline)
// or by delegating to the external routing provider (online).
type RouteOptimizer struct {
	routing ports.RoutingProvider
	solver  *solver.Solver
	logger  zerolog.Logger
}

func NewRouteOptimizer(routing ports.RoutingProvider, s *solver.Solver, logger zerolog.Logger) *RouteOptimizer {
	return &RouteOptimizer{routing: routing, solver: s, logger: logger}
}

// Optimize returns input.Points as an ordered route.
//
// Fewer than two points come back unchanged. An unset or out-of-range
// EndIndex resolves to the last point; StartIndex must be in range and
// differ from the end. Offline mode rejects sets larger than the solver's
// node limit.
func (o *RouteOptimizer) Optimize(ctx context.Context, input ports.OptimizeInput) (*domain.Route, error) {
	mode, err := domain.ParseMode(string(input.Mode))
	if err != nil {
		return nil, err
	}
	n := len(input.Points)
	if n < 2 {
		return domain.NewRoute(input.Points), nil
	}

	start, end, err := resolveEndpoints(n, input.StartIndex, input.EndIndex)
	if err != nil {
		return nil, err
	}
	// Checked before the distance matrix is built.
	if mode == domain.ModeOffline && n > o.solver.MaxNodes() {
		return nil, fmt.Errorf("%w: offline optimization accepts at most %d points, got %d",
			domain.ErrValidation, o.solver.MaxNodes(), n)
	}

	began := time.Now()
	var (
		route  *domain.Route
		result string
	)
	switch mode {
	case domain.ModeOffline:
		route, result = o.offline(input.Points, start, end)
	case domain.ModeOnline:
		route, err = o.online(ctx, input.Points, start, end)
		result = metrics.Result(err)
	}
	metrics.OptimizationsTotal.WithLabelValues(string(mode), result).Inc()
	metrics.OptimizationDuration.WithLabelValues(string(mode)).Observe(time.Since(began).Seconds())
	if err != nil {
		return nil, err
	}

	o.logger.Info().
		Str("mode", string(mode)).
		Int("points", len(route.Points)).
		Dur("elapsed", time.Since(began)).
		Msg("route optimized")
	return route, nil
}

func resolveEndpoints(n, start, end int) (int, int, error) {
	if end < 0 || end >= n {
		end = n - 1
	}
	if start < 0 || start >= n {
		return 0, 0, fmt.Errorf("%w: start_index %d out of range [0, %d)", domain.ErrValidation, start, n)
	}
	if start == end {
		return 0, 0, fmt.Errorf("%w: start and end must be different points (index %d)", domain.ErrValidation, start)
	}
	return start, end, nil
}

// offline solves locally. A solver failure falls back to the input order.
func (o *RouteOptimizer) offline(points []domain.Point, start, end int) (*domain.Route, string) {
	coords := make([]domain.Coordinates, len(points))
	for i, p := range points {
		coords[i] = p.Coordinates()
	}

	res, err := o.solver.Solve(solver.NewDistanceMatrix(coords), start, end)
	if err != nil {
		o.logger.Warn().Err(err).Int("points", len(points)).Msg("offline solver found no solution, keeping input order")
		return domain.NewRoute(points), "fallback"
	}
	metrics.SolverImprovementsTotal.Add(float64(res.Moves))

	ordered := make([]domain.Point, len(res.Path))
	for i, idx := range res.Path {
		ordered[i] = points[idx]
	}
	o.logger.Debug().Int("cost_m", res.Cost).Int("moves", res.Moves).Msg("offline solve finished")
	return domain.NewRoute(ordered), "ok"
}

// online submits the interior points as jobs, then routes the returned order.
func (o *RouteOptimizer) online(ctx context.Context, points []domain.Point, start, end int) (*domain.Route, error) {
	if o.routing == nil || !o.routing.Configured() {
		return nil, fmt.Errorf("%w: routing service API key is not set", domain.ErrConfiguration)
	}
	if !points[start].Coordinates().Valid() || !points[end].Coordinates().Valid() {
		return nil, fmt.Errorf("%w: start and end points need valid coordinates", domain.ErrValidation)
	}

	var jobs []domain.Point
	for i, p := range points {
		if i == start || i == end {
			continue
		}
		if !p.Coordinates().Valid() {
			o.logger.Debug().Int("original_index", p.OriginalIndex).Msg("point without coordinates left out of online route")
			continue
		}
		jobs = append(jobs, p)
	}

	ordered := make([]domain.Point, 0, len(jobs)+2)
	ordered = append(ordered, points[start])
	if len(jobs) > 0 {
		seq, err := o.sequence(ctx, jobs, points[start], points[end])
		if err != nil {
			return nil, err
		}
		for _, id := range seq {
			ordered = append(ordered, jobs[id])
		}
	}
	ordered = append(ordered, points[end])

	coords := make([][2]float64, len(ordered))
	for i, p := range ordered {
		coords[i] = p.Coordinates().LonLat()
	}
	dir, err := o.routing.Directions(ctx, coords)
	if err != nil {
		return nil, err
	}

	route := domain.NewRoute(ordered)
	route.Geometry = dir.Geometry
	route.Summary = &domain.Summary{
		DistanceKm:  dir.DistanceMeters / 1000,
		DurationMin: dir.DurationSeconds / 60,
	}
	return route, nil
}

// sequence asks the provider for a job order and checks that every returned
// id maps back to a submitted job. Jobs left unassigned keep their
// submission order after the assigned ones.
func (o *RouteOptimizer) sequence(ctx context.Context, jobs []domain.Point, start, end domain.Point) ([]int, error) {
	req := ports.OptimizeRequest{
		Jobs:  make([][2]float64, len(jobs)),
		Start: start.Coordinates().LonLat(),
		End:   end.Coordinates().LonLat(),
	}
	for i, p := range jobs {
		req.Jobs[i] = p.Coordinates().LonLat()
	}

	ids, err := o.routing.Optimize(ctx, req)
	if err != nil {
		return nil, err
	}

	seen := make([]bool, len(jobs))
	for _, id := range ids {
		if id < 0 || id >= len(jobs) || seen[id] {
			return nil, fmt.Errorf("%w: optimizer returned unknown or repeated job id %d", domain.ErrDataFormat, id)
		}
		seen[id] = true
	}
	if len(ids) < len(jobs) {
		o.logger.Warn().Int("unassigned", len(jobs)-len(ids)).Msg("optimizer left jobs unassigned, appending them in input order")
		for id, ok := range seen {
			if !ok {
				ids = append(ids, id)
			}
		}
	}
	return ids, nil
}

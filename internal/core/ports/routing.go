package ports

import (
	"context"
	"encoding/json"

	"github.com/geoprumo/route-service/internal/core/domain"
)

// OptimizeRequest asks the external optimizer to order Jobs between a fixed
// start and end. Job ids are positions in Jobs.
type OptimizeRequest struct {
	Jobs  [][2]float64 // [lon, lat]
	Start [2]float64
	End   [2]float64
}

// Directions is a routed path over an ordered coordinate list.
type Directions struct {
	Geometry        json.RawMessage
	DistanceMeters  float64
	DurationSeconds float64
}

// RoutingProvider is the external routing collaborator used by online mode.
type RoutingProvider interface {
	// Configured reports whether a credential is present. Callers check it
	// before issuing any request.
	Configured() bool
	// Optimize returns job ids in visiting order. Jobs the optimizer left
	// unassigned are omitted.
	Optimize(ctx context.Context, req OptimizeRequest) ([]int, error)
	// Directions routes through coords ([lon, lat]) in order.
	Directions(ctx context.Context, coords [][2]float64) (*Directions, error)
}

// Geocoder resolves free-text addresses.
type Geocoder interface {
	Configured() bool
	Search(ctx context.Context, query string) (*domain.Place, error)
	Autocomplete(ctx context.Context, query string) ([]string, error)
}

// GeocodeCache stores search results. A miss returns (nil, nil).
type GeocodeCache interface {
	Get(ctx context.Context, query string) (*domain.Place, error)
	Set(ctx context.Context, query string, result *domain.Place) error
}

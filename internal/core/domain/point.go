package domain

import (
	"encoding/json"
	"fmt"
)

// OptimizationMode selects the strategy used to order a point set.
type OptimizationMode string

const (
	ModeOnline  OptimizationMode = "online"
	ModeOffline OptimizationMode = "offline"
)

// ParseMode validates a caller-supplied mode string.
func ParseMode(s string) (OptimizationMode, error) {
	switch m := OptimizationMode(s); m {
	case ModeOnline, ModeOffline:
		return m, nil
	}
	return "", fmt.Errorf("%w: unsupported optimization mode %q", ErrValidation, s)
}

// Coordinates represents a geographic point in decimal degrees.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Valid reports whether the pair lies inside the WGS84 ranges.
// NaN never satisfies the comparisons.
func (c Coordinates) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lng >= -180 && c.Lng <= 180
}

// LonLat returns the pair in [lon, lat] order used by GeoJSON-style APIs.
func (c Coordinates) LonLat() [2]float64 {
	return [2]float64{c.Lng, c.Lat}
}

// Point is the canonical waypoint. OriginalIndex ties it back to the row of
// the ingestion batch it came from.
type Point struct {
	Order         int
	Name          string
	Latitude      float64
	Longitude     float64
	Address       string
	Category      string
	Observations  string
	OriginalIndex int
	Active        bool
}

// Coordinates returns the point's position.
func (p Point) Coordinates() Coordinates {
	return Coordinates{Lat: p.Latitude, Lng: p.Longitude}
}

// Summary is the travel summary reported by the directions service.
type Summary struct {
	DistanceKm  float64
	DurationMin float64
}

// Route is the terminal artifact of an optimization. Geometry and Summary are
// only set when the online strategy produced the order.
type Route struct {
	Points   []Point
	Geometry json.RawMessage
	Summary  *Summary
}

// NewRoute copies points into a route and assigns Order 1..N.
func NewRoute(points []Point) *Route {
	out := make([]Point, len(points))
	copy(out, points)
	Renumber(out)
	return &Route{Points: out}
}

// Renumber assigns Order 1..N in slice order.
func Renumber(points []Point) {
	for i := range points {
		points[i].Order = i + 1
	}
}

// Partition splits points into active and inactive sets, preserving order.
func Partition(points []Point) (active, inactive []Point) {
	for _, p := range points {
		if p.Active {
			active = append(active, p)
		} else {
			inactive = append(inactive, p)
		}
	}
	return active, inactive
}

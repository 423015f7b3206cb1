package geo

import (
	"math"

	"github.com/geoprumo/route-service/internal/core/domain"
)

// EarthRadiusMeters is the mean radius used for haversine distances.
const EarthRadiusMeters = 6371000.0

// Distance returns the great-circle distance between a and b in whole meters.
func Distance(a, b domain.Coordinates) int {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := lat2 - lat1
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return int(math.Round(EarthRadiusMeters * c))
}

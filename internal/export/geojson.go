package export

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/geoprumo/route-service/internal/core/domain"
)

// FeatureCollection builds one Point feature per stop and, for two or more
// stops, a LineString through them in order.
func FeatureCollection(points []domain.Point) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	line := make(orb.LineString, 0, len(points))
	for _, p := range points {
		pt := orb.Point{p.Longitude, p.Latitude}
		line = append(line, pt)

		f := geojson.NewFeature(pt)
		f.Properties["name"] = p.Name
		f.Properties["order"] = p.Order
		f.Properties["active"] = p.Active
		if p.Observations != "" {
			f.Properties["observations"] = p.Observations
		}
		fc.Append(f)
	}
	if len(line) > 1 {
		f := geojson.NewFeature(line)
		f.Properties["name"] = RouteName
		fc.Append(f)
	}
	return fc
}

// GeoJSON renders FeatureCollection(points).
func GeoJSON(points []domain.Point) ([]byte, error) {
	return FeatureCollection(points).MarshalJSON()
}

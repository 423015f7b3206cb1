package export

import (
	"github.com/tkrajina/gpxgo/gpx"

	"github.com/geoprumo/route-service/internal/core/domain"
)

// GPX renders the stops as waypoints and as one ordered route.
func GPX(points []domain.Point) ([]byte, error) {
	doc := gpx.GPX{Name: RouteName}
	route := gpx.GPXRoute{Name: RouteName}
	for _, p := range points {
		wp := gpx.GPXPoint{
			Point:       gpx.Point{Latitude: p.Latitude, Longitude: p.Longitude},
			Name:        p.Name,
			Description: describe(p),
		}
		doc.Waypoints = append(doc.Waypoints, wp)
		route.Points = append(route.Points, wp)
	}
	doc.Routes = []gpx.GPXRoute{route}
	return doc.ToXml(gpx.ToXmlParams{Version: "1.1", Indent: true})
}

package export

import (
	"strings"

	"github.com/geoprumo/route-service/internal/core/domain"
)

const (
	mapsDirBaseURL = "https://www.google.com/maps/dir/"
	// maxStopsPerLink is the number of stops Google Maps accepts in one
	// directions URL (origin, destination and eight waypoints).
	maxStopsPerLink = 10
)

// GoogleMapsLinks splits points into directions URLs of at most
// maxStopsPerLink stops. Each link starts at the last stop of the previous
// one so the legs connect.
func GoogleMapsLinks(points []domain.Point) []string {
	var links []string
	for i := 0; i < len(points); i += maxStopsPerLink - 1 {
		end := min(i+maxStopsPerLink, len(points))
		links = append(links, mapsDirURL(points[i:end]))
		if end == len(points) {
			break
		}
	}
	return links
}

func mapsDirURL(points []domain.Point) string {
	var b strings.Builder
	b.WriteString(mapsDirBaseURL)
	for _, p := range points {
		b.WriteString(coord(p.Latitude))
		b.WriteByte(',')
		b.WriteString(coord(p.Longitude))
		b.WriteByte('/')
	}
	return b.String()
}

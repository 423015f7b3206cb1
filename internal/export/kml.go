package export

import (
	"bytes"
	"strings"

	"github.com/twpayne/go-kml"

	"github.com/geoprumo/route-service/internal/core/domain"
)

const trackName = "Trajeto da Rota"

// KML renders one Placemark per stop plus a LineString through all stops.
func KML(points []domain.Point) ([]byte, error) {
	children := []kml.Element{kml.Name(RouteName)}
	line := make([]kml.Coordinate, 0, len(points))
	for _, p := range points {
		c := kml.Coordinate{Lon: p.Longitude, Lat: p.Latitude}
		line = append(line, c)
		children = append(children, kml.Placemark(
			kml.Name(p.Name),
			kml.Description(describe(p)),
			kml.Point(kml.Coordinates(c)),
		))
	}
	if len(line) > 1 {
		children = append(children, kml.Placemark(
			kml.Name(trackName),
			kml.LineString(
				kml.Tessellate(true),
				kml.Coordinates(line...),
			),
		))
	}

	var buf bytes.Buffer
	if err := kml.KML(kml.Document(children...)).WriteIndent(&buf, "", "  "); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// describe joins the optional text fields of a point for a description body.
func describe(p domain.Point) string {
	var parts []string
	for _, s := range []string{p.Address, p.Category, p.Observations} {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " | ")
}

package ingest

import (
	"fmt"
	"strings"

	"github.com/tkrajina/gpxgo/gpx"
)

const defaultWaypointName = "Waypoint GPX"

// ParseGPX extracts one record per waypoint.
func ParseGPX(content []byte) (Table, error) {
	doc, err := gpx.ParseBytes(content)
	if err != nil {
		return Table{}, fmt.Errorf("decode gpx: %w", err)
	}

	rows := make([][]string, 0, len(doc.Waypoints))
	for _, wp := range doc.Waypoints {
		name := strings.TrimSpace(wp.Name)
		if name == "" {
			name = defaultWaypointName
		}
		rows = append(rows, []string{name, formatFloat(wp.Latitude), formatFloat(wp.Longitude)})
	}
	return NewTable([]string{ColName, ColLatitude, ColLongitude}, rows), nil
}

package ingest

import (
	"strconv"

	"github.com/geoprumo/route-service/internal/core/domain"
)

var pointColumns = []string{
	ColName, ColLatitude, ColLongitude, ColObservations, ColAddress, ColCategory, ColActive,
}

// FromPoints re-ingests previously processed points so they go through the
// same cleaning as fresh input. Provenance is reassigned by the engine.
func FromPoints(points []domain.Point) Table {
	rows := make([][]string, 0, len(points))
	for _, p := range points {
		rows = append(rows, []string{
			p.Name,
			formatFloat(p.Latitude),
			formatFloat(p.Longitude),
			p.Observations,
			p.Address,
			p.Category,
			strconv.FormatBool(p.Active),
		})
	}
	return NewTable(pointColumns, rows)
}

package export

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/geoprumo/route-service/internal/core/domain"
	"github.com/geoprumo/route-service/internal/geo"
)

// utf8BOM makes spreadsheet applications detect the encoding.
const utf8BOM = "\ufeff"

var csvHeader = []string{"Ordem", "Nome", "Latitude", "Longitude", "Endereço", "Categoria", "Observações"}

var myMapsHeader = []string{"Ordem", "Nome", "Latitude", "Longitude", "Coordenadas DMS", "Endereço", "Categoria", "Observações"}

func coord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func csvRow(p domain.Point) []string {
	return []string{
		strconv.Itoa(p.Order),
		p.Name,
		coord(p.Latitude),
		coord(p.Longitude),
		p.Address,
		p.Category,
		p.Observations,
	}
}

// CSV renders the route as a UTF-8 CSV with a byte-order mark.
func CSV(points []domain.Point) ([]byte, error) {
	rows := make([][]string, len(points))
	for i, p := range points {
		rows[i] = csvRow(p)
	}
	return writeCSV(csvHeader, rows)
}

// MyMapsCSV is CSV plus a DMS column, ready for import into Google My Maps.
func MyMapsCSV(points []domain.Point) ([]byte, error) {
	rows := make([][]string, len(points))
	for i, p := range points {
		dms := geo.DecimalToDMS(p.Latitude, true) + " " + geo.DecimalToDMS(p.Longitude, false)
		rows[i] = []string{
			strconv.Itoa(p.Order),
			p.Name,
			coord(p.Latitude),
			coord(p.Longitude),
			dms,
			p.Address,
			p.Category,
			p.Observations,
		}
	}
	return writeCSV(myMapsHeader, rows)
}

func writeCSV(header []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(utf8BOM)
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return nil, err
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

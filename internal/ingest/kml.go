package ingest

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

const defaultPlacemarkName = "Ponto KML"

// ParseKML extracts one record per Placemark: its name and the first
// lon,lat pair of its coordinates. Namespaces are ignored and the decoder is
// lenient about malformed markup.
func ParseKML(content []byte) (Table, error) {
	dec := xml.NewDecoder(bytes.NewReader(content))
	dec.Strict = false
	dec.AutoClose = xml.HTMLAutoClose
	dec.Entity = xml.HTMLEntity

	var (
		rows      [][]string
		depth     int
		pmDepth   = -1
		name      string
		coords    string
		inName    bool
		inCoords  bool
		gotCoords bool
	)

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			if len(rows) == 0 {
				return Table{}, fmt.Errorf("decode kml: %w", err)
			}
			break
		}

		switch el := tok.(type) {
		case xml.StartElement:
			depth++
			switch {
			case el.Name.Local == "Placemark":
				pmDepth = depth
				name, coords, gotCoords = "", "", false
			case pmDepth >= 0 && el.Name.Local == "name" && depth == pmDepth+1:
				inName = true
			case pmDepth >= 0 && el.Name.Local == "coordinates" && !gotCoords:
				inCoords = true
			}
		case xml.CharData:
			if inName {
				name += string(el)
			}
			if inCoords {
				coords += string(el)
			}
		case xml.EndElement:
			switch {
			case el.Name.Local == "name":
				inName = false
			case el.Name.Local == "coordinates" && inCoords:
				inCoords = false
				gotCoords = true
			case el.Name.Local == "Placemark" && pmDepth >= 0:
				if row, ok := placemarkRow(name, coords); ok {
					rows = append(rows, row)
				}
				pmDepth = -1
			}
			depth--
		}
	}

	return NewTable([]string{ColName, ColLatitude, ColLongitude}, rows), nil
}

// placemarkRow turns KML "lon,lat[,alt]" text into a (name, lat, lon) row.
func placemarkRow(name, coords string) ([]string, bool) {
	parts := strings.Split(strings.TrimSpace(coords), ",")
	if len(parts) < 2 {
		return nil, false
	}
	lon := strings.TrimSpace(parts[0])
	lat := strings.Fields(parts[1])
	if lon == "" || len(lat) == 0 {
		return nil, false
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = defaultPlacemarkName
	}
	return []string{name, lat[0], lon}, true
}

package ingest

import (
	"strings"

	"github.com/geoprumo/route-service/internal/geo"
)

// ParseLink handles a single non-map link or coordinate string: the extracted
// pair becomes one record named after the link itself.
func ParseLink(link string) Table {
	link = strings.TrimSpace(link)
	c, ok := geo.Extract(link)
	if !ok {
		return Table{}
	}
	return NewTable(
		[]string{ColName, ColLatitude, ColLongitude},
		[][]string{{link, formatFloat(c.Lat), formatFloat(c.Lng)}},
	)
}

// ParseText handles pasted text, trying in order:
//
//   - a delimited table with a header row whose columns yield usable
//     coordinates;
//   - a headerless list, when the first line carries a pair: every line is
//     extracted on its own;
//   - one record from the first line that carries a pair, named after the
//     text's first line.
func ParseText(text string) (Table, error) {
	var lines []string
	for _, l := range strings.Split(text, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	if len(lines) == 0 {
		return Table{}, nil
	}

	if t, err := ParseDelimited([]byte(text)); err == nil && hasCoordinates(t) {
		return t, nil
	}

	if _, ok := geo.Extract(lines[0]); ok {
		parts := make([]Table, 0, len(lines))
		for _, l := range lines {
			if t := ParseLink(l); !t.Empty() {
				parts = append(parts, t)
			}
		}
		return Concat(parts...), nil
	}

	for _, l := range lines[1:] {
		if c, ok := geo.Extract(l); ok {
			return NewTable(
				[]string{ColName, ColLatitude, ColLongitude},
				[][]string{{lines[0], formatFloat(c.Lat), formatFloat(c.Lng)}},
			), nil
		}
	}
	return Table{}, nil
}

// hasCoordinates reports whether t, once standardized, keeps at least one
// row with valid coordinates.
func hasCoordinates(t Table) bool {
	return !Clean(RecoverCoordinates(Standardize(t))).Empty()
}

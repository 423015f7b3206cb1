package ingest

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/geoprumo/route-service/internal/core/domain"
	"github.com/geoprumo/route-service/internal/geo"
)

type synonyms struct {
	canonical string
	labels    []string
}

// columnSynonyms is checked in order; the first label present wins.
var columnSynonyms = []synonyms{
	{ColLatitude, []string{"latitude", "lat", "lat.", "latitude (wgs84)"}},
	{ColLongitude, []string{"longitude", "lon", "lng", "long.", "longitude (wgs84)"}},
	{ColName, []string{"nome", "name", "título", "ref", "referencia", "referência", "ponto", "local", "faixa", "ponto de bloqueio", "ponto_de_bloqueio"}},
	{ColLink, []string{"link", "url", "gmaps", "maps"}},
	{"Observations", []string{"obs", "observacoes", "observações", "desc", "descricao", "descrição"}},
}

// Standardize renames recognised columns to their canonical labels. Labels
// are compared case-insensitively after trimming; columns that already carry
// a canonical label are left alone and unknown columns pass through.
func Standardize(t Table) Table {
	lower := map[string]string{}
	for _, c := range t.columns {
		lower[strings.ToLower(strings.TrimSpace(c))] = c
	}

	rename := map[string]string{}
	for _, s := range columnSynonyms {
		if t.Has(s.canonical) {
			continue
		}
		for _, label := range s.labels {
			if orig, ok := lower[label]; ok {
				rename[orig] = s.canonical
				break
			}
		}
	}
	out := t.Rename(rename)
	if out.Has("Observations") {
		out = out.Rename(map[string]string{"Observations": ColObservations})
	}
	return out
}

// RecoverCoordinates looks for a text column holding coordinates when the
// table has no latitude/longitude pair. The first column where more than
// half of the non-empty values yield a pair is split into new
// Latitude/Longitude columns.
func RecoverCoordinates(t Table) Table {
	if t.Has(ColLatitude) && t.Has(ColLongitude) {
		return t
	}

	for _, col := range t.columns {
		values := t.Values(col)
		if !textual(values) {
			continue
		}

		lats := make([]string, len(values))
		lngs := make([]string, len(values))
		nonEmpty, hits := 0, 0
		for i, v := range values {
			if strings.TrimSpace(v) == "" {
				continue
			}
			nonEmpty++
			if c, ok := geo.Extract(v); ok {
				hits++
				lats[i] = formatFloat(c.Lat)
				lngs[i] = formatFloat(c.Lng)
			}
		}
		if hits > 0 && hits*2 > nonEmpty {
			return t.WithColumn(ColLatitude, lats).WithColumn(ColLongitude, lngs)
		}
	}
	return t
}

// textual reports whether a column holds free text rather than plain numbers.
func textual(values []string) bool {
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, err := strconv.ParseFloat(v, 64); err != nil {
			return true
		}
	}
	return false
}

var coordDecoration = regexp.MustCompile(`[°'"NnSsOoWwEe\s]`)

// ParseCoordinate strips degree marks, hemisphere letters and whitespace,
// accepts a decimal comma and parses the remainder.
func ParseCoordinate(s string) (float64, bool) {
	s = coordDecoration.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, ",", ".")
	if s == "" || strings.ContainsAny(s, "xXpP_") {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Clean keeps only rows whose coordinates parse and fall inside the valid
// ranges, rewriting both columns to plain decimals. Tables without both
// coordinate columns clean to an empty table.
func Clean(t Table) Table {
	if !t.Has(ColLatitude) || !t.Has(ColLongitude) {
		return Table{}
	}

	n := t.Len()
	lats := make([]string, n)
	lngs := make([]string, n)
	keep := make([]bool, n)
	for i := 0; i < n; i++ {
		lat, okLat := ParseCoordinate(t.Value(i, ColLatitude))
		lng, okLng := ParseCoordinate(t.Value(i, ColLongitude))
		if !okLat || !okLng || !(domain.Coordinates{Lat: lat, Lng: lng}).Valid() {
			continue
		}
		keep[i] = true
		lats[i] = formatFloat(lat)
		lngs[i] = formatFloat(lng)
	}

	return t.WithColumn(ColLatitude, lats).
		WithColumn(ColLongitude, lngs).
		Filter(func(i int) bool { return keep[i] })
}

// ToPoints converts a cleaned table into canonical points. Missing names
// become "Ponto N" by position.
func ToPoints(t Table) []domain.Point {
	points := make([]domain.Point, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		lat, _ := strconv.ParseFloat(t.Value(i, ColLatitude), 64)
		lng, _ := strconv.ParseFloat(t.Value(i, ColLongitude), 64)

		name := strings.TrimSpace(t.Value(i, ColName))
		if name == "" {
			name = "Ponto " + strconv.Itoa(i+1)
		}
		idx, err := strconv.Atoi(t.Value(i, ColOriginalIndex))
		if err != nil {
			idx = i
		}

		points = append(points, domain.Point{
			Name:          name,
			Latitude:      lat,
			Longitude:     lng,
			Address:       strings.TrimSpace(t.Value(i, ColAddress)),
			Category:      strings.TrimSpace(t.Value(i, ColCategory)),
			Observations:  strings.TrimSpace(t.Value(i, ColObservations)),
			OriginalIndex: idx,
			Active:        parseActive(t.Value(i, ColActive)),
		})
	}
	return points
}

func parseActive(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "false", "0", "no", "não", "nao":
		return false
	default:
		return true
	}
}

// Normalize runs the full pipeline over adapter outputs given in submission
// order: concatenate, index, standardize, recover coordinates and clean.
// Each source is standardized and recovered on its own first so that one
// source's canonical columns do not shadow another's synonyms. The returned
// count is the number of rows dropped by cleaning.
func Normalize(tables []Table) ([]domain.Point, int) {
	prepared := make([]Table, len(tables))
	for i, t := range tables {
		prepared[i] = RecoverCoordinates(Standardize(t))
	}

	batch := Indexed(Concat(prepared...))
	table := RecoverCoordinates(Standardize(batch))
	cleaned := Clean(table)
	return ToPoints(cleaned), batch.Len() - cleaned.Len()
}

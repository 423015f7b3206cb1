package domain

// SourceKind tags the shape of a raw input handed to the ingestion engine.
type SourceKind int

const (
	SourceDelimited SourceKind = iota
	SourceSpreadsheet
	SourcePlacemarks
	SourceWaypoints
	SourceMapLink
	SourceText
	SourcePoints
)

func (k SourceKind) String() string {
	switch k {
	case SourceDelimited:
		return "delimited"
	case SourceSpreadsheet:
		return "spreadsheet"
	case SourcePlacemarks:
		return "kml"
	case SourceWaypoints:
		return "gpx"
	case SourceMapLink:
		return "link"
	case SourceText:
		return "text"
	case SourcePoints:
		return "points"
	default:
		return "unknown"
	}
}

// Source is one raw input. Which field is meaningful depends on Kind:
// Content for file kinds, Text for links and free text, Points for
// previously processed points.
type Source struct {
	Kind    SourceKind
	Name    string
	Content []byte
	Text    string
	Points  []Point
}

// Place is a geocoding result.
type Place struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

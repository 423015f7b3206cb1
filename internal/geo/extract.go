// Package geo holds the coordinate primitives shared by ingestion and
// optimization: text extraction, great-circle distance and DMS rendering.
package geo

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/geoprumo/route-service/internal/core/domain"
)

var (
	// @lat,lon as found in shared map URLs. Tiny values may come in
	// exponent form (@1e-07,-43.5).
	atPattern = regexp.MustCompile(`@([-+]?\d+(?:\.\d+)?(?:[eE][-+]?\d+)?),([-+]?\d+(?:\.\d+)?(?:[eE][-+]?\d+)?)`)
	// Signed integer or decimal token, optionally with an exponent.
	numberPattern = regexp.MustCompile(`[-+]?(?:\d*\.\d+|\d+)(?:[eE][-+]?\d+)?`)
)

// Extract recovers one latitude/longitude pair from arbitrary text.
//
// An @lat,lon fragment wins when it is in range. Otherwise the first two
// numeric tokens are tried as (lat, lon) and then swapped.
func Extract(text string) (domain.Coordinates, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.Coordinates{}, false
	}

	if m := atPattern.FindStringSubmatch(text); m != nil {
		lat, errLat := strconv.ParseFloat(m[1], 64)
		lng, errLng := strconv.ParseFloat(m[2], 64)
		c := domain.Coordinates{Lat: lat, Lng: lng}
		if errLat == nil && errLng == nil && c.Valid() {
			return c, true
		}
	}

	tokens := numberPattern.FindAllString(text, 2)
	if len(tokens) < 2 {
		return domain.Coordinates{}, false
	}
	c1, err1 := strconv.ParseFloat(tokens[0], 64)
	c2, err2 := strconv.ParseFloat(tokens[1], 64)
	if err1 != nil || err2 != nil {
		return domain.Coordinates{}, false
	}

	if c := (domain.Coordinates{Lat: c1, Lng: c2}); c.Valid() {
		return c, true
	}
	if c := (domain.Coordinates{Lat: c2, Lng: c1}); c.Valid() {
		return c, true
	}
	return domain.Coordinates{}, false
}

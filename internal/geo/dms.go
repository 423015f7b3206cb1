package geo

import (
	"fmt"
	"math"
)

// DecimalToDMS renders a decimal degree as degrees, minutes and seconds with a
// hemisphere letter, e.g. 19°55'0.12" S.
func DecimalToDMS(deg float64, isLat bool) string {
	d := math.Trunc(deg)
	mFloat := math.Abs(deg-d) * 60
	m := math.Trunc(mFloat)
	s := (mFloat - m) * 60

	var dir string
	switch {
	case isLat && deg >= 0:
		dir = "N"
	case isLat:
		dir = "S"
	case deg >= 0:
		dir = "E"
	default:
		dir = "W"
	}
	return fmt.Sprintf("%d°%d'%.2f\" %s", int(math.Abs(d)), int(m), s, dir)
}

package geo

import (
	"testing"

	"github.com/geoprumo/route-service/internal/core/domain"
)

var (
	beloHorizonte = domain.Coordinates{Lat: -19.9167, Lng: -43.9333}
	rioDeJaneiro  = domain.Coordinates{Lat: -22.9068, Lng: -43.1729}
)

func TestDistance_ReferenceCities(t *testing.T) {
	d := Distance(beloHorizonte, rioDeJaneiro)
	if d < 340000 || d > 360000 {
		t.Errorf("BH -> RJ = %d m, want between 340 and 360 km", d)
	}
}

func TestDistance_SymmetricAndZero(t *testing.T) {
	points := []domain.Coordinates{
		beloHorizonte,
		rioDeJaneiro,
		{Lat: 0, Lng: 0},
		{Lat: 51.5074, Lng: -0.1278},
		{Lat: -33.8688, Lng: 151.2093},
		{Lat: 89.9, Lng: 179.9},
	}
	for _, a := range points {
		if d := Distance(a, a); d != 0 {
			t.Errorf("Distance(%v, %v) = %d, want 0", a, a, d)
		}
		for _, b := range points {
			if Distance(a, b) != Distance(b, a) {
				t.Errorf("asymmetric distance between %v and %v", a, b)
			}
		}
	}
}

func TestDecimalToDMS(t *testing.T) {
	tests := []struct {
		deg   float64
		isLat bool
		want  string
	}{
		{-19.9167, true, "19°55'0.12\" S"},
		{-43.9333, false, "43°55'59.88\" W"},
		{10.5, true, "10°30'0.00\" N"},
		{0, false, "0°0'0.00\" E"},
	}
	for _, tt := range tests {
		if got := DecimalToDMS(tt.deg, tt.isLat); got != tt.want {
			t.Errorf("DecimalToDMS(%v, %v) = %q, want %q", tt.deg, tt.isLat, got, tt.want)
		}
	}
}

package domain

import (
	"errors"
	"math"
	"testing"
)

func TestParseMode(t *testing.T) {
	for _, s := range []string{"online", "offline"} {
		m, err := ParseMode(s)
		if err != nil {
			t.Fatalf("ParseMode(%q): unexpected error %v", s, err)
		}
		if string(m) != s {
			t.Errorf("ParseMode(%q) = %q", s, m)
		}
	}

	_, err := ParseMode("teleport")
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestCoordinates_Valid(t *testing.T) {
	tests := []struct {
		name string
		c    Coordinates
		want bool
	}{
		{"origin", Coordinates{0, 0}, true},
		{"bounds", Coordinates{-90, 180}, true},
		{"lat too high", Coordinates{90.0001, 0}, false},
		{"lng too low", Coordinates{0, -180.5}, false},
		{"nan", Coordinates{math.NaN(), 0}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.Valid(); got != tt.want {
				t.Errorf("Valid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewRoute_AssignsOrderWithoutTouchingInput(t *testing.T) {
	in := []Point{{Name: "a"}, {Name: "b"}, {Name: "c"}}
	r := NewRoute(in)

	for i, p := range r.Points {
		if p.Order != i+1 {
			t.Errorf("point %d: order = %d, want %d", i, p.Order, i+1)
		}
	}
	if in[0].Order != 0 {
		t.Errorf("input mutated: order = %d", in[0].Order)
	}
}

func TestPartition(t *testing.T) {
	in := []Point{{Name: "a", Active: true}, {Name: "b"}, {Name: "c", Active: true}}
	active, inactive := Partition(in)
	if len(active) != 2 || active[0].Name != "a" || active[1].Name != "c" {
		t.Errorf("unexpected active set: %+v", active)
	}
	if len(inactive) != 1 || inactive[0].Name != "b" {
		t.Errorf("unexpected inactive set: %+v", inactive)
	}
}

package ingest

import (
	"reflect"
	"testing"
)

func TestStandardize_Synonyms(t *testing.T) {
	tbl := NewTable([]string{" LAT ", "lng", "ref", "extra"}, [][]string{{"1", "2", "x", "y"}})

	got := Standardize(tbl).Columns()
	want := []string{"Latitude", "Longitude", "Nome", "extra"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Standardize columns = %v, want %v", got, want)
	}
}

func TestStandardize_CanonicalColumnNotRenamed(t *testing.T) {
	tbl := NewTable([]string{"Latitude", "lat", "Longitude", "name", "Descrição", "url"}, nil)

	got := Standardize(tbl).Columns()
	want := []string{"Latitude", "lat", "Longitude", "Nome", "observations", "Link"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Standardize columns = %v, want %v", got, want)
	}
}

func TestStandardize_FirstSynonymWins(t *testing.T) {
	tbl := NewTable([]string{"local", "nome"}, nil)

	got := Standardize(tbl).Columns()
	want := []string{"local", "Nome"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Standardize columns = %v, want %v", got, want)
	}
}

func TestParseCoordinate(t *testing.T) {
	tests := []struct {
		in     string
		want   float64
		wantOK bool
	}{
		{"-19,9167° S", -19.9167, true},
		{"  -43.9333 ", -43.9333, true},
		{"43°W", 43, true},
		{"", 0, false},
		{"abc", 0, false},
		{"0x1p-2", 0, false},
		{"1.2.3", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseCoordinate(tt.in)
		if ok != tt.wantOK || (ok && got != tt.want) {
			t.Errorf("ParseCoordinate(%q) = (%v, %v), want (%v, %v)", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestClean_DropsInvalidRows(t *testing.T) {
	tbl := NewTable([]string{ColLatitude, ColLongitude, ColName}, [][]string{
		{"-19,9167° S", "-43,9333", "BH"},
		{"-22.9068", "200.0", "out of range"},
		{"n/a", "-43.1", "not numeric"},
		{"", "-43.1", "missing"},
		{"-22.9068", "-43.1729", "RJ"},
	})

	got := Clean(tbl)
	if got.Len() != 2 {
		t.Fatalf("expected 2 rows, got %d", got.Len())
	}
	if got.Value(0, ColLatitude) != "-19.9167" || got.Value(0, ColLongitude) != "-43.9333" {
		t.Errorf("row 0 = (%s, %s)", got.Value(0, ColLatitude), got.Value(0, ColLongitude))
	}
	if got.Value(1, ColName) != "RJ" {
		t.Errorf("row 1 name = %q", got.Value(1, ColName))
	}
}

func TestClean_WithoutCoordinateColumns(t *testing.T) {
	tbl := NewTable([]string{"a"}, [][]string{{"1"}})
	if !Clean(tbl).Empty() {
		t.Error("expected empty table when coordinate columns are missing")
	}
}

func TestRecoverCoordinates(t *testing.T) {
	tbl := NewTable([]string{"id", "descricao", "link"}, [][]string{
		{"1", "sem coordenadas", "https://maps.google.com/@-19.9319,-43.9378,17z"},
		{"2", "", "https://maps.google.com/@-22.9068,-43.1729,17z"},
		{"3", "", "sem link"},
	})

	got := RecoverCoordinates(tbl)
	if !got.Has(ColLatitude) || !got.Has(ColLongitude) {
		t.Fatalf("coordinate columns not recovered: %v", got.Columns())
	}
	if got.Value(0, ColLatitude) != "-19.9319" || got.Value(1, ColLongitude) != "-43.1729" {
		t.Errorf("unexpected recovered values: %v / %v", got.Values(ColLatitude), got.Values(ColLongitude))
	}
	if got.Value(2, ColLatitude) != "" {
		t.Errorf("row without coordinates should stay empty")
	}
}

func TestRecoverCoordinates_NeedsMajority(t *testing.T) {
	tbl := NewTable([]string{"texto"}, [][]string{
		{"-19.9319,-43.9378"},
		{"nada"},
	})

	if RecoverCoordinates(tbl).Has(ColLatitude) {
		t.Error("a column with exactly half extractable values must not be adopted")
	}
}

func TestRecoverCoordinates_KeepsExistingPair(t *testing.T) {
	tbl := NewTable([]string{ColLatitude, ColLongitude, "texto"}, [][]string{{"1", "2", "-19.9,-43.9"}})
	got := RecoverCoordinates(tbl)
	if got.Value(0, ColLatitude) != "1" {
		t.Error("existing coordinates must not be replaced")
	}
}

func TestNormalize_HeaderSynonymsAndRowCount(t *testing.T) {
	src, err := ParseDelimited([]byte("lat;lng;ref\n-19,9167;-43,9333;BH\n-22,9068;200;bad\nx;-43;nan\n-22,9068;-43,1729;RJ\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	std := Standardize(Indexed(src))
	for _, c := range []string{"Latitude", "Longitude", "Nome"} {
		if !std.Has(c) {
			t.Fatalf("missing standardized column %s in %v", c, std.Columns())
		}
	}

	points, dropped := Normalize([]Table{src})
	if len(points) != 2 || dropped != 2 {
		t.Fatalf("expected 2 points and 2 dropped, got %d and %d", len(points), dropped)
	}
	if points[0].Name != "BH" || points[1].Name != "RJ" {
		t.Errorf("unexpected names %q, %q", points[0].Name, points[1].Name)
	}
	if points[1].OriginalIndex != 3 {
		t.Errorf("RJ original_index = %d, want 3", points[1].OriginalIndex)
	}
}

func TestNormalize_ProvenanceAcrossSources(t *testing.T) {
	a := NewTable([]string{"lat", "lon"}, [][]string{{"-19.9", "-43.9"}, {"-20.1", "-44.0"}})
	b := NewTable([]string{ColName, ColLatitude, ColLongitude}, [][]string{{"K", "-22.9", "-43.1"}})

	points, _ := Normalize([]Table{a, {}, b})
	if len(points) != 3 {
		t.Fatalf("expected 3 points, got %d", len(points))
	}
	for i, p := range points {
		if p.OriginalIndex != i {
			t.Errorf("point %d original_index = %d", i, p.OriginalIndex)
		}
		if !p.Active {
			t.Errorf("point %d should default to active", i)
		}
	}
	if points[0].Name != "Ponto 1" || points[2].Name != "K" {
		t.Errorf("unexpected names %q, %q", points[0].Name, points[2].Name)
	}
}

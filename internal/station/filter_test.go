package station

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func st(id, province, locality, cp string, prices Prices) Station {
	if prices == nil {
		prices = Prices{}
	}
	return Station{ID: id, Province: province, Locality: locality, PostalCode: cp, Prices: prices}
}

func ids(stations []Station) []string {
	out := make([]string, len(stations))
	for i, s := range stations {
		out[i] = s.ID
	}
	return out
}

func TestApply_SortsByPriceAbsentLast(t *testing.T) {
	snapshot := []Station{
		st("absent", "MADRID", "MADRID", "28001", nil),
		st("mid", "MADRID", "MADRID", "28002", Prices{Diesel: 1.5}),
		st("low", "MADRID", "MADRID", "28003", Prices{Diesel: 1.2}),
	}

	got := Apply(snapshot, Filter{Fuel: Diesel})
	assert.Equal(t, []string{"low", "mid", "absent"}, ids(got))
}

func TestApply_DefaultsToDiesel(t *testing.T) {
	snapshot := []Station{
		st("a", "", "", "", Prices{Diesel: 1.6, Gasoline95: 1.1}),
		st("b", "", "", "", Prices{Diesel: 1.3, Gasoline95: 1.9}),
	}

	assert.Equal(t, []string{"b", "a"}, ids(Apply(snapshot, Filter{})))
	assert.Equal(t, []string{"a", "b"}, ids(Apply(snapshot, Filter{Fuel: Gasoline95})))
}

func TestApply_StableTies(t *testing.T) {
	snapshot := []Station{
		st("first", "", "", "", Prices{Diesel: 1.4}),
		st("none1", "", "", "", nil),
		st("second", "", "", "", Prices{Diesel: 1.4}),
		st("none2", "", "", "", nil),
		st("cheap", "", "", "", Prices{Diesel: 1.0}),
	}

	got := Apply(snapshot, DefaultFilter())
	assert.Equal(t, []string{"cheap", "first", "second", "none1", "none2"}, ids(got))
}

func TestApply_ProvinceCaseInsensitiveSubstring(t *testing.T) {
	snapshot := []Station{
		st("mad", "MADRID", "GETAFE", "28901", nil),
		st("bcn", "BARCELONA", "BADALONA", "08911", nil),
	}

	assert.Equal(t, []string{"mad"}, ids(Apply(snapshot, Filter{Province: "ADR"})))
	assert.Equal(t, []string{"mad"}, ids(Apply(snapshot, Filter{Province: "madrid"})))
	assert.Empty(t, Apply(snapshot, Filter{Province: "VALENCIA"}))
}

func TestApply_Conjunctive(t *testing.T) {
	snapshot := []Station{
		st("1", "MADRID", "GETAFE", "28901", nil),
		st("2", "MADRID", "ALCORCON", "28921", nil),
		st("3", "TOLEDO", "GETAFE NORTE", "45001", nil),
	}

	got := Apply(snapshot, Filter{Province: "madrid", Locality: "getafe"})
	assert.Equal(t, []string{"1"}, ids(got))

	got = Apply(snapshot, Filter{PostalCode: "289"})
	assert.Equal(t, []string{"1", "2"}, ids(got))

	got = Apply(snapshot, Filter{Locality: "getafe", PostalCode: "45"})
	assert.Equal(t, []string{"3"}, ids(got))
}

func TestApply_Deterministic(t *testing.T) {
	snapshot := []Station{
		st("a", "X", "", "", Prices{Diesel: 1.3}),
		st("b", "X", "", "", nil),
		st("c", "X", "", "", Prices{Diesel: 1.3}),
	}
	f := Filter{Province: "x", Fuel: Diesel}
	assert.Equal(t, ids(Apply(snapshot, f)), ids(Apply(snapshot, f)))
	// input untouched
	assert.Equal(t, []string{"a", "b", "c"}, ids(snapshot))
}

func TestProjections(t *testing.T) {
	snapshot := []Station{
		st("1", "MADRID", "GETAFE", "28901", Prices{Diesel: 1.50}),
		st("2", "MADRID", "ALCORCON", "28921", Prices{Diesel: 1.30}),
		st("3", "TOLEDO", "TALAVERA", "45600", Prices{Diesel: 1.40, Gasoline95: 1.6}),
		st("4", "TOLEDO", "TOLEDO", "45001", nil),
	}

	assert.Equal(t, []string{"2", "1"}, ids(ByProvince(snapshot, "mad")))
	assert.Equal(t, []string{"3"}, ids(ByLocality(snapshot, "talav")))
	assert.Equal(t, []string{"3", "4"}, ids(ByPostalCode(snapshot, "45")))

	assert.Equal(t, []string{"2", "3"}, ids(Cheapest(snapshot, Diesel, 2)))
	assert.Equal(t, []string{"2", "3", "1"}, ids(Cheapest(snapshot, Diesel, 0)))
	assert.Equal(t, []string{"3"}, ids(Cheapest(snapshot, Gasoline95, 10)))
	assert.Empty(t, Cheapest(snapshot, LPG, 10))
}

func TestProvincesAndLocalities(t *testing.T) {
	snapshot := []Station{
		st("1", "BADAJOZ", "MERIDA", "", nil),
		st("2", "ÁVILA", "ARENAS", "", nil),
		st("3", "ALBACETE", "HELLIN", "", nil),
		st("4", "ÁVILA", "ÁVILA", "", nil),
		st("5", "", "", "", nil),
	}

	assert.Equal(t, []string{"ALBACETE", "ÁVILA", "BADAJOZ"}, Provinces(snapshot))
	assert.Equal(t, []string{"ARENAS", "ÁVILA", "HELLIN", "MERIDA"}, Localities(snapshot))
	assert.Equal(t, []string{"ARENAS", "ÁVILA"}, LocalitiesIn(snapshot, "ÁVILA"))
	assert.Equal(t, Localities(snapshot), LocalitiesIn(snapshot, ""))
	assert.Empty(t, LocalitiesIn(snapshot, "ávila"))
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "N/D", FormatPrice(0, false))
	assert.Equal(t, "1.409", FormatPrice(1.409, true))
	assert.Equal(t, "1.500", FormatPrice(1.5, true))

	s := st("1", "", "", "", Prices{Diesel: 1.2})
	assert.Equal(t, "1.200", s.PriceLabel(Diesel))
	assert.Equal(t, "N/D", s.PriceLabel(CNG))

	d := 12.345
	assert.Equal(t, "12.35", FormatDistance(&d))
	assert.Empty(t, FormatDistance(nil))
}

func TestMapsURL(t *testing.T) {
	s := Station{Latitude: 40.5, Longitude: -3.25}
	require.Equal(t, "https://www.google.com/maps/search/?api=1&query=40.5,-3.25", s.MapsURL())
}

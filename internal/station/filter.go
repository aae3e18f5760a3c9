package station

import (
	"cmp"
	"math"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Filter selects and orders stations. Empty text fields do not filter.
type Filter struct {
	Province   string   `json:"province"`
	Locality   string   `json:"locality"`
	PostalCode string   `json:"postalCode"`
	Fuel       FuelType `json:"fuel"`
}

// DefaultFilter returns a filter that matches everything and sorts by diesel.
func DefaultFilter() Filter {
	return Filter{Fuel: DefaultFuel}
}

// FuelOrDefault returns the selected fuel, falling back to DefaultFuel.
func (f Filter) FuelOrDefault() FuelType {
	if f.Fuel == "" {
		return DefaultFuel
	}
	return f.Fuel
}

// Matches reports whether s satisfies every non-empty criterion of f.
func (f Filter) Matches(s Station) bool {
	if f.Province != "" && !containsFold(s.Province, f.Province) {
		return false
	}
	if f.Locality != "" && !containsFold(s.Locality, f.Locality) {
		return false
	}
	if f.PostalCode != "" && !strings.Contains(s.PostalCode, strings.TrimSpace(f.PostalCode)) {
		return false
	}
	return true
}

// Apply returns the stations matching f ordered by ascending price of the
// selected fuel. Stations without that price go last; ties keep input order.
func Apply(stations []Station, f Filter) []Station {
	out := make([]Station, 0, len(stations))
	for _, s := range stations {
		if f.Matches(s) {
			out = append(out, s)
		}
	}
	SortByPrice(out, f.FuelOrDefault())
	return out
}

// SortByPrice stably sorts stations in place by ascending price of fuel.
func SortByPrice(stations []Station, fuel FuelType) {
	slices.SortStableFunc(stations, func(a, b Station) int {
		return cmp.Compare(priceOrInf(a, fuel), priceOrInf(b, fuel))
	})
}

func priceOrInf(s Station, fuel FuelType) float64 {
	if v, ok := s.Price(fuel); ok {
		return v
	}
	return math.Inf(1)
}

// ByProvince returns the stations whose province contains province, ignoring case.
func ByProvince(stations []Station, province string) []Station {
	return Apply(stations, Filter{Province: province})
}

// ByLocality returns the stations whose locality contains locality, ignoring case.
func ByLocality(stations []Station, locality string) []Station {
	return Apply(stations, Filter{Locality: locality})
}

// ByPostalCode returns the stations whose postal code contains cp.
func ByPostalCode(stations []Station, cp string) []Station {
	return Apply(stations, Filter{PostalCode: cp})
}

// Cheapest returns at most limit stations that sell fuel, cheapest first.
// A limit <= 0 returns them all.
func Cheapest(stations []Station, fuel FuelType, limit int) []Station {
	out := make([]Station, 0)
	for _, s := range stations {
		if _, ok := s.Price(fuel); ok {
			out = append(out, s)
		}
	}
	SortByPrice(out, fuel)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Provinces returns the distinct non-empty provinces, sorted with Spanish collation.
func Provinces(stations []Station) []string {
	return distinct(stations, func(s Station) string { return s.Province })
}

// Localities returns the distinct non-empty localities, sorted with Spanish collation.
func Localities(stations []Station) []string {
	return distinct(stations, func(s Station) string { return s.Locality })
}

// LocalitiesIn returns the localities of the stations in province (exact
// match). An empty province returns every locality.
func LocalitiesIn(stations []Station, province string) []string {
	if province == "" {
		return Localities(stations)
	}
	inProvince := make([]Station, 0)
	for _, s := range stations {
		if s.Province == province {
			inProvince = append(inProvince, s)
		}
	}
	return Localities(inProvince)
}

func distinct(stations []Station, key func(Station) string) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, s := range stations {
		k := key(s)
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	collate.New(language.Spanish).SortStrings(out)
	return out
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(strings.TrimSpace(substr)))
}

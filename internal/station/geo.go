package station

import (
	"cmp"
	"math"
	"slices"
)

// EarthRadiusKm is the mean Earth radius used by Haversine.
const EarthRadiusKm = 6371.0

// Haversine returns the great-circle distance in km between a and b.
func Haversine(a, b Coordinates) float64 {
	dLat := toRadians(b.Latitude - a.Latitude)
	dLon := toRadians(b.Longitude - a.Longitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(a.Latitude))*math.Cos(toRadians(b.Latitude))*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	return EarthRadiusKm * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

// RankByDistance returns a copy of stations annotated with their distance to
// origin, nearest first. Stations at the same distance keep input order.
func RankByDistance(stations []Station, origin Coordinates) []Station {
	out := make([]Station, len(stations))
	for i, s := range stations {
		d := Haversine(origin, s.Position())
		s.Distance = &d
		out[i] = s
	}
	slices.SortStableFunc(out, func(a, b Station) int {
		return cmp.Compare(*a.Distance, *b.Distance)
	})
	return out
}

// WithinRadius keeps the ranked stations no farther than km. A radius <= 0
// keeps everything. Stations without a distance are dropped.
func WithinRadius(ranked []Station, km float64) []Station {
	if km <= 0 {
		return ranked
	}
	out := make([]Station, 0, len(ranked))
	for _, s := range ranked {
		if s.Distance != nil && *s.Distance <= km {
			out = append(out, s)
		}
	}
	return out
}

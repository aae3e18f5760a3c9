package pipeline

import (
	"context"
	"fmt"
	"slices"

	"github.com/rubiojr/gasolineras/internal/station"
)

// The queries below are projections over the latest snapshot. They only fetch
// when no snapshot exists yet, and then share the pipeline's in-flight fetch.

// ByProvince returns the stations in provinces matching province.
func (p *Pipeline) ByProvince(ctx context.Context, province string) ([]station.Station, error) {
	snap, err := p.Stations(ctx)
	if err != nil {
		return nil, err
	}
	return station.ByProvince(snap.Stations, province), nil
}

// ByLocality returns the stations in localities matching locality.
func (p *Pipeline) ByLocality(ctx context.Context, locality string) ([]station.Station, error) {
	snap, err := p.Stations(ctx)
	if err != nil {
		return nil, err
	}
	return station.ByLocality(snap.Stations, locality), nil
}

// ByPostalCode returns the stations whose postal code contains cp.
func (p *Pipeline) ByPostalCode(ctx context.Context, cp string) ([]station.Station, error) {
	snap, err := p.Stations(ctx)
	if err != nil {
		return nil, err
	}
	return station.ByPostalCode(snap.Stations, cp), nil
}

// Cheapest returns the limit cheapest stations for fuel. Results are memoized
// per snapshot.
func (p *Pipeline) Cheapest(ctx context.Context, fuel station.FuelType, limit int) ([]station.Station, error) {
	snap, err := p.Stations(ctx)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("%s:%s:%d", snap.ID, fuel, limit)
	if cached, ok := p.cheapest.Get(key); ok {
		p.log.Debug("Using cached data", "key", key)
		return slices.Clone(cached), nil
	}
	out := station.Cheapest(snap.Stations, fuel, limit)
	p.cheapest.Add(key, out)
	return slices.Clone(out), nil
}

// Filter applies f to the latest snapshot.
func (p *Pipeline) Filter(ctx context.Context, f station.Filter) ([]station.Station, error) {
	snap, err := p.Stations(ctx)
	if err != nil {
		return nil, err
	}
	return station.Apply(snap.Stations, f), nil
}

// Nearby ranks the latest snapshot by distance to origin, keeping stations
// within radiusKm (all of them when radiusKm <= 0).
func (p *Pipeline) Nearby(ctx context.Context, origin station.Coordinates, radiusKm float64) ([]station.Station, error) {
	snap, err := p.Stations(ctx)
	if err != nil {
		return nil, err
	}
	return station.WithinRadius(station.RankByDistance(snap.Stations, origin), radiusKm), nil
}

// Provinces returns the distinct provinces of the latest snapshot.
func (p *Pipeline) Provinces(ctx context.Context) ([]string, error) {
	snap, err := p.Stations(ctx)
	if err != nil {
		return nil, err
	}
	return station.Provinces(snap.Stations), nil
}

// Localities returns the distinct localities of the latest snapshot,
// restricted to province when it is not empty.
func (p *Pipeline) Localities(ctx context.Context, province string) ([]string, error) {
	snap, err := p.Stations(ctx)
	if err != nil {
		return nil, err
	}
	return station.LocalitiesIn(snap.Stations, province), nil
}

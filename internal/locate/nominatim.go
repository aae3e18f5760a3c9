package locate

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/muesli/gominatim"
	"github.com/patrickmn/go-cache"

	"github.com/rubiojr/gasolineras/internal/station"
)

const DefaultNominatimServer = "https://nominatim.openstreetmap.org/"

// NominatimLocator resolves free-text places ("Tibidabo, Barcelona") to
// coordinates. Results are cached by query.
type NominatimLocator struct {
	cache  *cache.Cache
	log    *slog.Logger
	search func(q string) ([]gominatim.SearchResult, error)
}

func NewNominatimLocator(server string, logger *slog.Logger) *NominatimLocator {
	if server == "" {
		server = DefaultNominatimServer
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	gominatim.SetServer(server)

	return &NominatimLocator{
		cache: cache.New(30*time.Minute, 90*time.Minute),
		log:   logger,
		search: func(q string) ([]gominatim.SearchResult, error) {
			query := gominatim.SearchQuery{
				Q: url.QueryEscape(q),
			}
			return query.Get()
		},
	}
}

// For returns a Locator that geocodes place.
func (n *NominatimLocator) For(place string) Locator {
	return LocatorFunc(func(ctx context.Context) (station.Coordinates, error) {
		return n.Geocode(ctx, place)
	})
}

// Geocode returns the coordinates of the best match for place.
func (n *NominatimLocator) Geocode(ctx context.Context, place string) (station.Coordinates, error) {
	key := strings.ToLower(strings.TrimSpace(place))
	if key == "" {
		return station.Coordinates{}, fmt.Errorf("%w: empty location", ErrPositionUnavailable)
	}
	if cached, ok := n.cache.Get(key); ok {
		n.log.Debug("Geocode cache hit", "location", place)
		return cached.(station.Coordinates), nil
	}

	type result struct {
		res []gominatim.SearchResult
		err error
	}
	ch := make(chan result, 1)
	go func() {
		res, err := n.search(place)
		ch <- result{res, err}
	}()

	var r result
	select {
	case r = <-ch:
	case <-ctx.Done():
		return station.Coordinates{}, ctx.Err()
	}

	if r.err != nil {
		return station.Coordinates{}, fmt.Errorf("%w: geocoding error: %w", ErrPositionUnavailable, r.err)
	}
	if len(r.res) == 0 {
		return station.Coordinates{}, fmt.Errorf("%w: no results found for location: %s", ErrPositionUnavailable, place)
	}

	pos, err := resultToCoordinates(r.res[0])
	if err != nil {
		return station.Coordinates{}, fmt.Errorf("%w: %w", ErrPositionUnavailable, err)
	}
	n.cache.Set(key, pos, cache.DefaultExpiration)
	n.log.Debug("Geocoded location", "location", place, "lat", pos.Latitude, "lng", pos.Longitude)
	return pos, nil
}

func resultToCoordinates(result gominatim.SearchResult) (station.Coordinates, error) {
	lat, err := strconv.ParseFloat(result.Lat, 64)
	if err != nil {
		return station.Coordinates{}, fmt.Errorf("error parsing latitude: %w", err)
	}

	lng, err := strconv.ParseFloat(result.Lon, 64)
	if err != nil {
		return station.Coordinates{}, fmt.Errorf("error parsing longitude: %w", err)
	}

	return station.Coordinates{Latitude: lat, Longitude: lng}, nil
}

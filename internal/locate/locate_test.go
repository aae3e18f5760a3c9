package locate

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/muesli/gominatim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rubiojr/gasolineras/internal/station"
)

func TestStaticLocator(t *testing.T) {
	ctx := context.Background()

	pos, err := Locate(ctx, At(40.4168, -3.7038))
	require.NoError(t, err)
	assert.Equal(t, station.Coordinates{Latitude: 40.4168, Longitude: -3.7038}, pos)

	_, err = Locate(ctx, StaticLocator{Disabled: true})
	assert.ErrorIs(t, err, ErrPermissionDenied)

	_, err = Locate(ctx, StaticLocator{})
	assert.ErrorIs(t, err, ErrPositionUnavailable)
}

func TestLocateWithin_Timeout(t *testing.T) {
	block := make(chan struct{})
	defer close(block)

	slow := LocatorFunc(func(ctx context.Context) (station.Coordinates, error) {
		<-block
		return station.Coordinates{}, nil
	})

	start := time.Now()
	_, err := LocateWithin(context.Background(), slow, 20*time.Millisecond)
	assert.ErrorIs(t, err, ErrTimeout)
	assert.Less(t, time.Since(start), time.Second)
}

func TestLocateWithin_ClassifiesUnknownErrors(t *testing.T) {
	broken := LocatorFunc(func(context.Context) (station.Coordinates, error) {
		return station.Coordinates{}, errors.New("gps exploded")
	})

	_, err := Locate(context.Background(), broken)
	assert.ErrorIs(t, err, ErrPositionUnavailable)
	assert.NotErrorIs(t, err, ErrPermissionDenied)
	assert.Contains(t, err.Error(), "gps exploded")
}

func TestLocateWithin_DeadlineFromLocatorIsTimeout(t *testing.T) {
	l := LocatorFunc(func(ctx context.Context) (station.Coordinates, error) {
		return station.Coordinates{}, context.DeadlineExceeded
	})

	_, err := Locate(context.Background(), l)
	assert.ErrorIs(t, err, ErrTimeout)
}

func TestLocateWithin_ParentCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	l := LocatorFunc(func(ctx context.Context) (station.Coordinates, error) {
		<-ctx.Done()
		return station.Coordinates{}, ctx.Err()
	})

	_, err := Locate(ctx, l)
	assert.ErrorIs(t, err, ErrPositionUnavailable)
}

func newTestNominatim(search func(q string) ([]gominatim.SearchResult, error)) *NominatimLocator {
	n := NewNominatimLocator("http://127.0.0.1:0/", nil)
	n.search = search
	return n
}

func TestNominatim_GeocodeAndCache(t *testing.T) {
	var calls atomic.Int32
	n := newTestNominatim(func(q string) ([]gominatim.SearchResult, error) {
		calls.Add(1)
		assert.Equal(t, "Tibidabo, Barcelona", q)
		return []gominatim.SearchResult{{Lat: "41.4225", Lon: "2.1186"}}, nil
	})
	ctx := context.Background()

	pos, err := n.Geocode(ctx, "Tibidabo, Barcelona")
	require.NoError(t, err)
	assert.InDelta(t, 41.4225, pos.Latitude, 1e-9)
	assert.InDelta(t, 2.1186, pos.Longitude, 1e-9)

	pos2, err := Locate(ctx, n.For(" tibidabo, barcelona "))
	require.NoError(t, err)
	assert.Equal(t, pos, pos2)
	assert.Equal(t, int32(1), calls.Load())
}

func TestNominatim_NoResults(t *testing.T) {
	n := newTestNominatim(func(string) ([]gominatim.SearchResult, error) {
		return nil, nil
	})

	_, err := Locate(context.Background(), n.For("Atlantis"))
	assert.ErrorIs(t, err, ErrPositionUnavailable)
	assert.Contains(t, err.Error(), "Atlantis")
}

func TestNominatim_SearchError(t *testing.T) {
	n := newTestNominatim(func(string) ([]gominatim.SearchResult, error) {
		return nil, errors.New("connection refused")
	})

	_, err := n.Geocode(context.Background(), "Madrid")
	assert.ErrorIs(t, err, ErrPositionUnavailable)
}

func TestNominatim_BadCoordinates(t *testing.T) {
	n := newTestNominatim(func(string) ([]gominatim.SearchResult, error) {
		return []gominatim.SearchResult{{Lat: "north", Lon: "2.1"}}, nil
	})

	_, err := n.Geocode(context.Background(), "Madrid")
	assert.ErrorIs(t, err, ErrPositionUnavailable)
	assert.Contains(t, err.Error(), "latitude")
}

func TestNominatim_EmptyQuery(t *testing.T) {
	n := newTestNominatim(func(string) ([]gominatim.SearchResult, error) {
		t.Fatal("search must not run for an empty query")
		return nil, nil
	})

	_, err := n.Geocode(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrPositionUnavailable)
}

func TestNominatim_SlowSearchTimesOut(t *testing.T) {
	block := make(chan struct{})
	defer close(block)
	n := newTestNominatim(func(string) ([]gominatim.SearchResult, error) {
		<-block
		return nil, nil
	})

	_, err := LocateWithin(context.Background(), n.For("Madrid"), 20*time.Millisecond)
	assert.ErrorIs(t, err, ErrTimeout)
}

// Package locate acquires the user's position. A request is single shot: it
// either yields coordinates or fails with one of the typed errors below.
package locate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rubiojr/gasolineras/internal/station"
)

// DefaultTimeout bounds a single location request.
const DefaultTimeout = 10 * time.Second

var (
	ErrPermissionDenied    = errors.New("location permission denied")
	ErrPositionUnavailable = errors.New("position unavailable")
	ErrTimeout             = errors.New("location request timed out")
)

// Locator yields the current position or a typed failure.
type Locator interface {
	Locate(ctx context.Context) (station.Coordinates, error)
}

// LocatorFunc adapts a function to a Locator.
type LocatorFunc func(ctx context.Context) (station.Coordinates, error)

func (f LocatorFunc) Locate(ctx context.Context) (station.Coordinates, error) {
	return f(ctx)
}

// Locate runs l once with DefaultTimeout.
func Locate(ctx context.Context, l Locator) (station.Coordinates, error) {
	return LocateWithin(ctx, l, DefaultTimeout)
}

// LocateWithin runs l once, giving up after timeout. Every failure is reported
// as one of ErrPermissionDenied, ErrPositionUnavailable or ErrTimeout, possibly
// wrapped.
func LocateWithin(ctx context.Context, l Locator, timeout time.Duration) (station.Coordinates, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type result struct {
		pos station.Coordinates
		err error
	}
	ch := make(chan result, 1)
	go func() {
		pos, err := l.Locate(ctx)
		ch <- result{pos, err}
	}()

	select {
	case r := <-ch:
		if r.err == nil {
			return r.pos, nil
		}
		return station.Coordinates{}, classify(r.err)
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return station.Coordinates{}, ErrTimeout
		}
		return station.Coordinates{}, fmt.Errorf("%w: %w", ErrPositionUnavailable, ctx.Err())
	}
}

func classify(err error) error {
	switch {
	case errors.Is(err, ErrPermissionDenied),
		errors.Is(err, ErrPositionUnavailable),
		errors.Is(err, ErrTimeout):
		return err
	case errors.Is(err, context.DeadlineExceeded):
		return ErrTimeout
	default:
		return fmt.Errorf("%w: %w", ErrPositionUnavailable, err)
	}
}

// StaticLocator answers with a fixed position. A disabled locator behaves like
// a user who refused location access, and one without a position reports it
// as unavailable.
type StaticLocator struct {
	Position *station.Coordinates
	Disabled bool
}

// At returns a locator fixed at lat, lng.
func At(lat, lng float64) StaticLocator {
	return StaticLocator{Position: &station.Coordinates{Latitude: lat, Longitude: lng}}
}

func (s StaticLocator) Locate(context.Context) (station.Coordinates, error) {
	if s.Disabled {
		return station.Coordinates{}, ErrPermissionDenied
	}
	if s.Position == nil {
		return station.Coordinates{}, ErrPositionUnavailable
	}
	return *s.Position, nil
}

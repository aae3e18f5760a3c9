package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/rubiojr/gasolineras/internal/config"
	"github.com/rubiojr/gasolineras/internal/favorites"
	"github.com/rubiojr/gasolineras/internal/locate"
	"github.com/rubiojr/gasolineras/internal/pipeline"
	"github.com/rubiojr/gasolineras/internal/station"
	"github.com/rubiojr/gasolineras/internal/storage"
	"github.com/rubiojr/gasolineras/internal/translations"
	"github.com/rubiojr/gasolineras/pkg/api"
)

// app wires the components a command needs. Commands build one with newApp
// and Close it when done.
type app struct {
	cfg   *config.Config
	log   *slog.Logger
	tr    translations.Translations
	out   io.Writer
	feed  *api.FuelPriceAPI
	pipe  *pipeline.Pipeline
	store *storage.Storage
	favs  *favorites.Store
}

func newLogger(debug bool) *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func newApp(c *cli.Context, opts ...pipeline.Option) (*app, error) {
	cfg, ok := c.App.Metadata[configKey].(*config.Config)
	if !ok || cfg == nil {
		cfg = config.Load()
	}
	logger := newLogger(c.Bool("debug"))

	feed := api.NewFuelPriceAPI(
		api.WithBaseURL(c.String("feed-url")),
		api.WithHTTPClient(&http.Client{Timeout: c.Duration("timeout")}),
	)

	var fetcher pipeline.Fetcher = feed
	if d := c.String("date"); d != "" {
		date, err := time.Parse("2006-01-02", d)
		if err != nil {
			return nil, fmt.Errorf("error parsing date: %w", err)
		}
		fetcher = feed.ForDate(date)
	}

	store, err := storage.NewStorage(c.Context, c.String("db"), logger)
	if err != nil {
		return nil, fmt.Errorf("error initializing storage: %w", err)
	}

	opts = append([]pipeline.Option{
		pipeline.WithInterval(cfg.RefreshInterval),
		pipeline.WithLogger(logger),
	}, opts...)

	return &app{
		cfg:   cfg,
		log:   logger,
		tr:    translations.GetTranslations(c.String("lang")),
		out:   c.App.Writer,
		feed:  feed,
		pipe:  pipeline.New(fetcher, opts...),
		store: store,
		favs:  favorites.New(c.Context, store, logger),
	}, nil
}

func (a *app) Close() {
	a.pipe.Close()
	a.favs.Close()
	if err := a.store.Close(); err != nil {
		a.log.Error("Error closing storage", "error", err)
	}
}

// stations waits for the current snapshot, reporting a failed fetch with the
// translated load error.
func (a *app) stations(ctx context.Context) (*pipeline.Snapshot, error) {
	snap, err := a.pipe.Stations(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s %w", a.tr.LoadError, err)
	}
	return snap, nil
}

// locator builds the position source from --lat/--long or --location.
// Geolocation disabled in the configuration behaves as a refused permission.
func (a *app) locator(c *cli.Context) (locate.Locator, error) {
	if !a.cfg.GeolocationEnabled {
		return locate.StaticLocator{Disabled: true}, nil
	}
	if place := c.String("location"); place != "" {
		return locate.NewNominatimLocator(a.cfg.NominatimURL, a.log).For(place), nil
	}
	if c.IsSet("lat") || c.IsSet("long") {
		return locate.At(c.Float64("lat"), c.Float64("long")), nil
	}
	return nil, errors.New("location or latitude and longitude are required")
}

func fuelFlag(c *cli.Context) (station.FuelType, error) {
	return station.ParseFuelType(c.String("fuel"))
}

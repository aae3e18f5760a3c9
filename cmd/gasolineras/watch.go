package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/rubiojr/gasolineras/internal/pipeline"
	"github.com/rubiojr/gasolineras/internal/station"
	"github.com/rubiojr/gasolineras/internal/view"
)

func watchCommand() *cli.Command {
	return &cli.Command{
		Name:  "watch",
		Usage: "Keep prices fresh and print a summary after every update (r + Enter refreshes)",
		Flags: append(filterFlags(),
			&cli.DurationFlag{
				Name:    "interval",
				Aliases: []string{"i"},
				Usage:   "Refresh interval (defaults to GASOLINERAS_REFRESH_INTERVAL or 5m)",
			},
		),
		Action: watchAction,
	}
}

func watchAction(c *cli.Context) error {
	f, err := filterFromFlags(c)
	if err != nil {
		return err
	}

	a, err := newApp(c, pipeline.WithInterval(c.Duration("interval")))
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := view.New(a.tr)
	m.SetFilter(f)

	favSub := a.favs.Subscribe()
	defer favSub.Unsubscribe()
	favCh := favSub.C

	sub := a.pipe.Subscribe()
	defer func() { sub.Unsubscribe() }()

	refresh := make(chan struct{}, 1)
	go readCommands(ctx, c.App.Reader, refresh)

	a.log.Debug("Watching prices", "interval", a.pipe.Interval())
	fmt.Fprintln(a.out, a.tr.Loading)
	for {
		select {
		case <-ctx.Done():
			return nil
		case favs, ok := <-favCh:
			if !ok {
				favCh = nil
				continue
			}
			m.SetFavorites(favs)
		case <-refresh:
			sub.Unsubscribe()
			a.pipe.Invalidate()
			m.SetLoading()
			fmt.Fprintln(a.out, a.tr.Loading)
			sub = a.pipe.Subscribe()
		case u, ok := <-sub.C:
			if !ok {
				return nil
			}
			m.Apply(u)
			fmt.Fprintln(a.out, summary(m, u.Err, time.Now()))
		}
	}
}

// summary renders one line describing the model after an update.
func summary(m *view.Model, err error, now time.Time) string {
	tr := m.Translations()
	ts := now.Format("15:04:05")
	if err != nil {
		return fmt.Sprintf("[%s] %s %v. %s", ts, tr.LoadError, err, tr.RetryHint)
	}

	snap := m.Snapshot()
	fuel := m.Filter().FuelOrDefault()
	line := fmt.Sprintf("[%s] %s %s | %d | ★ %d", ts, tr.LastUpdated, snap.FeedDate, len(snap.Stations), m.FavoritesCount())

	visible := m.Visible()
	if len(visible) == 0 {
		return line + " | " + tr.NoStations
	}
	best := visible[0]
	if _, ok := best.Price(fuel); !ok {
		return line + " | " + tr.FuelLabel(fuel) + ": " + station.PriceUnavailable
	}
	return fmt.Sprintf("%s | %s: %s (%s) %s €", line, tr.FuelLabel(fuel), best.Name, best.Locality, best.PriceLabel(fuel))
}

// readCommands signals refresh for every "r" line read from r.
func readCommands(ctx context.Context, r io.Reader, refresh chan<- struct{}) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return
		}
		if strings.EqualFold(strings.TrimSpace(scanner.Text()), "r") {
			select {
			case refresh <- struct{}{}:
			default:
			}
		}
	}
}

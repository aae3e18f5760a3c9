package main

import (
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/rubiojr/gasolineras/internal/station"
	"github.com/rubiojr/gasolineras/internal/view"
)

const defaultRadiusKm = 5.0

func locationFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "location",
			Usage: "Place to search from (e.g. \"Tibidabo, Barcelona\")",
		},
		&cli.Float64Flag{
			Name:  "lat",
			Usage: "Latitude of the location",
		},
		&cli.Float64Flag{
			Name:  "long",
			Usage: "Longitude of the location",
		},
		&cli.Float64Flag{
			Name:    "radius",
			Aliases: []string{"r"},
			Usage:   "Search radius in kilometers (0 ranks every station)",
			Value:   defaultRadiusKm,
		},
	}
}

func nearbyCommand() *cli.Command {
	return &cli.Command{
		Name:  "nearby",
		Usage: "List stations nearest to a location",
		Flags: append(locationFlags(),
			&cli.StringFlag{
				Name:    "fuel",
				Aliases: []string{"f"},
				Usage:   "Fuel type whose price is shown",
				Value:   string(station.DefaultFuel),
			},
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"n"},
				Usage:   "Maximum number of stations to show (0 shows all)",
				Value:   20,
			},
		),
		Action: nearbyAction,
	}
}

func nearbyAction(c *cli.Context) error {
	fuel, err := fuelFlag(c)
	if err != nil {
		return err
	}

	a, err := newApp(c)
	if err != nil {
		return err
	}
	defer a.Close()

	m, err := locatedModel(c, a)
	if err != nil {
		return err
	}

	p := printer{w: a.out, tr: a.tr, favs: a.favs}
	p.heading(a.tr.NearbyHeading, m.Snapshot().FeedDate)
	if r := c.Float64("radius"); r > 0 {
		fmt.Fprintln(a.out, a.tr.SearchRadius, r, "km")
	}
	p.stations(m.Visible(), fuel, c.Int("limit"))
	return nil
}

// locatedModel loads the snapshot and switches a view to nearby mode. A
// failed location request is reported with its translated message.
func locatedModel(c *cli.Context, a *app) (*view.Model, error) {
	loc, err := a.locator(c)
	if err != nil {
		return nil, err
	}

	snap, err := a.stations(c.Context)
	if err != nil {
		return nil, err
	}

	m := view.New(a.tr)
	m.SetSnapshot(snap)
	m.SetRadius(c.Float64("radius"))

	fmt.Fprintln(c.App.ErrWriter, a.tr.RequestingLocation)
	if err := m.Locate(c.Context, loc); err != nil {
		a.log.Debug("Location request failed", "error", err)
		return nil, errors.New(m.GeolocationError())
	}
	return m, nil
}

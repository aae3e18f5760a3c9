package main

import (
	"github.com/urfave/cli/v2"

	"github.com/rubiojr/gasolineras/internal/station"
)

func cheapestCommand() *cli.Command {
	return &cli.Command{
		Name:  "cheapest",
		Usage: "Show the cheapest stations in the country for a fuel",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "fuel",
				Aliases: []string{"f"},
				Usage:   "Fuel type",
				Value:   string(station.DefaultFuel),
			},
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"n"},
				Usage:   "Number of stations",
				Value:   10,
			},
		},
		Action: cheapestAction,
	}
}

func cheapestAction(c *cli.Context) error {
	fuel, err := fuelFlag(c)
	if err != nil {
		return err
	}

	a, err := newApp(c)
	if err != nil {
		return err
	}
	defer a.Close()

	snap, err := a.stations(c.Context)
	if err != nil {
		return err
	}
	cheapest, err := a.pipe.Cheapest(c.Context, fuel, c.Int("limit"))
	if err != nil {
		return err
	}

	p := printer{w: a.out, tr: a.tr, favs: a.favs}
	p.heading(a.tr.CheapestHeading+" ("+a.tr.FuelLabel(fuel)+")", snap.FeedDate)
	p.stations(cheapest, fuel, 0)
	return nil
}

package main

import (
	"github.com/urfave/cli/v2"

	"github.com/rubiojr/gasolineras/internal/station"
	"github.com/rubiojr/gasolineras/internal/view"
)

func filterFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "province",
			Aliases: []string{"p"},
			Usage:   "Province name (substring, case insensitive)",
		},
		&cli.StringFlag{
			Name:    "locality",
			Aliases: []string{"l"},
			Usage:   "Locality name (substring, case insensitive)",
		},
		&cli.StringFlag{
			Name:  "cp",
			Usage: "Postal code (substring)",
		},
		&cli.StringFlag{
			Name:    "fuel",
			Aliases: []string{"f"},
			Usage:   "Fuel type used for prices and sorting",
			Value:   string(station.DefaultFuel),
		},
		&cli.IntFlag{
			Name:    "limit",
			Aliases: []string{"n"},
			Usage:   "Maximum number of stations to show (0 shows all)",
			Value:   20,
		},
	}
}

func filterFromFlags(c *cli.Context) (station.Filter, error) {
	fuel, err := fuelFlag(c)
	if err != nil {
		return station.Filter{}, err
	}
	return station.Filter{
		Province:   c.String("province"),
		Locality:   c.String("locality"),
		PostalCode: c.String("cp"),
		Fuel:       fuel,
	}, nil
}

func listCommand() *cli.Command {
	return &cli.Command{
		Name:   "list",
		Usage:  "List stations by province, locality or postal code, cheapest first",
		Flags:  filterFlags(),
		Action: listAction,
	}
}

func listAction(c *cli.Context) error {
	f, err := filterFromFlags(c)
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

	m := view.New(a.tr)
	m.SetSnapshot(snap)
	m.SetFilter(f)

	p := printer{w: a.out, tr: a.tr, favs: a.favs}
	p.heading(a.tr.StationsHeading, snap.FeedDate)
	p.stations(m.Visible(), f.Fuel, c.Int("limit"))
	return nil
}

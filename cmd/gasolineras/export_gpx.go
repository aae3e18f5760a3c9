package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/rubiojr/gasolineras/internal/export"
	"github.com/rubiojr/gasolineras/internal/view"
)

func exportGPXCommand() *cli.Command {
	flags := append(filterFlags(), locationFlags()...)
	flags = append(flags,
		&cli.StringFlag{
			Name:    "out",
			Aliases: []string{"o"},
			Usage:   "Output file (stdout when empty)",
		},
		&cli.BoolFlag{
			Name:  "favorites",
			Usage: "Export the favorite stations",
		},
	)

	return &cli.Command{
		Name:   "export-gpx",
		Usage:  "Export stations as GPX waypoints",
		Flags:  flags,
		Action: exportGPXAction,
	}
}

func exportGPXAction(c *cli.Context) error {
	f, err := filterFromFlags(c)
	if err != nil {
		return err
	}

	a, err := newApp(c)
	if err != nil {
		return err
	}
	defer a.Close()

	var m *view.Model
	nearby := c.IsSet("location") || c.IsSet("lat") || c.IsSet("long")
	switch {
	case c.Bool("favorites"):
		m = view.New(a.tr)
		m.SetFavorites(a.favs.List())
		m.ShowFavorites(true)
	case nearby:
		if m, err = locatedModel(c, a); err != nil {
			return err
		}
	default:
		snap, err := a.stations(c.Context)
		if err != nil {
			return err
		}
		m = view.New(a.tr)
		m.SetSnapshot(snap)
		m.SetFilter(f)
	}

	stations := m.Visible()
	if limit := c.Int("limit"); limit > 0 && len(stations) > limit {
		stations = stations[:limit]
	}

	var w io.Writer = a.out
	if path := c.String("out"); path != "" {
		file, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("error creating %s: %w", path, err)
		}
		defer file.Close()
		w = file
	}

	opts := export.Options{
		Name: fmt.Sprintf("%s (%s)", a.tr.StationsHeading, m.Mode()),
		Fuel: f.Fuel,
	}
	if err := export.WriteGPX(w, stations, opts); err != nil {
		return err
	}
	a.log.Debug("Exported stations", "count", len(stations), "mode", m.Mode().String())
	return nil
}

package main

import (
	"errors"
	"fmt"
	"slices"

	"github.com/urfave/cli/v2"

	"github.com/rubiojr/gasolineras/internal/station"
)

func favoritesCommand() *cli.Command {
	return &cli.Command{
		Name:    "favorites",
		Aliases: []string{"fav"},
		Usage:   "Manage favorite stations",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List favorite stations",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "fuel",
						Aliases: []string{"f"},
						Usage:   "Fuel type whose stored price is shown",
						Value:   string(station.DefaultFuel),
					},
				},
				Action: favoritesListAction,
			},
			{
				Name:      "add",
				Usage:     "Add stations to favorites",
				ArgsUsage: "ID...",
				Action:    favoritesAddAction,
			},
			{
				Name:      "remove",
				Usage:     "Remove stations from favorites",
				ArgsUsage: "ID...",
				Action:    favoritesRemoveAction,
			},
			{
				Name:      "toggle",
				Usage:     "Add stations that are not favorites and remove those that are",
				ArgsUsage: "ID...",
				Action:    favoritesToggleAction,
			},
			{
				Name:   "clear",
				Usage:  "Remove every favorite",
				Action: favoritesClearAction,
			},
		},
	}
}

func favoritesListAction(c *cli.Context) error {
	fuel, err := fuelFlag(c)
	if err != nil {
		return err
	}

	a, err := newApp(c)
	if err != nil {
		return err
	}
	defer a.Close()

	p := printer{w: a.out, tr: a.tr}
	p.heading(a.tr.FavoritesHeading, "")
	if a.favs.Len() == 0 {
		fmt.Fprintln(a.out, a.tr.NoFavorites)
		return nil
	}
	p.stations(a.favs.List(), fuel, 0)
	return nil
}

func favoritesAddAction(c *cli.Context) error {
	return withStations(c, func(a *app, st station.Station) {
		a.favs.Add(c.Context, st)
		fmt.Fprintln(a.out, a.tr.FavoriteAdded, st.Name, "["+st.ID+"]")
	})
}

func favoritesToggleAction(c *cli.Context) error {
	return withStations(c, func(a *app, st station.Station) {
		if a.favs.Toggle(c.Context, st) {
			fmt.Fprintln(a.out, a.tr.FavoriteAdded, st.Name, "["+st.ID+"]")
		} else {
			fmt.Fprintln(a.out, a.tr.FavoriteRemoved, st.Name, "["+st.ID+"]")
		}
	})
}

func favoritesRemoveAction(c *cli.Context) error {
	ids := c.Args().Slice()
	if len(ids) == 0 {
		return errors.New("at least one station ID is required")
	}

	a, err := newApp(c)
	if err != nil {
		return err
	}
	defer a.Close()

	for _, id := range ids {
		a.favs.Remove(c.Context, id)
		fmt.Fprintln(a.out, a.tr.FavoriteRemoved, id)
	}
	return nil
}

func favoritesClearAction(c *cli.Context) error {
	a, err := newApp(c)
	if err != nil {
		return err
	}
	defer a.Close()

	a.favs.Clear(c.Context)
	fmt.Fprintln(a.out, a.tr.FavoritesClear)
	return nil
}

// withStations resolves every ID argument against the current snapshot and
// calls fn for each station found.
func withStations(c *cli.Context, fn func(a *app, st station.Station)) error {
	ids := c.Args().Slice()
	if len(ids) == 0 {
		return errors.New("at least one station ID is required")
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

	var missing []string
	for _, id := range ids {
		i := slices.IndexFunc(snap.Stations, func(s station.Station) bool { return s.ID == id })
		if i < 0 {
			missing = append(missing, id)
			continue
		}
		fn(a, snap.Stations[i])
	}
	if len(missing) > 0 {
		return fmt.Errorf("%s %v", a.tr.UnknownStation, missing)
	}
	return nil
}

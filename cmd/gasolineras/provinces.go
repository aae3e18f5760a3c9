package main

import (
	"github.com/urfave/cli/v2"
)

func provincesCommand() *cli.Command {
	return &cli.Command{
		Name:   "provinces",
		Usage:  "List the provinces present in the feed",
		Action: provincesAction,
	}
}

func provincesAction(c *cli.Context) error {
	a, err := newApp(c)
	if err != nil {
		return err
	}
	defer a.Close()

	provinces, err := a.pipe.Provinces(c.Context)
	if err != nil {
		return err
	}
	printer{w: a.out, tr: a.tr}.lines(provinces)
	return nil
}

func localitiesCommand() *cli.Command {
	return &cli.Command{
		Name:  "localities",
		Usage: "List the localities present in the feed",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "province",
				Aliases: []string{"p"},
				Usage:   "Only localities in this province (exact name)",
			},
		},
		Action: localitiesAction,
	}
}

func localitiesAction(c *cli.Context) error {
	a, err := newApp(c)
	if err != nil {
		return err
	}
	defer a.Close()

	localities, err := a.pipe.Localities(c.Context, c.String("province"))
	if err != nil {
		return err
	}
	printer{w: a.out, tr: a.tr}.lines(localities)
	return nil
}

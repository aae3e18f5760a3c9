package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/rubiojr/gasolineras/internal/config"
)

const configKey = "config"

func main() {
	if err := newCLI(config.Load()).Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newCLI(cfg *config.Config) *cli.App {
	return &cli.App{
		Name:     "gasolineras",
		Usage:    "Find fuel stations and compare fuel prices in Spain",
		Flags:    globalFlags(cfg),
		Metadata: map[string]interface{}{configKey: cfg},
		Commands: []*cli.Command{
			listCommand(),
			nearbyCommand(),
			cheapestCommand(),
			provincesCommand(),
			localitiesCommand(),
			favoritesCommand(),
			exportGPXCommand(),
			watchCommand(),
		},
	}
}

func globalFlags(cfg *config.Config) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			Usage:   "Local storage file",
			EnvVars: []string{"GASOLINERAS_DB"},
			Value:   cfg.DatabasePath,
		},
		&cli.StringFlag{
			Name:    "feed-url",
			Usage:   "Fuel price feed endpoint",
			EnvVars: []string{"GASOLINERAS_FEED_URL"},
			Value:   cfg.FeedURL,
		},
		&cli.StringFlag{
			Name:    "date",
			Usage:   "Use historic prices for this date (YYYY-MM-DD)",
			Aliases: []string{"d"},
		},
		&cli.StringFlag{
			Name:    "lang",
			Usage:   "Output language (es, en)",
			EnvVars: []string{"GASOLINERAS_LANG"},
			Value:   cfg.Language,
		},
		&cli.DurationFlag{
			Name:    "timeout",
			Usage:   "HTTP timeout for feed requests",
			EnvVars: []string{"GASOLINERAS_HTTP_TIMEOUT"},
			Value:   cfg.HTTPTimeout,
		},
		&cli.BoolFlag{
			Name:  "debug",
			Usage: "Enable debug logging",
		},
	}
}

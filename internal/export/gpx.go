// Package export writes station lists in formats other tools can open.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/tkrajina/gpxgo/gpx"

	"github.com/rubiojr/gasolineras/internal/station"
)

const Creator = "gasolineras"

// Options describe a GPX document.
type Options struct {
	Name string
	Fuel station.FuelType
}

// WriteGPX writes one waypoint per station, in list order. The waypoint
// description carries the address and the price of opts.Fuel.
func WriteGPX(w io.Writer, stations []station.Station, opts Options) error {
	fuel := opts.Fuel
	if fuel == "" {
		fuel = station.DefaultFuel
	}

	g := &gpx.GPX{
		Creator:     Creator,
		Name:        opts.Name,
		Description: fmt.Sprintf("%d stations, %s prices", len(stations), fuel),
	}
	for _, s := range stations {
		g.Waypoints = append(g.Waypoints, waypoint(s, fuel))
	}

	data, err := g.ToXml(gpx.ToXmlParams{Version: "1.1", Indent: true})
	if err != nil {
		return fmt.Errorf("error encoding GPX: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("error writing GPX: %w", err)
	}
	return nil
}

func waypoint(s station.Station, fuel station.FuelType) gpx.GPXPoint {
	desc := []string{s.Address, s.PostalCode + " " + s.Locality, s.Province}
	desc = append(desc, fmt.Sprintf("%s: %s", fuel, s.PriceLabel(fuel)))
	if d := station.FormatDistance(s.Distance); d != "" {
		desc = append(desc, d+" km")
	}

	return gpx.GPXPoint{
		Point: gpx.Point{
			Latitude:  s.Latitude,
			Longitude: s.Longitude,
		},
		Name:        s.Name,
		Comment:     s.ID,
		Description: strings.Join(desc, "\n"),
		Symbol:      "Gas Station",
		Type:        "fuel",
	}
}


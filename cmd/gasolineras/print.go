package main

import (
	"fmt"
	"io"

	"github.com/rubiojr/gasolineras/internal/favorites"
	"github.com/rubiojr/gasolineras/internal/station"
	"github.com/rubiojr/gasolineras/internal/translations"
)

type printer struct {
	w    io.Writer
	tr   translations.Translations
	favs *favorites.Store
}

func (p printer) heading(title, feedDate string) {
	fmt.Fprintln(p.w, title)
	if feedDate != "" {
		fmt.Fprintln(p.w, p.tr.LastUpdated, feedDate)
	}
	fmt.Fprintln(p.w)
}

// stations prints one card per station. Favorites are marked with a star.
func (p printer) stations(stations []station.Station, fuel station.FuelType, limit int) {
	if len(stations) == 0 {
		fmt.Fprintln(p.w, p.tr.NoStations)
		return
	}
	found := len(stations)
	if limit > 0 && found > limit {
		stations = stations[:limit]
	}

	for i, s := range stations {
		mark := ""
		if p.favs != nil && p.favs.Contains(s.ID) {
			mark = " ★"
		}
		fmt.Fprintf(p.w, "%d. %s (%s)%s\n", i+1, s.Name, s.Address, mark)
		fmt.Fprintf(p.w, "   %s %s, %s [%s]\n", s.PostalCode, s.Locality, s.Province, s.ID)
		fmt.Fprintf(p.w, "   %s: %s €\n", p.tr.FuelLabel(fuel), s.PriceLabel(fuel))
		if d := station.FormatDistance(s.Distance); d != "" {
			fmt.Fprintf(p.w, "   %s %s\n", d, p.tr.KmAway)
		}
		fmt.Fprintf(p.w, "   %s %s\n", p.tr.Schedule, s.Schedule)
		fmt.Fprintf(p.w, "   %s\n\n", s.MapsURL())
	}
	fmt.Fprintln(p.w, p.tr.StationsFound, found)
}

func (p printer) lines(values []string) {
	for _, v := range values {
		fmt.Fprintln(p.w, v)
	}
}

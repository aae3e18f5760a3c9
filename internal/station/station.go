// Package station holds the canonical fuel station model and the pure
// functions that normalize, filter, sort and rank it.
package station

import (
	"fmt"
	"slices"
	"strings"
)

// FuelType identifies one of the fuels a station may sell.
type FuelType string

const (
	Gasoline95    FuelType = "gasoline95"
	Gasoline98    FuelType = "gasoline98"
	Diesel        FuelType = "diesel"
	DieselPremium FuelType = "dieselPremium"
	LPG           FuelType = "lpg"
	CNG           FuelType = "cng"
	Bioethanol    FuelType = "bioethanol"
	Biodiesel     FuelType = "biodiesel"
)

// DefaultFuel is the fuel used when a filter does not name one.
const DefaultFuel = Diesel

// FuelTypes lists every fuel type in display order.
var FuelTypes = []FuelType{
	Gasoline95, Gasoline98, Diesel, DieselPremium, LPG, CNG, Bioethanol, Biodiesel,
}

var fuelAliases = map[string]FuelType{
	"gasoline95":     Gasoline95,
	"gasolina95":     Gasoline95,
	"95":             Gasoline95,
	"gasoline98":     Gasoline98,
	"gasolina98":     Gasoline98,
	"98":             Gasoline98,
	"diesel":         Diesel,
	"gasoleo":        Diesel,
	"gasoleoa":       Diesel,
	"dieselpremium":  DieselPremium,
	"gasoleopremium": DieselPremium,
	"lpg":            LPG,
	"glp":            LPG,
	"cng":            CNG,
	"gnc":            CNG,
	"bioethanol":     Bioethanol,
	"bioetanol":      Bioethanol,
	"biodiesel":      Biodiesel,
}

// ParseFuelType resolves a fuel name, accepting English and Spanish spellings.
// An empty name resolves to DefaultFuel.
func ParseFuelType(name string) (FuelType, error) {
	key := strings.ToLower(strings.NewReplacer(" ", "", "-", "", "_", "").Replace(strings.TrimSpace(name)))
	if key == "" {
		return DefaultFuel, nil
	}
	if ft, ok := fuelAliases[key]; ok {
		return ft, nil
	}
	return "", fmt.Errorf("unknown fuel type %q", name)
}

// Valid reports whether f is one of the known fuel types.
func (f FuelType) Valid() bool {
	return slices.Contains(FuelTypes, f)
}

// Prices maps a fuel type to its price in euros per litre. A fuel the station
// does not sell has no entry; stored values are always > 0.
type Prices map[FuelType]float64

// Get returns the price for f and whether the station reports one.
func (p Prices) Get(f FuelType) (float64, bool) {
	v, ok := p[f]
	return v, ok
}

// Coordinates is a WGS84 position in degrees.
type Coordinates struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
}

// Station is the canonical record derived from one raw feed record.
type Station struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Address    string  `json:"address"`
	Locality   string  `json:"locality"`
	Province   string  `json:"province"`
	PostalCode string  `json:"postalCode"`
	Schedule   string  `json:"schedule"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	Prices     Prices  `json:"prices"`

	// Distance in km from the ranking origin. Only set by RankByDistance.
	Distance *float64 `json:"distance,omitempty"`
}

// Position returns the station coordinates.
func (s Station) Position() Coordinates {
	return Coordinates{Latitude: s.Latitude, Longitude: s.Longitude}
}

// Price returns the price of fuel f at the station.
func (s Station) Price(f FuelType) (float64, bool) {
	return s.Prices.Get(f)
}

// MapsURL links to the station location on Google Maps.
func (s Station) MapsURL() string {
	return fmt.Sprintf("https://www.google.com/maps/search/?api=1&query=%g,%g", s.Latitude, s.Longitude)
}

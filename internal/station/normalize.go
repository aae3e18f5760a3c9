package station

import (
	"math"
	"strconv"
	"strings"

	"github.com/rubiojr/gasolineras/pkg/api"
)

const (
	NoName       = "Sin nombre"
	NotAvailable = "No disponible"
)

// Normalize converts a raw feed record into a Station. It never fails: bad
// prices are dropped and bad coordinates default to 0.
func Normalize(raw api.GasStation) Station {
	s := Station{
		ID:         raw.IDEESS.String(),
		Name:       raw.Rotulo.String(),
		Address:    raw.Direccion.String(),
		Locality:   raw.Localidad.String(),
		Province:   raw.Provincia.String(),
		PostalCode: raw.CP.String(),
		Schedule:   raw.Horario.String(),
		Latitude:   parseCoordinate(raw.Latitud.String()),
		Longitude:  parseCoordinate(raw.Longitud.String()),
		Prices:     make(Prices),
	}
	if s.Name == "" {
		s.Name = NoName
	}
	if s.Schedule == "" {
		s.Schedule = NotAvailable
	}

	for ft, field := range map[FuelType]api.Field{
		Gasoline95:    raw.PrecioGasolina95E5,
		Gasoline98:    raw.PrecioGasolina98E5,
		Diesel:        raw.PrecioGasoleoA,
		DieselPremium: raw.PrecioGasoleoPremium,
		LPG:           raw.PrecioGasesLicuados,
		CNG:           raw.PrecioGasNaturalComp,
		Bioethanol:    raw.PrecioBioetanol,
		Biodiesel:     raw.PrecioBiodiesel,
	} {
		if v, ok := ParsePrice(field.String()); ok {
			s.Prices[ft] = v
		}
	}

	return s
}

// NormalizeAll normalizes every record, preserving feed order.
func NormalizeAll(raw []api.GasStation) []Station {
	out := make([]Station, len(raw))
	for i := range raw {
		out[i] = Normalize(raw[i])
	}
	return out
}

// ParsePrice parses a comma decimal price. Empty, non-numeric, non-finite and
// non-positive values report false.
func ParsePrice(s string) (float64, bool) {
	v, err := parseDecimal(s)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}

// ParseLatLong parses a latitude or longitude string (with comma or dot) to float64.
func ParseLatLong(s string) (float64, error) {
	return parseDecimal(s)
}

func parseCoordinate(s string) float64 {
	v, err := parseDecimal(s)
	if err != nil {
		return 0
	}
	return v
}

func parseDecimal(s string) (float64, error) {
	s = strings.Replace(strings.TrimSpace(s), ",", ".", 1)
	m, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(m) || math.IsInf(m, 0) {
		return 0, strconv.ErrSyntax
	}
	return m, nil
}

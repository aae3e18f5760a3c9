package station

import "github.com/shopspring/decimal"

// PriceUnavailable is shown for a fuel the station does not report.
const PriceUnavailable = "N/D"

// FormatPrice renders a price with three decimals, or PriceUnavailable.
func FormatPrice(v float64, ok bool) string {
	if !ok {
		return PriceUnavailable
	}
	return decimal.NewFromFloat(v).StringFixed(3)
}

// FormatDistance renders a distance in km with two decimals. Unranked
// stations render as an empty string.
func FormatDistance(d *float64) string {
	if d == nil {
		return ""
	}
	return decimal.NewFromFloat(*d).StringFixed(2)
}

// PriceLabel renders the price of fuel at s.
func (s Station) PriceLabel(fuel FuelType) string {
	return FormatPrice(s.Price(fuel))
}

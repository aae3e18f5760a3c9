package translations

import (
	"errors"

	"github.com/rubiojr/gasolineras/internal/locate"
	"github.com/rubiojr/gasolineras/internal/station"
)

// Translations contains all text strings for the application
type Translations struct {
	// Headings
	StationsHeading  string
	NearbyHeading    string
	CheapestHeading  string
	FavoritesHeading string
	LastUpdated      string

	// Loading and errors
	Loading       string
	LoadError     string
	RetryHint     string
	NoStations    string
	NoFavorites   string
	InvalidFuel   string
	SearchRadius  string
	StationsFound string

	// Geolocation messages
	RequestingLocation  string
	PermissionDenied    string
	LocationUnavailable string
	LocationTimeout     string
	UnknownError        string

	// Favorites
	FavoriteAdded   string
	FavoriteRemoved string
	FavoritesClear  string
	UnknownStation  string

	// Station card
	Schedule     string
	KmAway       string
	NotAvailable string
	FuelLabels   map[station.FuelType]string
}

// GetTranslations returns translations for the specified language
func GetTranslations(lang string) Translations {
	switch GetLanguage(lang) {
	case "en":
		return GetEnglishTranslations()
	default:
		return GetSpanishTranslations()
	}
}

// GetLanguage normalizes a language name, defaults to Spanish
func GetLanguage(lang string) string {
	switch lang {
	case "en", "english":
		return "en"
	default:
		return "es"
	}
}

// GeolocationMessage maps a location failure to its user-facing message.
// Permission denied always reads differently from the other failures.
func (t Translations) GeolocationMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, locate.ErrPermissionDenied):
		return t.PermissionDenied
	case errors.Is(err, locate.ErrTimeout):
		return t.LocationTimeout
	case errors.Is(err, locate.ErrPositionUnavailable):
		return t.LocationUnavailable
	default:
		return t.UnknownError
	}
}

// FuelLabel returns the display name of f, or f itself when unknown.
func (t Translations) FuelLabel(f station.FuelType) string {
	if l, ok := t.FuelLabels[f]; ok {
		return l
	}
	return string(f)
}

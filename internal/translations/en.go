package translations

import "github.com/rubiojr/gasolineras/internal/station"

// GetEnglishTranslations returns all English text strings
func GetEnglishTranslations() Translations {
	return Translations{
		// Headings
		StationsHeading:  "Fuel stations",
		NearbyHeading:    "Nearby fuel stations",
		CheapestHeading:  "Cheapest fuel stations",
		FavoritesHeading: "Favorite stations",
		LastUpdated:      "Fuel prices last updated:",

		// Loading and errors
		Loading:       "Loading prices...",
		LoadError:     "Could not load fuel prices.",
		RetryHint:     "Press r and Enter to retry.",
		NoStations:    "No fuel stations match the search.",
		NoFavorites:   "You have no favorite stations yet.",
		InvalidFuel:   "Unknown fuel type",
		SearchRadius:  "Search radius:",
		StationsFound: "Stations found:",

		// Geolocation messages
		RequestingLocation:  "Requesting your location...",
		PermissionDenied:    "Location permission denied.",
		LocationUnavailable: "Location information is unavailable.",
		LocationTimeout:     "Location request timed out.",
		UnknownError:        "An unknown error occurred.",

		// Favorites
		FavoriteAdded:   "Added to favorites:",
		FavoriteRemoved: "Removed from favorites:",
		FavoritesClear:  "Favorites cleared.",
		UnknownStation:  "No station with ID",

		// Station card
		Schedule:     "Hours:",
		KmAway:       "km away",
		NotAvailable: "N/A",
		FuelLabels: map[station.FuelType]string{
			station.Gasoline95:    "Gasoline 95",
			station.Gasoline98:    "Gasoline 98",
			station.Diesel:        "Diesel",
			station.DieselPremium: "Premium Diesel",
			station.LPG:           "LPG",
			station.CNG:           "CNG",
			station.Bioethanol:    "Bioethanol",
			station.Biodiesel:     "Biodiesel",
		},
	}
}

package translations

import "github.com/rubiojr/gasolineras/internal/station"

// GetSpanishTranslations returns all Spanish text strings
func GetSpanishTranslations() Translations {
	return Translations{
		// Headings
		StationsHeading:  "Gasolineras",
		NearbyHeading:    "Gasolineras cercanas",
		CheapestHeading:  "Gasolineras más baratas",
		FavoritesHeading: "Gasolineras favoritas",
		LastUpdated:      "Precios actualizados el:",

		// Loading and errors
		Loading:       "Cargando precios...",
		LoadError:     "No se pudieron cargar los precios de los carburantes.",
		RetryHint:     "Pulsa r y Enter para reintentar.",
		NoStations:    "Ninguna gasolinera coincide con la búsqueda.",
		NoFavorites:   "Todavía no tienes gasolineras favoritas.",
		InvalidFuel:   "Tipo de combustible desconocido",
		SearchRadius:  "Radio de búsqueda:",
		StationsFound: "Gasolineras encontradas:",

		// Geolocation messages
		RequestingLocation:  "Obteniendo tu ubicación...",
		PermissionDenied:    "Permiso de ubicación denegado.",
		LocationUnavailable: "Información de ubicación no disponible.",
		LocationTimeout:     "Tiempo de espera de ubicación agotado.",
		UnknownError:        "Ocurrió un error desconocido.",

		// Favorites
		FavoriteAdded:   "Añadida a favoritas:",
		FavoriteRemoved: "Eliminada de favoritas:",
		FavoritesClear:  "Favoritas eliminadas.",
		UnknownStation:  "No existe ninguna gasolinera con ID",

		// Station card
		Schedule:     "Horario:",
		KmAway:       "km de distancia",
		NotAvailable: "N/D",
		FuelLabels: map[station.FuelType]string{
			station.Gasoline95:    "Gasolina 95",
			station.Gasoline98:    "Gasolina 98",
			station.Diesel:        "Diésel",
			station.DieselPremium: "Diésel Premium",
			station.LPG:           "GLP",
			station.CNG:           "GNC",
			station.Bioethanol:    "Bioetanol",
			station.Biodiesel:     "Biodiésel",
		},
	}
}

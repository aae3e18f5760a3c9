// Package config reads settings from an optional .env file and the
// environment.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/rubiojr/gasolineras/internal/locate"
	"github.com/rubiojr/gasolineras/internal/pipeline"
	"github.com/rubiojr/gasolineras/pkg/api"
)

// Config holds all configuration for the program
type Config struct {
	// Feed
	FeedURL         string
	RefreshInterval time.Duration
	HTTPTimeout     time.Duration

	// Local storage
	DatabasePath string

	// Presentation
	Language string

	// Geolocation
	NominatimURL       string
	GeolocationEnabled bool
}

// Load reads .env from the working directory, if present, and then the
// environment. Variables already set in the environment win over the file.
func Load() *Config {
	return LoadFrom(".env")
}

// LoadFrom is Load with explicit .env files. Missing files are ignored.
func LoadFrom(files ...string) *Config {
	for _, f := range files {
		_ = godotenv.Load(f)
	}

	return &Config{
		// Feed
		FeedURL:         getEnv("GASOLINERAS_FEED_URL", api.DefaultURL),
		RefreshInterval: getEnvDuration("GASOLINERAS_REFRESH_INTERVAL", pipeline.DefaultInterval),
		HTTPTimeout:     getEnvDuration("GASOLINERAS_HTTP_TIMEOUT", api.DefaultTimeout),

		// Local storage
		DatabasePath: getEnv("GASOLINERAS_DB", "gasolineras.db"),

		// Presentation
		Language: getEnv("GASOLINERAS_LANG", "es"),

		// Geolocation
		NominatimURL:       getEnv("GASOLINERAS_NOMINATIM_URL", locate.DefaultNominatimServer),
		GeolocationEnabled: getEnvBool("GASOLINERAS_GEOLOCATION", true),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil && d > 0 {
			return d
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

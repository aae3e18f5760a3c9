package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rubiojr/gasolineras/internal/locate"
	"github.com/rubiojr/gasolineras/pkg/api"
)

var keys = []string{
	"GASOLINERAS_FEED_URL",
	"GASOLINERAS_REFRESH_INTERVAL",
	"GASOLINERAS_HTTP_TIMEOUT",
	"GASOLINERAS_DB",
	"GASOLINERAS_LANG",
	"GASOLINERAS_NOMINATIM_URL",
	"GASOLINERAS_GEOLOCATION",
}

// clearEnv blanks every variable for the test. godotenv only fills
// variables that are unset, so they are unset again at the end.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg := LoadFrom(filepath.Join(t.TempDir(), "missing.env"))
	assert.Equal(t, api.DefaultURL, cfg.FeedURL)
	assert.Equal(t, 5*time.Minute, cfg.RefreshInterval)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "gasolineras.db", cfg.DatabasePath)
	assert.Equal(t, "es", cfg.Language)
	assert.Equal(t, locate.DefaultNominatimServer, cfg.NominatimURL)
	assert.True(t, cfg.GeolocationEnabled)
}

func TestLoad_Environment(t *testing.T) {
	clearEnv(t)
	t.Setenv("GASOLINERAS_FEED_URL", "http://localhost:9999/feed")
	t.Setenv("GASOLINERAS_REFRESH_INTERVAL", "90s")
	t.Setenv("GASOLINERAS_DB", "/tmp/x.db")
	t.Setenv("GASOLINERAS_LANG", "en")
	t.Setenv("GASOLINERAS_GEOLOCATION", "false")

	cfg := LoadFrom()
	assert.Equal(t, "http://localhost:9999/feed", cfg.FeedURL)
	assert.Equal(t, 90*time.Second, cfg.RefreshInterval)
	assert.Equal(t, "/tmp/x.db", cfg.DatabasePath)
	assert.Equal(t, "en", cfg.Language)
	assert.False(t, cfg.GeolocationEnabled)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("GASOLINERAS_REFRESH_INTERVAL", "soon")
	t.Setenv("GASOLINERAS_HTTP_TIMEOUT", "-5s")
	t.Setenv("GASOLINERAS_GEOLOCATION", "maybe")

	cfg := LoadFrom()
	assert.Equal(t, 5*time.Minute, cfg.RefreshInterval)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	assert.True(t, cfg.GeolocationEnabled)
}

func TestLoad_DotEnvFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("GASOLINERAS_LANG=en\nGASOLINERAS_DB=from-file.db\n"), 0o644))
	t.Setenv("GASOLINERAS_DB", "from-env.db")

	cfg := LoadFrom(path)
	assert.Equal(t, "en", cfg.Language)
	assert.Equal(t, "from-env.db", cfg.DatabasePath)
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/armstrongwx/weather-duel/internal/weather"
)

type AppConfig struct {
	Port string

	// ReportingTZ is the fixed timezone used for all "today"/"current
	// hour" calculations and requested from the data provider.
	ReportingTZ string

	// HTTPTimeout bounds each outbound provider call.
	HTTPTimeout time.Duration

	// RefreshInterval controls the auto-refresh cadence.
	RefreshInterval time.Duration

	// In-memory view history retention.
	StoreMaxHistory int           // max number of stored views (0 = unlimited)
	StoreMaxAge     time.Duration // max age of stored views (0 = unlimited)

	// StateFile holds persisted settings and streaks.
	StateFile string

	// Defaults apply when no state file exists yet.
	Defaults weather.Settings
}

// Load reads configuration from environment with sensible defaults. An
// optional LOCATIONS_FILE (YAML) overrides the default comparison pair.
func Load() (*AppConfig, error) {
	cfg := &AppConfig{}

	cfg.Port = getenvDefault("PORT", "8080")
	cfg.ReportingTZ = getenvDefault("REPORTING_TZ", "America/New_York")
	cfg.StateFile = getenvDefault("STATE_FILE", "data/state.json")

	timeoutStr := getenvDefault("HTTP_TIMEOUT", "12s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	// Auto-refresh cadence: default 1 hour.
	intervalStr := getenvDefault("REFRESH_INTERVAL", "1h")
	interval, err := time.ParseDuration(intervalStr)
	if err != nil {
		return nil, fmt.Errorf("invalid REFRESH_INTERVAL: %w", err)
	}
	cfg.RefreshInterval = interval

	cfg.StoreMaxHistory = getenvInt("STORE_MAX_HISTORY", 48)

	maxAgeStr := getenvDefault("STORE_MAX_AGE", "48h")
	maxAge, err := time.ParseDuration(maxAgeStr)
	if err != nil {
		return nil, fmt.Errorf("invalid STORE_MAX_AGE: %w", err)
	}
	cfg.StoreMaxAge = maxAge

	defaults, err := loadDefaultSettings()
	if err != nil {
		return nil, err
	}
	cfg.Defaults = defaults

	return cfg, nil
}

func loadDefaultSettings() (weather.Settings, error) {
	settings := weather.Settings{
		Primary: weather.Location{
			Name: getenvDefault("CITY1_NAME", "Oneonta, NY"),
			Lat:  getenvFloat("CITY1_LAT", 42.4528),
			Lon:  getenvFloat("CITY1_LON", -75.0638),
		},
		Secondary: weather.Location{
			Name: getenvDefault("CITY2_NAME", "Gray Court, SC"),
			Lat:  getenvFloat("CITY2_LAT", 34.6193),
			Lon:  getenvFloat("CITY2_LON", -82.0787),
		},
		TempUnit:    getenvDefault("TEMP_UNIT", "fahrenheit"),
		AutoRefresh: getenvBool("AUTO_REFRESH", true),
	}

	path := os.Getenv("LOCATIONS_FILE")
	if path == "" {
		return settings, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return weather.Settings{}, fmt.Errorf("reading locations file: %w", err)
	}
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return weather.Settings{}, fmt.Errorf("parsing locations file: %w", err)
	}
	if settings.TempUnit == "" {
		settings.TempUnit = "fahrenheit"
	}
	return settings, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			return f
		}
	}
	return def
}

func getenvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

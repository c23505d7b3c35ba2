package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Server holds the API server settings read from the environment.
type Server struct {
	Port        string
	Environment string
	StaticDir   string
	ScenarioDir string

	// DBPath enables the SQLite store (series, integrations, run journal).
	DBPath string
	// DatabaseURL switches series reads to Postgres when set.
	DatabaseURL string

	CORSOrigins []string

	ResultCacheTTL time.Duration
	SeriesCacheTTL time.Duration

	// SeriesSourceURL points at a remote series API, used when no database is configured.
	SeriesSourceURL string
	SeriesSourceKey string
}

func (s Server) Production() bool { return s.Environment == "production" }

func LoadServer() (Server, error) {
	s := Server{
		Port:            getEnv("API_PORT", "8080"),
		Environment:     getEnv("API_ENV", "development"),
		StaticDir:       getEnv("STATIC_DIR", "./web/dist"),
		ScenarioDir:     getEnv("SCENARIO_DIR", "./examples/scenarios"),
		DBPath:          getEnv("DB_PATH", ""),
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		SeriesSourceURL: getEnv("SERIES_SOURCE_URL", ""),
		SeriesSourceKey: getEnv("SERIES_SOURCE_API_KEY", ""),
	}
	for _, o := range strings.Split(getEnv("CORS_ORIGINS", "*"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			s.CORSOrigins = append(s.CORSOrigins, o)
		}
	}

	var err error
	if s.ResultCacheTTL, err = durationEnv("RESULT_CACHE_TTL", time.Hour); err != nil {
		return Server{}, err
	}
	if s.SeriesCacheTTL, err = durationEnv("SERIES_CACHE_TTL", 10*time.Minute); err != nil {
		return Server{}, err
	}
	return s, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func durationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s: must not be negative", key)
	}
	return d, nil
}

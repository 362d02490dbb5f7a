// Package config populates service settings from environment variables,
// with an optional .env file for local development.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Live feed configuration. The feed is disabled when no brokers are set.
	KafkaBrokers []string
	KafkaTopic   string
	KafkaGroupID string
	BatchSize    int
	FeedEnabled  bool

	// Meteo poller configuration.
	MeteoEnabled   bool
	MeteoTimeout   time.Duration
	MeteoCacheSize int
	PollInterval   time.Duration
	Latitude       float64
	Longitude      float64

	// Reference datasets and optional archive preload.
	SpeciesFile string
	StocksFile  string
	ArchiveFile string
	Region      string

	// Retention bounds the in-memory observation store.
	RetentionMax int
}

// Load reads configuration from the environment, applying defaults where
// unset. A .env file in the working directory is merged in first without
// overriding variables already exported.
func Load() (*Config, error) {
	// Ignore a missing .env; it only exists in local development.
	_ = godotenv.Load()

	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	meteoTimeout, err := parseDuration("METEO_TIMEOUT", "5s")
	if err != nil {
		return nil, err
	}
	pollInterval, err := parseDuration("METEO_POLL_INTERVAL", "15m")
	if err != nil {
		return nil, err
	}

	batchSize, err := parsePositiveInt("BATCH_SIZE", 50)
	if err != nil {
		return nil, err
	}
	cacheSize, err := parsePositiveInt("METEO_CACHE_SIZE", 64)
	if err != nil {
		return nil, err
	}
	retention, err := parsePositiveInt("RETENTION_MAX", 2160)
	if err != nil {
		return nil, err
	}

	lat, err := parseFloat("LATITUDE", 29.5)
	if err != nil {
		return nil, err
	}
	lon, err := parseFloat("LONGITUDE", -89.4)
	if err != nil {
		return nil, err
	}

	brokers := parseBrokers(os.Getenv("KAFKA_BROKERS"))

	meteoEnabled := true
	if v := os.Getenv("METEO_ENABLED"); v != "" {
		meteoEnabled = v == "true"
	}

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		KafkaBrokers: brokers,
		KafkaTopic:   envOrDefault("KAFKA_TOPIC", "ocean-observations"),
		KafkaGroupID: envOrDefault("KAFKA_GROUP_ID", "seastate"),
		BatchSize:    batchSize,
		FeedEnabled:  len(brokers) > 0,

		MeteoEnabled:   meteoEnabled,
		MeteoTimeout:   meteoTimeout,
		MeteoCacheSize: cacheSize,
		PollInterval:   pollInterval,
		Latitude:       lat,
		Longitude:      lon,

		SpeciesFile: envOrDefault("SPECIES_FILE", "data/species.json"),
		StocksFile:  envOrDefault("STOCKS_FILE", "data/stocks.json"),
		ArchiveFile: os.Getenv("ARCHIVE_FILE"),
		Region:      os.Getenv("REGION"),

		RetentionMax: retention,
	}

	if cfg.FeedEnabled && cfg.KafkaTopic == "" {
		return nil, errors.New("KAFKA_TOPIC is required when KAFKA_BROKERS is set")
	}
	if cfg.SpeciesFile == "" {
		return nil, errors.New("SPECIES_FILE is required")
	}
	if cfg.StocksFile == "" {
		return nil, errors.New("STOCKS_FILE is required")
	}
	if cfg.Latitude < -90 || cfg.Latitude > 90 {
		return nil, fmt.Errorf("LATITUDE %.4f is out of range", cfg.Latitude)
	}
	if cfg.Longitude < -180 || cfg.Longitude > 180 {
		return nil, fmt.Errorf("LONGITUDE %.4f is out of range", cfg.Longitude)
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseBrokers(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseDuration(key, fallback string) (time.Duration, error) {
	s := envOrDefault(key, fallback)
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s %q", key, s)
	}
	return d, nil
}

func parsePositiveInt(key string, fallback int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s %q", key, s)
	}
	return n, nil
}

func parseFloat(key string, fallback float64) (float64, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", key, s)
	}
	return f, nil
}

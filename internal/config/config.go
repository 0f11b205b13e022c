package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"genoscope/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Services   ServicesConfig
	Enrichment EnrichmentConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// DatabaseConfig holds database connection settings. The run-history store
// is optional: with an empty URL the service runs cache-only.
type DatabaseConfig struct {
	URL     string
	Enabled bool
}

// ServicesConfig holds the external collaborator endpoints
type ServicesConfig struct {
	MyGeneURL    string
	GProfilerURL string
	Timeout      time.Duration
	BatchSize    int
}

// EnrichmentConfig holds default query parameters
type EnrichmentConfig struct {
	Sources    []string
	Threshold  float64
	Correction string
	NoIEA      bool
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server:     loadServerConfig(),
		Database:   loadDatabaseConfig(),
		Services:   loadServicesConfig(),
		Enrichment: loadEnrichmentConfig(),
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadServerConfig() ServerConfig {
	return ServerConfig{
		Port:    getEnvOrDefault("PORT", "8080"),
		GinMode: getEnvOrDefault("GIN_MODE", "debug"),
	}
}

func loadDatabaseConfig() DatabaseConfig {
	url := os.Getenv("DATABASE_URL")
	return DatabaseConfig{
		URL:     url,
		Enabled: url != "",
	}
}

func loadServicesConfig() ServicesConfig {
	return ServicesConfig{
		MyGeneURL:    getEnvOrDefault("MYGENE_URL", "https://mygene.info"),
		GProfilerURL: getEnvOrDefault("GPROFILER_URL", "https://biit.cs.ut.ee/gprofiler"),
		Timeout:      getEnvDurationOrDefault("SERVICE_TIMEOUT", 60*time.Second),
		BatchSize:    getEnvIntOrDefault("RESOLVER_BATCH_SIZE", 1000),
	}
}

func loadEnrichmentConfig() EnrichmentConfig {
	sources := getEnvOrDefault("ENRICH_SOURCES", "KEGG,GO:BP")
	return EnrichmentConfig{
		Sources:    splitList(sources),
		Threshold:  getEnvFloatOrDefault("ENRICH_THRESHOLD", 0.05),
		Correction: getEnvOrDefault("ENRICH_CORRECTION", "g_SCS"),
		NoIEA:      getEnvBoolOrDefault("ENRICH_NO_IEA", true),
	}
}

func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return errors.ConfigInvalid("server port is required")
	}
	if config.Services.MyGeneURL == "" {
		return errors.ConfigInvalid("annotation service URL is required")
	}
	if config.Services.GProfilerURL == "" {
		return errors.ConfigInvalid("enrichment service URL is required")
	}
	if config.Enrichment.Threshold <= 0 || config.Enrichment.Threshold > 1 {
		return errors.ConfigInvalid("enrichment threshold must be in (0, 1]")
	}
	if config.Services.BatchSize < 1 {
		return errors.ConfigInvalid("resolver batch size must be positive")
	}
	return nil
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

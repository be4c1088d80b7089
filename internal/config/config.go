package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration values.
type Config struct {
	// Ingestion limits
	MaxFileSize      int64         // per-file ceiling in bytes
	MaxRepoSize      int64         // whole-repository ceiling in bytes
	BatchSize        int           // items dispatched concurrently per batch
	ItemTimeout      time.Duration // per-item processing deadline
	RegistryCapacity int           // bounded job registry size

	// Repository hosting provider
	GitHubAPIBase string
	CloneTimeout  time.Duration

	// Vector index
	WeaviateHost   string
	WeaviateScheme string

	// Logging
	LogFile  string
	LogLevel slog.Level

	// Optional YAML overlay for the format table / ignore lists
	OverlayFile string
}

const (
	// DefaultMaxFileSize is the per-file size ceiling (200 MiB).
	DefaultMaxFileSize int64 = 200 << 20

	// DefaultMaxRepoSize is the whole-repository size ceiling (500 MiB).
	DefaultMaxRepoSize int64 = 500 << 20
)

// Load reads configuration from environment variables.
func Load() Config {
	return Config{
		MaxFileSize:      getEnvBytes("QUARRY_MAX_FILE_SIZE", DefaultMaxFileSize),
		MaxRepoSize:      getEnvBytes("QUARRY_MAX_REPO_SIZE", DefaultMaxRepoSize),
		BatchSize:        getEnvInt("QUARRY_BATCH_SIZE", 10),
		ItemTimeout:      getEnvDuration("QUARRY_ITEM_TIMEOUT", 2*time.Minute),
		RegistryCapacity: getEnvInt("QUARRY_JOB_CAPACITY", 1024),

		GitHubAPIBase: getEnv("QUARRY_GITHUB_API", "https://api.github.com"),
		CloneTimeout:  getEnvDuration("QUARRY_CLONE_TIMEOUT", 5*time.Minute),

		WeaviateHost:   getEnv("QUARRY_WEAVIATE_HOST", ""),
		WeaviateScheme: getEnv("QUARRY_WEAVIATE_SCHEME", "http"),

		LogFile:  getEnv("QUARRY_LOG_FILE", "/tmp/quarry.log"),
		LogLevel: parseLogLevel(getEnv("QUARRY_LOG_LEVEL", "INFO")),

		OverlayFile: getEnv("QUARRY_CONFIG", ""),
	}
}

// Overlay is the optional YAML file overriding the built-in extension table
// and ignored directory names.
type Overlay struct {
	Formats    map[string]string `yaml:"formats"`     // extension -> category
	IgnoreDirs []string          `yaml:"ignore_dirs"` // replaces the default list when set
}

// LoadOverlay parses the YAML overlay file at path.
func LoadOverlay(path string) (*Overlay, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read overlay: %w", err)
	}
	var o Overlay
	if err := yaml.Unmarshal(data, &o); err != nil {
		return nil, fmt.Errorf("parse overlay: %w", err)
	}
	return &o, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n > 0 {
			return n
		}
	}
	return defaultVal
}

func getEnvBytes(key string, defaultVal int64) int64 {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.ParseInt(val, 10, 64); err == nil && n > 0 {
			return n
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port         int
	LogLevel     string
	LogFormat    string
	Store        string // "memory" or "postgres"
	DBUser       string
	DBPassword   string
	DBHost       string
	DBPort       string
	DBName       string
	BreedMapPath string
	TickInterval time.Duration
	PushDebounce time.Duration
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:     getEnv("LOG_LEVEL", "INFO"),
		LogFormat:    getEnv("LOG_FORMAT", "text"),
		Store:        getEnv("STORE", "memory"),
		DBUser:       getEnv("DB_USER", "postgres"),
		DBPassword:   getEnv("DB_PASSWORD", "postgres"),
		DBHost:       getEnv("DB_HOST", "localhost"),
		DBPort:       getEnv("DB_PORT", "5432"),
		DBName:       getEnv("DB_NAME", "gardenbred"),
		BreedMapPath: getEnv("BREED_MAP_PATH", "breed_map.json"),
	}

	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	tick, err := envMillis("TICK_INTERVAL_MS", 2000)
	if err != nil {
		return nil, err
	}
	cfg.TickInterval = tick

	debounce, err := envMillis("PUSH_DEBOUNCE_MS", 100)
	if err != nil {
		return nil, err
	}
	cfg.PushDebounce = debounce

	if cfg.Store != "memory" && cfg.Store != "postgres" {
		return nil, fmt.Errorf("invalid STORE value %q: must be memory or postgres", cfg.Store)
	}

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func envMillis(key string, defaultMillis int) (time.Duration, error) {
	raw := getEnv(key, strconv.Itoa(defaultMillis))
	ms, err := strconv.Atoi(raw)
	if err != nil || ms <= 0 {
		return 0, fmt.Errorf("invalid %s value: %q", key, raw)
	}
	return time.Duration(ms) * time.Millisecond, nil
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}

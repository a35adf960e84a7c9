package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Store drivers understood by the bootstrap code.
const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

const (
	DefaultAITimeout            = 15 * time.Second
	DefaultConnectivityInterval = 10 * time.Second
)

type Config struct {
	AppEnv string

	StoreDriver string
	StorePath   string

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string

	GeminiAPIKey  string
	GeminiBaseURL string
	AITimeout     time.Duration
	AIRate        float64
	AIBurst       int

	ConnectivityProbeAddr string
	ConnectivityInterval  time.Duration
}

// LoadConfig reads .env (when present) and the environment. Invalid
// configuration stops the process.
func LoadConfig() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("Environment variables not loaded properly: %v", err)
	}
	return cfg
}

// Load is LoadConfig without the fatal exit.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:        getEnv("APP_ENV", "development"),
		StoreDriver:   getEnv("STORE_DRIVER", DriverFile),
		StorePath:     getEnv("STORE_PATH", ".kisanmandi"),
		DBHost:        os.Getenv("DB_HOST"),
		DBUser:        os.Getenv("DB_USER"),
		DBPassword:    os.Getenv("DB_PASSWORD"),
		DBName:        os.Getenv("DB_NAME"),
		DBPort:        getEnv("DB_PORT", "5432"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisPrefix:   getEnv("REDIS_PREFIX", "kisanmandi:"),
		GeminiAPIKey:  os.Getenv("GEMINI_APIKEY"),
		GeminiBaseURL: os.Getenv("GEMINI_BASE_URL"),

		ConnectivityProbeAddr: getEnv("CONNECTIVITY_PROBE_ADDR", "generativelanguage.googleapis.com:443"),
	}

	var err error
	if cfg.RedisDB, err = getInt("REDIS_DB", 0); err != nil {
		return nil, err
	}
	if cfg.AIBurst, err = getInt("AI_BURST", 3); err != nil {
		return nil, err
	}
	if cfg.AITimeout, err = getDuration("AI_TIMEOUT", DefaultAITimeout); err != nil {
		return nil, err
	}
	if cfg.ConnectivityInterval, err = getDuration("CONNECTIVITY_INTERVAL", DefaultConnectivityInterval); err != nil {
		return nil, err
	}
	if cfg.AIRate, err = getFloat("AI_RATE", 1); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.StoreDriver {
	case DriverMemory, DriverRedis:
	case DriverFile:
		if c.StorePath == "" {
			return fmt.Errorf("STORE_PATH is required for the %s store", DriverFile)
		}
	case DriverPostgres:
		if c.DBHost == "" {
			return fmt.Errorf("DB_HOST is required for the %s store", DriverPostgres)
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}
	if c.AITimeout <= 0 {
		return fmt.Errorf("AI_TIMEOUT must be positive")
	}
	if c.ConnectivityInterval <= 0 {
		return fmt.Errorf("CONNECTIVITY_INTERVAL must be positive")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getFloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

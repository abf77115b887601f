package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Server    ServerConfig
	Data      DataConfig
	Model     ModelConfig
	Charts    ChartsConfig
	Redis     RedisConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
	CORS      CORSConfig
}

type ServerConfig struct {
	Port int
	Mode string
}

type DataConfig struct {
	Dir    string
	Source string
	DSN    string
}

type ModelConfig struct {
	Path string
}

type ChartsConfig struct {
	Dir string
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// Enabled reports whether a shared Redis cache was configured.
func (r RedisConfig) Enabled() bool {
	return r.Host != ""
}

func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type CacheConfig struct {
	Size   int
	TTLSec int
}

type RateLimitConfig struct {
	RPS float64
}

type CORSConfig struct {
	AllowedOrigins string
}

const (
	SourceCSV      = "csv"
	SourcePostgres = "postgres"
)

func LoadConfig() (*Config, error) {
	serverPort, err := getIntEnv("SERVER_PORT", 5000)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}

	redisPort, err := getIntEnv("REDIS_PORT", 6379)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_PORT: %w", err)
	}

	redisDB, err := getIntEnv("REDIS_DB", 0)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cacheSize, err := getIntEnv("CACHE_SIZE", 10000)
	if err != nil {
		return nil, fmt.Errorf("invalid CACHE_SIZE: %w", err)
	}

	cacheTTL, err := getIntEnv("CACHE_TTL_SEC", 3600)
	if err != nil {
		return nil, fmt.Errorf("invalid CACHE_TTL_SEC: %w", err)
	}

	rps, err := getFloatEnv("RATE_LIMIT_RPS", 20)
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_RPS: %w", err)
	}

	source := strings.ToLower(getEnv("DATA_SOURCE", SourceCSV))
	if source != SourceCSV && source != SourcePostgres {
		return nil, fmt.Errorf("invalid DATA_SOURCE %q: must be %s or %s", source, SourceCSV, SourcePostgres)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: serverPort,
			Mode: getEnv("GIN_MODE", "release"),
		},
		Data: DataConfig{
			Dir:    getEnv("DATA_DIR", "data"),
			Source: source,
			DSN:    getEnv("DB_DSN", ""),
		},
		Model: ModelConfig{
			Path: getEnv("MODEL_PATH", "ensemble_model.bin"),
		},
		Charts: ChartsConfig{
			Dir: getEnv("CHARTS_DIR", "static/images"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", ""),
			Port:     redisPort,
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Cache: CacheConfig{
			Size:   cacheSize,
			TTLSec: cacheTTL,
		},
		RateLimit: RateLimitConfig{
			RPS: rps,
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
		},
	}

	if cfg.Data.Source == SourcePostgres && cfg.Data.DSN == "" {
		return nil, fmt.Errorf("DB_DSN is required when DATA_SOURCE=%s", SourcePostgres)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getIntEnv(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}
	return parsed, nil
}

func getFloatEnv(key string, fallback float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, err
	}
	return parsed, nil
}

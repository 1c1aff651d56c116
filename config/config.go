package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds every setting the process needs. It is loaded once in main
// and handed to the components that use it.
type Config struct {
	MongoURI      string
	MongoDB       string
	JWTSecret     string
	TokenLifetime time.Duration
	Port          string

	RedisAddr        string
	RedisPassword    string
	ReportLimitQueue string
	ReportDailyLimit int
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{
		MongoURI:         os.Getenv("MONGODB_URI"),
		MongoDB:          os.Getenv("MONGODB_DB"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		Port:             os.Getenv("PORT"),
		RedisAddr:        os.Getenv("REDIS_ADDRESS"),
		RedisPassword:    os.Getenv("REDIS_PASSWORD"),
		ReportLimitQueue: os.Getenv("REDIS_QUEUE_FOR_REPORT_LIMIT"),
		TokenLifetime:    168 * time.Hour,
		ReportDailyLimit: 10,
	}

	if cfg.MongoURI == "" {
		return nil, fmt.Errorf("MONGODB_URI environment variable is not set")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is not set")
	}
	if cfg.MongoDB == "" {
		cfg.MongoDB = "crime_management_db"
	}
	if cfg.Port == "" {
		cfg.Port = "3000"
	}
	if cfg.ReportLimitQueue == "" {
		cfg.ReportLimitQueue = "report_limit"
	}

	if v := os.Getenv("TOKEN_LIFETIME"); v != "" {
		lifetime, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid TOKEN_LIFETIME %q: %v", v, err)
		}
		cfg.TokenLifetime = lifetime
	}

	if v := os.Getenv("REPORT_DAILY_LIMIT"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 1 {
			return nil, fmt.Errorf("invalid REPORT_DAILY_LIMIT %q", v)
		}
		cfg.ReportDailyLimit = limit
	}

	return cfg, nil
}

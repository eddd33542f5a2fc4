// Package config provides application configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultSecretKey is the development fallback for SECRET_KEY. Validation
// rejects it in production.
const DefaultSecretKey = "change-this-secret-key-in-production"

// Config holds application configuration values loaded from .env files and
// environment variables.
type Config struct {
	Port                   string `mapstructure:"PORT"`
	BaseURL                string `mapstructure:"BASE_URL"`
	Env                    string `mapstructure:"APP_ENV"`
	Debug                  bool   `mapstructure:"DEBUG"`
	SecretKey              string `mapstructure:"SECRET_KEY"`
	DatabaseURL            string `mapstructure:"DATABASE_URL"`
	YandexMapsAPIKey       string `mapstructure:"YANDEX_MAPS_API_KEY"`
	TGBotAPIKey            string `mapstructure:"TG_BOT_API_KEY"`
	RedisURL               string `mapstructure:"REDIS_URL"`
	DBSchemaMode           string `mapstructure:"DB_SCHEMA_MODE"`
	RegistrationTTLMinutes int    `mapstructure:"REGISTRATION_TTL_MINUTES"`
}

// LoadConfig loads configuration from .env files and environment variables.
// .env is read first, then .env.local overrides it, and real environment
// variables override both.
func LoadConfig() (*Config, error) {
	loadDotenv()

	viper.AutomaticEnv()

	// Defaults for local development
	viper.SetDefault("PORT", "8000")
	viper.SetDefault("BASE_URL", "http://localhost:8000")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("SECRET_KEY", DefaultSecretKey)
	viper.SetDefault("DATABASE_URL", "sqlite://app.db")
	viper.SetDefault("YANDEX_MAPS_API_KEY", "")
	viper.SetDefault("TG_BOT_API_KEY", "")
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("DB_SCHEMA_MODE", "hybrid")
	viper.SetDefault("REGISTRATION_TTL_MINUTES", 60)

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	config.Env = strings.ToLower(strings.TrimSpace(config.Env))
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// loadDotenv reads .env then .env.local, with .env.local taking precedence.
// Variables already present in the process environment always win; godotenv
// never overrides them.
func loadDotenv() {
	// Walk up a couple of directories so the cmd/ binaries and package tests
	// can find the project root .env files.
	for _, dir := range []string{".", "..", "../.."} {
		base := dir + "/.env"
		local := dir + "/.env.local"

		loaded := false
		if _, err := os.Stat(base); err == nil {
			if err := godotenv.Load(base); err == nil {
				loaded = true
			}
		}
		if _, err := os.Stat(local); err == nil {
			// Overload lets .env.local replace values read from .env.
			if err := godotenv.Overload(local); err == nil {
				loaded = true
			}
		}
		if loaded {
			return
		}
	}
}

// IsProduction reports whether the configuration targets a production-like
// environment.
func (c *Config) IsProduction() bool {
	return c.Env == "production" || c.Env == "prod"
}

// Validate ensures that required configuration values are present and sane.
func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("PORT is required")
	}
	if c.SecretKey == "" {
		return errors.New("SECRET_KEY is required")
	}
	if c.DatabaseURL == "" {
		return errors.New("DATABASE_URL is required")
	}
	if c.RegistrationTTLMinutes <= 0 {
		return errors.New("REGISTRATION_TTL_MINUTES must be positive")
	}

	if c.IsProduction() {
		if c.SecretKey == DefaultSecretKey {
			return errors.New("SECRET_KEY must be changed from the default value in production")
		}
		if len(c.SecretKey) < 32 {
			return errors.New("SECRET_KEY must be at least 32 characters in production")
		}
		if strings.HasPrefix(c.DatabaseURL, "sqlite://") {
			log.Println("WARNING: DATABASE_URL points at SQLite in production. Consider PostgreSQL.")
		}
	}

	if c.YandexMapsAPIKey == "" {
		// The map embed on the home page degrades without it; not fatal.
		log.Println("WARNING: YANDEX_MAPS_API_KEY is not set. The map embed will be disabled.")
	}

	return nil
}

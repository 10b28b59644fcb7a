package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	// DocNumberPadding is the zero-padded width of document sequence numbers
	// (e.g. 5 -> "JE-2026-00042").
	DocNumberPadding int

	// GLSettingsCacheTTL bounds how long the resolver serves cached GL settings.
	GLSettingsCacheTTL time.Duration
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("DOC_NUMBER_PADDING", 5)
	viper.SetDefault("GL_SETTINGS_CACHE_TTL", "5m")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	cfg.DocNumberPadding = viper.GetInt("DOC_NUMBER_PADDING")
	if cfg.DocNumberPadding <= 0 {
		cfg.DocNumberPadding = 5
		log.Printf("Warning: Invalid DOC_NUMBER_PADDING. Defaulting to %d.\n", cfg.DocNumberPadding)
	}

	ttlStr := viper.GetString("GL_SETTINGS_CACHE_TTL")
	ttl, err := time.ParseDuration(ttlStr)
	if err != nil || ttl <= 0 {
		ttl = 5 * time.Minute
		if ttlStr != "" {
			log.Printf("Warning: Invalid value for GL_SETTINGS_CACHE_TTL ('%s'). Defaulting to %s.\n", ttlStr, ttl.String())
		}
	}
	cfg.GLSettingsCacheTTL = ttl

	return cfg, nil
}

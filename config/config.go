package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	Env      string `mapstructure:"ENV"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	// Marketplace backend.
	APIBaseURL     string `mapstructure:"API_BASE_URL"`
	HTTPTimeoutSec int    `mapstructure:"HTTP_TIMEOUT_SEC"`

	// Token refresh is attempted proactively when the access token expires
	// within this window.
	TokenRefreshSkewSec int `mapstructure:"TOKEN_REFRESH_SKEW_SEC"`

	// Durable client storage: "file" (default) or "redis".
	StorageBackend string `mapstructure:"STORAGE_BACKEND"`
	StorageDir     string `mapstructure:"STORAGE_DIR"`

	// Redis configuration (used when STORAGE_BACKEND=redis).
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`

	// Staleness windows for cached reads.
	StalenessSlowMin   int `mapstructure:"STALENESS_SLOW_MIN"`
	StalenessSearchSec int `mapstructure:"STALENESS_SEARCH_SEC"`
	StalenessAvailSec  int `mapstructure:"STALENESS_AVAIL_SEC"`
	StalenessUserSec   int `mapstructure:"STALENESS_USER_SEC"`

	AvailChecksPerSec int `mapstructure:"AVAIL_CHECKS_PER_SEC"`
	AvailCheckBurst   int `mapstructure:"AVAIL_CHECK_BURST"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("API_BASE_URL", "http://localhost:8000")
	viper.SetDefault("HTTP_TIMEOUT_SEC", 30)
	viper.SetDefault("TOKEN_REFRESH_SKEW_SEC", 60)
	viper.SetDefault("STORAGE_BACKEND", "file")
	viper.SetDefault("STORAGE_DIR", ".buckler")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("STALENESS_SLOW_MIN", 30)
	viper.SetDefault("STALENESS_SEARCH_SEC", 120)
	viper.SetDefault("STALENESS_AVAIL_SEC", 60)
	viper.SetDefault("STALENESS_USER_SEC", 30)
	viper.SetDefault("AVAIL_CHECKS_PER_SEC", 2)
	viper.SetDefault("AVAIL_CHECK_BURST", 5)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// HTTPTimeout returns the transport timeout as a duration.
func HTTPTimeout() time.Duration {
	return time.Duration(AppConfig.HTTPTimeoutSec) * time.Second
}

// RefreshSkew returns the proactive token refresh window.
func RefreshSkew() time.Duration {
	return time.Duration(AppConfig.TokenRefreshSkewSec) * time.Second
}

// SlowStaleness covers slow-changing reads such as categories and locations.
func SlowStaleness() time.Duration {
	return time.Duration(AppConfig.StalenessSlowMin) * time.Minute
}

// SearchStaleness covers search result reads.
func SearchStaleness() time.Duration {
	return time.Duration(AppConfig.StalenessSearchSec) * time.Second
}

// AvailabilityStaleness covers availability-by-date-range reads.
func AvailabilityStaleness() time.Duration {
	return time.Duration(AppConfig.StalenessAvailSec) * time.Second
}

// UserStaleness covers user-specific list reads such as favorites and bookings.
func UserStaleness() time.Duration {
	return time.Duration(AppConfig.StalenessUserSec) * time.Second
}

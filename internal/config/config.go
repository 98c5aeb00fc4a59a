package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/HammerMeetNail/workoutlog/internal/logging"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Auth     AuthConfig
	App      AppConfig
}

type ServerConfig struct {
	Host        string
	Port        int
	Secure      bool   // Use HTTPS-only cookies
	Environment string // "development", "production", "test"
	LogLevel    string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type AuthConfig struct {
	// Login/register attempts allowed per client IP per minute.
	RateLimit int64
	// RateLimitSet is true when AUTH_RATE_LIMIT held a valid integer.
	RateLimitSet bool
}

type AppConfig struct {
	MigrationsPath string
	SearchLimit    int
	DiaryMaxLength int
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first when present; real environment variables win.
func Load() (*Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:        getEnv("SERVER_HOST", "0.0.0.0"),
			Port:        getEnvInt("SERVER_PORT", 8080),
			Secure:      getEnvBool("SERVER_SECURE", false),
			Environment: getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "workoutlog"),
			Password: getEnv("DB_PASSWORD", "workoutlog"),
			DBName:   getEnv("DB_NAME", "workoutlog"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Auth: AuthConfig{
			RateLimit:    int64(getEnvInt("AUTH_RATE_LIMIT", 10)),
			RateLimitSet: envIntIsSet("AUTH_RATE_LIMIT"),
		},
		App: AppConfig{
			MigrationsPath: getEnv("MIGRATIONS_PATH", "migrations"),
			SearchLimit:    getEnvInt("SEARCH_RESULT_LIMIT", 20),
			DiaryMaxLength: getEnvInt("DIARY_MAX_LENGTH", 4000),
		},
	}

	if cfg.App.SearchLimit <= 0 {
		return nil, fmt.Errorf("SEARCH_RESULT_LIMIT must be positive, got %d", cfg.App.SearchLimit)
	}
	if cfg.App.DiaryMaxLength <= 0 {
		return nil, fmt.Errorf("DIARY_MAX_LENGTH must be positive, got %d", cfg.App.DiaryMaxLength)
	}
	if cfg.Auth.RateLimit <= 0 {
		return nil, fmt.Errorf("AUTH_RATE_LIMIT must be positive, got %d", cfg.Auth.RateLimit)
	}

	return cfg, nil
}

func loadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	// godotenv.Load never overrides variables that are already set.
	return godotenv.Load(path)
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		intVal, err := strconv.Atoi(value)
		if err == nil {
			return intVal
		}
		logging.Warn("Invalid integer in environment; using default", logging.Fields{
			"key":     key,
			"value":   value,
			"default": defaultValue,
		})
	}
	return defaultValue
}

func envIntIsSet(key string) bool {
	value, exists := os.LookupEnv(key)
	if !exists {
		return false
	}
	_, err := strconv.Atoi(value)
	return err == nil
}

func getEnvBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything read from the environment at startup.
type Config struct {
	AppPort       string
	SecretKey     string
	DBDriver      string
	DBDSN         string
	SessionTTL    time.Duration
	CookieSecure  bool
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	LogLevel      string
	Debug         bool
}

const defaultSQLiteDSN = "site.db?_foreign_keys=on&_busy_timeout=5000&_txlock=immediate"

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		Logger.Info("No .env file found, using system environment variables")
	}

	cfg := &Config{
		AppPort:       getEnv("APP_PORT", "8080"),
		SecretKey:     getEnv("SECRET_KEY", ""),
		DBDriver:      getEnv("DB_DRIVER", DriverSQLite),
		DBDSN:         getEnv("DB_DSN", defaultSQLiteDSN),
		SessionTTL:    time.Duration(getEnvAsInt("SESSION_HOURS", 24)) * time.Hour,
		CookieSecure:  getEnvAsBool("COOKIE_SECURE", false),
		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		Debug:         getEnvAsBool("DEBUG", false),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.SecretKey == "" {
		return errors.New("SECRET_KEY is not set")
	}
	if c.DBDriver != DriverSQLite && c.DBDriver != DriverMySQL {
		return errors.New("DB_DRIVER must be sqlite or mysql")
	}
	if c.DBDSN == "" {
		return errors.New("DB_DSN is not set")
	}
	if c.SessionTTL <= 0 {
		return errors.New("SESSION_HOURS must be positive")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if v, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return v
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	if v, err := strconv.ParseBool(getEnv(key, "")); err == nil {
		return v
	}
	return fallback
}

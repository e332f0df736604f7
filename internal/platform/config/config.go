// Package config loads the application settings from environment variables.
package config

import (
	"errors"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Store drivers accepted in STORE_DRIVER.
const (
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
	StoreMongo    = "mongo"
)

// Config holds the settings shared by the commands.
// SQL connection details (SQLITE_PATH, DB_*) live in db.Config; the SQL
// driver is always taken from StoreDriver.
type Config struct {
	AppEnv   string
	HTTPAddr string
	LogLevel string

	StoreDriver   string
	RunMigrations bool

	MongoURI      string
	MongoDatabase string

	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration

	JWTSecret    string
	JWTTTL       time.Duration
	AuthRequired bool
	// JetonRateLimit is the number of token requests allowed per client IP and minute. 0 disables it.
	JetonRateLimit int

	CORSAllowedOrigins []string
	ShutdownTimeout    time.Duration
}

// Load reads the configuration from the environment, applying defaults.
func Load() Config {
	return Config{
		AppEnv:   GetString("APP_ENV", "development"),
		HTTPAddr: GetString("HTTP_ADDR", ":8080"),
		LogLevel: GetString("LOG_LEVEL", "info"),

		StoreDriver:   strings.ToLower(GetString("STORE_DRIVER", StoreSQLite)),
		RunMigrations: GetBool("RUN_MIGRATIONS", true),

		MongoURI:      GetString("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase: GetString("MONGO_DATABASE", "vinyles"),

		RedisHost:     GetString("REDIS_HOST", ""),
		RedisPort:     GetString("REDIS_PORT", "6379"),
		RedisPassword: GetString("REDIS_PASSWORD", ""),
		RedisDB:       GetInt("REDIS_DB", 0),
		CacheTTL:      time.Duration(GetInt("CACHE_TTL_SECONDS", 300)) * time.Second,

		JWTSecret:    GetString("JWT_SECRET", ""),
		JWTTTL:       time.Duration(GetInt("JWT_TTL_MINUTES", 60)) * time.Minute,
		AuthRequired: GetBool("AUTH_REQUIRED", false),

		JetonRateLimit: GetInt("JETON_RATE_LIMIT_PER_MINUTE", 10),

		CORSAllowedOrigins: GetList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		ShutdownTimeout:    time.Duration(GetInt("SHUTDOWN_TIMEOUT_SECONDS", 10)) * time.Second,
	}
}

// Validate reports settings the server cannot start without.
func (c Config) Validate() error {
	switch c.StoreDriver {
	case StoreSQLite, StorePostgres, StoreMongo:
	default:
		return errors.New("STORE_DRIVER must be one of sqlite, postgres, mongo")
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.JWTTTL <= 0 {
		return errors.New("JWT_TTL_MINUTES must be positive")
	}
	return nil
}

// RedisEnabled reports whether a Redis host was configured.
func (c Config) RedisEnabled() bool {
	return c.RedisHost != ""
}

// IsProduction reports whether the application runs in production mode.
func (c Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// GetString returns the value of key, or fallback when unset or empty.
func GetString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// GetInt returns key parsed as an int, or fallback when unset or invalid.
func GetInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("invalid integer in environment, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return n
}

// GetBool returns key parsed as a bool, or fallback when unset or invalid.
func GetBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid boolean in environment, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return b
}

// GetList splits a comma separated value, dropping blanks.
func GetList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}

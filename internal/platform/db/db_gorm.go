// Package db opens the SQL record store through GORM.
package db

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	authadapters "vinyle_backend/internal/feature/auth/adapters"
	vinyleadapters "vinyle_backend/internal/feature/vinyle/adapters"
	"vinyle_backend/internal/platform/config"
)

// retryInterval is the pause between two connection attempts.
var retryInterval = 3 * time.Second

// connectTimeout bounds ConnectWithRetry when opening PostgreSQL.
const connectTimeout = 60 * time.Second

// Config holds the SQL connection settings. Driver is not read from the
// environment: the caller sets it from config.Config.StoreDriver.
type Config struct {
	Driver     string
	SQLitePath string
	Host       string
	Port       string
	User       string
	Password   string
	Name       string
	SSLMode    string
}

// Opener opens a GORM connection for a DSN.
type Opener func(dsn string) (*gorm.DB, error)

// LoadConfigFromEnv reads the SQL settings from the environment.
func LoadConfigFromEnv() Config {
	return Config{
		SQLitePath: config.GetString("SQLITE_PATH", "vinyles.db"),
		Host:       config.GetString("DB_HOST", "localhost"),
		Port:       config.GetString("DB_PORT", "5432"),
		User:       config.GetString("DB_USER", "postgres"),
		Password:   config.GetString("DB_PASSWORD", ""),
		Name:       config.GetString("DB_NAME", "vinyles"),
		SSLMode:    config.GetString("DB_SSLMODE", "disable"),
	}
}

// BuildDSN builds the PostgreSQL DSN for cfg.
func BuildDSN(cfg Config) string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode)
}

// ConnectWithRetry calls opener until it succeeds or timeout elapses.
func ConnectWithRetry(dsn string, timeout time.Duration, opener Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := opener(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().Add(retryInterval).After(deadline) {
			return nil, fmt.Errorf("DB connect failed after %s: %w", timeout, err)
		}
		slog.Warn("DB connect failed, retrying", "error", err, "retry_in", retryInterval)
		time.Sleep(retryInterval)
	}
}

// gormConfig makes driver errors such as unique violations comparable to
// gorm.ErrDuplicatedKey.
func gormConfig() *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	}
}

// Open connects to the configured SQL store.
func Open(cfg Config) (*gorm.DB, error) {
	switch cfg.Driver {
	case config.StoreSQLite:
		db, err := gorm.Open(sqlite.Open(cfg.SQLitePath), gormConfig())
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite %q: %w", cfg.SQLitePath, err)
		}
		if cfg.SQLitePath == ":memory:" {
			// every pooled connection would get its own empty database
			sqlDB, err := db.DB()
			if err != nil {
				return nil, err
			}
			sqlDB.SetMaxOpenConns(1)
		}
		slog.Info("sqlite store opened", "path", cfg.SQLitePath)
		return db, nil
	case config.StorePostgres:
		db, err := ConnectWithRetry(BuildDSN(cfg), connectTimeout, func(dsn string) (*gorm.DB, error) {
			return gorm.Open(postgres.Open(dsn), gormConfig())
		})
		if err != nil {
			return nil, err
		}
		slog.Info("postgres store opened", "host", cfg.Host, "port", cfg.Port, "database", cfg.Name)
		return db, nil
	default:
		return nil, errors.New("unsupported SQL driver: " + cfg.Driver)
	}
}

// Migrate creates or updates the vinyles and utilisateurs tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&vinyleadapters.VinyleModel{},
		&authadapters.UtilisateurModel{},
	); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

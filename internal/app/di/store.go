// Package di provides dependency injection factories for creating application components.
package di

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
	"gorm.io/gorm"

	authadapters "vinyle_backend/internal/feature/auth/adapters"
	authusecase "vinyle_backend/internal/feature/auth/usecase"
	vinyleadapters "vinyle_backend/internal/feature/vinyle/adapters"
	vinyleusecase "vinyle_backend/internal/feature/vinyle/usecase"
	"vinyle_backend/internal/platform/config"
	"vinyle_backend/internal/platform/db"
	platformhandler "vinyle_backend/internal/platform/http/handler"
	platformmongo "vinyle_backend/internal/platform/mongo"
)

// Stores bundles the repositories backed by the configured record store.
type Stores struct {
	Vinyles      vinyleusecase.VinyleRepository
	Utilisateurs authusecase.UtilisateurRepository
	// Ping reports whether the record store is reachable.
	Ping    platformhandler.Check
	closeFn func(ctx context.Context) error
}

// Close releases the store connections.
func (s *Stores) Close(ctx context.Context) error {
	if s.closeFn == nil {
		return nil
	}
	return s.closeFn(ctx)
}

// NewStores opens the record store selected by cfg.StoreDriver.
func NewStores(ctx context.Context, cfg config.Config, dbCfg db.Config) (*Stores, error) {
	switch cfg.StoreDriver {
	case config.StoreMongo:
		return newMongoStores(ctx, cfg)
	case config.StoreSQLite, config.StorePostgres:
		dbCfg.Driver = cfg.StoreDriver
		return newSQLStores(dbCfg, cfg.RunMigrations)
	default:
		return nil, errors.New("unsupported store driver: " + cfg.StoreDriver)
	}
}

func newSQLStores(dbCfg db.Config, migrate bool) (*Stores, error) {
	gdb, err := db.Open(dbCfg)
	if err != nil {
		return nil, err
	}
	if migrate {
		if err := db.Migrate(gdb); err != nil {
			_ = db.Close(gdb)
			return nil, err
		}
		slog.Info("migrations applied", "driver", dbCfg.Driver)
	}
	return NewSQLStores(gdb), nil
}

// NewSQLStores wraps an open GORM connection.
func NewSQLStores(gdb *gorm.DB) *Stores {
	return &Stores{
		Vinyles:      vinyleadapters.NewVinyleGorm(gdb),
		Utilisateurs: authadapters.NewUtilisateurGorm(gdb),
		Ping: func(ctx context.Context) error {
			sqlDB, err := gdb.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
		closeFn: func(context.Context) error { return db.Close(gdb) },
	}
}

func newMongoStores(ctx context.Context, cfg config.Config) (*Stores, error) {
	client, err := platformmongo.NewClient(ctx, cfg.MongoURI)
	if err != nil {
		return nil, err
	}
	database := client.Database(cfg.MongoDatabase)

	vinyles := vinyleadapters.NewVinyleMongo(database)
	utilisateurs := authadapters.NewUtilisateurMongo(database)
	if err := vinyles.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	if err := utilisateurs.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	slog.Info("mongo store ready", "database", cfg.MongoDatabase)

	return &Stores{
		Vinyles:      vinyles,
		Utilisateurs: utilisateurs,
		Ping: func(ctx context.Context) error {
			return client.Ping(ctx, readpref.Primary())
		},
		closeFn: func(ctx context.Context) error {
			if err := client.Disconnect(ctx); err != nil {
				return fmt.Errorf("failed to disconnect mongo: %w", err)
			}
			return nil
		},
	}, nil
}

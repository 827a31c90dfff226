package main

import (
	"authsvc/internal/config"
	dl "authsvc/internal/core/domain/logging"
	"authsvc/internal/db"
	"authsvc/internal/implementations/logging"
	"authsvc/internal/mongodb"
	"authsvc/internal/mongodb/migrations"
	"context"
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
)

// Only the store settings are read, so migrations can run without the service secrets.
type migrateConfig struct {
	StoreDriver     string `env:"STORE_DRIVER" envDefault:"postgres"`
	PostgresqlURL   string `env:"POSTGRESQL_URL"`
	MongodbURL      string `env:"MONGODB_URL"`
	MongodbDatabase string `env:"MONGODB_DATABASE" envDefault:"authsvc"`
	LogDevelopment  bool   `env:"LOG_DEVELOPMENT" envDefault:"false"`
}

func main() {
	cfg := migrateConfig{}
	if err := env.Parse(&cfg); err != nil {
		panic(err)
	}

	logger := logging.NewZapLogger(cfg.LogDevelopment)
	defer logger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := migrate(ctx, logger, cfg); err != nil {
		logger.Error(ctx, "Migrations failed.", dl.Entry("storeDriver", cfg.StoreDriver), dl.Entry("err", err))
		panic(err)
	}
	logger.Info(ctx, "Migrations have been applied.", dl.Entry("storeDriver", cfg.StoreDriver))
}

func migrate(ctx context.Context, log dl.Logger, cfg migrateConfig) error {
	switch cfg.StoreDriver {
	case config.StoreDriverPostgres:
		if cfg.PostgresqlURL == "" {
			return fmt.Errorf("POSTGRESQL_URL must be set")
		}
		return db.ApplyMigrations(cfg.PostgresqlURL)
	case config.StoreDriverMongoDB:
		if cfg.MongodbURL == "" {
			return fmt.Errorf("MONGODB_URL must be set")
		}
		client, err := mongodb.Connect(ctx, cfg.MongodbURL)
		if err != nil {
			return err
		}
		defer client.Disconnect(context.Background())
		return migrations.Apply(ctx, log, client.Database(cfg.MongodbDatabase))
	default:
		return fmt.Errorf("invalid STORE_DRIVER value: %q", cfg.StoreDriver)
	}
}

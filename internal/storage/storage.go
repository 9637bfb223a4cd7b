// Package storage opens the backend named by STORAGE_DRIVER and hands out its
// stores behind the service interfaces.
package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Marco21c/backend-noticias/internal/config"
	"github.com/Marco21c/backend-noticias/internal/db"
	"github.com/Marco21c/backend-noticias/internal/observability"
	"github.com/Marco21c/backend-noticias/internal/repo/memory"
	"github.com/Marco21c/backend-noticias/internal/repo/mongodb"
	"github.com/Marco21c/backend-noticias/internal/repo/postgres"
	"github.com/Marco21c/backend-noticias/internal/service"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type Backend struct {
	Driver     string
	Users      service.UserStore
	Categories service.CategoryStore
	News       service.NewsStore

	ping  func(ctx context.Context) error
	close func(ctx context.Context) error
}

func (b *Backend) Ping(ctx context.Context) error {
	if b.ping == nil {
		return nil
	}
	return b.ping(ctx)
}

func (b *Backend) Close(ctx context.Context) error {
	if b.close == nil {
		return nil
	}
	return b.close(ctx)
}

// Open connects and prepares the schema (indexes for mongo, migrations for postgres).
func Open(ctx context.Context, cfg config.Config, prom *observability.Prom, log *slog.Logger) (*Backend, error) {
	switch cfg.StorageDriver {
	case config.DriverMongo:
		return openMongo(ctx, cfg, prom, log)
	case config.DriverPostgres:
		return openPostgres(ctx, cfg, prom, log)
	case config.DriverMemory:
		log.Warn("using in-memory storage; data is lost on restart")
		return Memory(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}

func Memory() *Backend {
	return &Backend{
		Driver:     config.DriverMemory,
		Users:      memory.NewUsersRepo(),
		Categories: memory.NewCategoriesRepo(),
		News:       memory.NewNewsRepo(),
	}
}

func openMongo(ctx context.Context, cfg config.Config, prom *observability.Prom, log *slog.Logger) (*Backend, error) {
	client, err := db.NewMongo(ctx, cfg.MongoURI)
	if err != nil {
		return nil, err
	}

	database := client.Database(cfg.MongoDatabase)
	if err := mongodb.EnsureIndexes(ctx, database); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ensuring indexes: %w", err)
	}

	log.Info("mongo connected", "database", cfg.MongoDatabase)

	return &Backend{
		Driver:     config.DriverMongo,
		Users:      mongodb.NewUsersRepo(database, prom),
		Categories: mongodb.NewCategoriesRepo(database, prom),
		News:       mongodb.NewNewsRepo(database, prom),
		ping: func(ctx context.Context) error {
			return client.Ping(ctx, readpref.Primary())
		},
		close: client.Disconnect,
	}, nil
}

func openPostgres(ctx context.Context, cfg config.Config, prom *observability.Prom, log *slog.Logger) (*Backend, error) {
	pool, err := db.NewPool(ctx, cfg.DBURL, cfg.DBMaxConns)
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}

	if err := db.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	log.Info("postgres connected", "max_conns", pool.Config().MaxConns)

	return &Backend{
		Driver:     config.DriverPostgres,
		Users:      postgres.NewUsersRepo(pool, prom),
		Categories: postgres.NewCategoriesRepo(pool, prom),
		News:       postgres.NewNewsRepo(pool, prom),
		ping:       pool.Ping,
		close: func(context.Context) error {
			pool.Close()
			return nil
		},
	}, nil
}

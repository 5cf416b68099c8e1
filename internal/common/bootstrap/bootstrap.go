package bootstrap

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/AlibekovAA/user-registry/internal/common/config"
	"github.com/AlibekovAA/user-registry/internal/common/constants"
	"github.com/AlibekovAA/user-registry/internal/common/db"
	"github.com/AlibekovAA/user-registry/internal/common/logger"
	"github.com/AlibekovAA/user-registry/internal/common/resilience"
	"github.com/AlibekovAA/user-registry/internal/registry"
	"github.com/AlibekovAA/user-registry/internal/user/seed"
	"github.com/AlibekovAA/user-registry/internal/user/store"
)

type App struct {
	Log      *logger.Logger
	Config   config.RegistryConfig
	Pool     *pgxpool.Pool
	Store    store.Store
	Registry *registry.Registry
}

// NewApp wires the store selected by cfg.StoreKind into a registry and applies the seed file.
func NewApp(ctx context.Context, cfg config.RegistryConfig, log *logger.Logger) (*App, error) {
	app := &App{Log: log, Config: cfg}

	switch cfg.StoreKind {
	case constants.StorePostgres:
		pool, err := db.NewPool(ctx, log, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		db.StartPoolMetrics(ctx, pool, constants.DBPoolMetricsInterval)
		app.Pool = pool
		app.Store = store.NewPgStore(pool, store.PgStoreConfig{
			Breaker: resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
				Threshold:  int32(cfg.BreakerThreshold),
				Timeout:    cfg.BreakerTimeout,
				ResetAfter: cfg.BreakerReset,
				Name:       "user_store",
				Logger:     log,
			}),
			Retry:  db.DefaultRetryConfig,
			Logger: log,
		})
	case constants.StoreMemory:
		app.Store = store.NewMemoryStore()
	default:
		app.Store = store.NoopStore{}
	}

	app.Registry = registry.New(registry.WithStore(app.Store), registry.WithLogger(log))

	if cfg.SeedFile != "" {
		users, err := seed.Load(cfg.SeedFile)
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("failed to seed registry: %w", err)
		}
		app.Registry.Add(users...)
		if mem, ok := app.Store.(*store.MemoryStore); ok {
			for _, u := range users {
				mem.Confirm(u.ID)
			}
		}
		log.Infof("registry seeded with %d users from %s", len(users), cfg.SeedFile)
	}

	return app, nil
}

func (a *App) Close() {
	if a.Pool != nil {
		a.Pool.Close()
	}
}

package store

import (
	"context"
	"time"

	"github.com/jackc/pgconn"

	"github.com/AlibekovAA/user-registry/internal/common/constants"
	"github.com/AlibekovAA/user-registry/internal/common/db"
	"github.com/AlibekovAA/user-registry/internal/common/logger"
	"github.com/AlibekovAA/user-registry/internal/common/resilience"
	"github.com/AlibekovAA/user-registry/internal/user/domain"
)

// Execer is the slice of *pgxpool.Pool that PgStore needs.
type Execer interface {
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
}

type PgStore struct {
	pool    Execer
	breaker *resilience.CircuitBreaker
	retry   db.RetryConfig
	log     *logger.Logger
}

type PgStoreConfig struct {
	Breaker *resilience.CircuitBreaker
	Retry   db.RetryConfig
	Logger  *logger.Logger
}

func NewPgStore(pool Execer, cfg PgStoreConfig) *PgStore {
	retry := cfg.Retry
	if retry.MaxAttempts <= 0 {
		retry = db.DefaultRetryConfig
	}
	log := cfg.Logger
	if log == nil {
		log = logger.Discard()
	}
	breaker := cfg.Breaker
	if breaker == nil {
		breaker = resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
			Threshold:  constants.DefaultCircuitBreakerThreshold,
			Timeout:    constants.DefaultCircuitBreakerTimeout,
			ResetAfter: constants.DefaultCircuitBreakerReset,
			Name:       "user_store",
			Logger:     log,
		})
	}
	return &PgStore{
		pool:    pool,
		breaker: breaker,
		retry:   retry,
		log:     log,
	}
}

func (s *PgStore) Delete(ctx context.Context, id domain.ID) (bool, error) {
	var deleted bool

	err := s.breaker.Call(ctx, func(ctx context.Context) error {
		return db.RetryWithBackoff(ctx, s.log, s.retry, func(ctx context.Context) error {
			start := time.Now()
			tag, err := s.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, int(id))
			if err = db.HandleExecError(err, "delete user", start); err != nil {
				return err
			}
			deleted = tag.RowsAffected() > 0
			return nil
		})
	})
	if err != nil {
		return false, err
	}

	return deleted, nil
}

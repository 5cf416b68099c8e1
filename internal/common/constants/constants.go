package constants

import "time"

const (
	DefaultDeleteTimeout = 5 * time.Second
	LoginLookupBudget    = 300 * time.Millisecond

	DBPoolMaxConns        = 10
	DBPoolMinConns        = 1
	DBPoolConnMaxLifetime = time.Hour
	DBPoolConnMaxIdleTime = 30 * time.Minute
	DBPoolHealthCheck     = 1 * time.Minute
	DBPoolConnectTimeout  = 5 * time.Second
	DBPoolMaxAttempts     = 10
	DBPoolRetryDelay      = 1 * time.Second
	DBPoolMetricsInterval = 30 * time.Second

	DefaultCircuitBreakerThreshold = 5
	DefaultCircuitBreakerTimeout   = 5 * time.Second
	DefaultCircuitBreakerReset     = 10 * time.Second

	DefaultLogDir    = "/var/log/user-registry"
	LoggerMaxSize    = 100
	LoggerMaxBackups = 3
	LoggerMaxAge     = 28

	StoreNoop     = "noop"
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

type TraceIDKeyType string

const TraceIDKey TraceIDKeyType = "trace_id"

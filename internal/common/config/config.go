package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/AlibekovAA/user-registry/internal/common/constants"
	commonerrors "github.com/AlibekovAA/user-registry/internal/common/errors"
)

var validate = validator.New()

type RegistryConfig struct {
	StoreKind        string `validate:"oneof=noop memory postgres"`
	DatabaseURL      string `validate:"required_if=StoreKind postgres"`
	SeedFile         string
	MetricsFile      string
	LogDir           string
	LogLevel         string        `validate:"omitempty,oneof=DEBUG INFO WARN WARNING ERROR CRITICAL debug info warn warning error critical"`
	DeleteTimeout    time.Duration `validate:"gt=0"`
	BreakerThreshold int           `validate:"min=1"`
	BreakerTimeout   time.Duration `validate:"gt=0"`
	BreakerReset     time.Duration `validate:"gt=0"`
}

func LoadRegistryConfig() (RegistryConfig, error) {
	databaseURL := getEnv("DATABASE_URL", "")

	defaultStore := constants.StoreNoop
	if databaseURL != "" {
		defaultStore = constants.StorePostgres
	}

	cfg := RegistryConfig{
		StoreKind:        getEnv("REGISTRY_STORE", defaultStore),
		DatabaseURL:      databaseURL,
		SeedFile:         getEnv("REGISTRY_SEED_FILE", ""),
		MetricsFile:      getEnv("REGISTRY_METRICS_FILE", ""),
		LogDir:           getEnv("LOG_DIR", ""),
		LogLevel:         getEnv("LOG_LEVEL", "INFO"),
		DeleteTimeout:    getDurationEnv("REGISTRY_DELETE_TIMEOUT", constants.DefaultDeleteTimeout),
		BreakerThreshold: getIntEnv("REGISTRY_BREAKER_THRESHOLD", constants.DefaultCircuitBreakerThreshold),
		BreakerTimeout:   getDurationEnv("REGISTRY_BREAKER_TIMEOUT", constants.DefaultCircuitBreakerTimeout),
		BreakerReset:     getDurationEnv("REGISTRY_BREAKER_RESET", constants.DefaultCircuitBreakerReset),
	}

	if err := cfg.Validate(); err != nil {
		return RegistryConfig{}, err
	}
	return cfg, nil
}

func (c RegistryConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		if c.StoreKind == constants.StorePostgres && c.DatabaseURL == "" {
			return fmt.Errorf("%w: DATABASE_URL", commonerrors.ErrMissingRequiredEnv)
		}
		return commonerrors.ErrInvalidConfig.WithCause(err)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func getIntEnv(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return i
}

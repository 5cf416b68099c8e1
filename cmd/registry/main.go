package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/AlibekovAA/user-registry/internal/common/bootstrap"
	"github.com/AlibekovAA/user-registry/internal/common/config"
	"github.com/AlibekovAA/user-registry/internal/common/logger"
	"github.com/AlibekovAA/user-registry/internal/common/traceid"
	"github.com/AlibekovAA/user-registry/internal/observability/metrics"
	"github.com/AlibekovAA/user-registry/internal/user/domain"
)

type cliFlags struct {
	SeedFile    string
	Login       string
	Delete      string
	MetricsFile string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	var flags cliFlags

	fs := flag.NewFlagSet("registry", flag.ContinueOnError)
	fs.StringVar(&flags.SeedFile, "seed", "", "JSON file with users to load (overrides REGISTRY_SEED_FILE)")
	fs.StringVar(&flags.Login, "login", "", "credentials to check, as username:password")
	fs.StringVar(&flags.Delete, "delete", "", "user id to delete through the configured store")
	fs.StringVar(&flags.MetricsFile, "metrics-file", "", "write Prometheus metrics to this file on exit")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.LoadRegistryConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if flags.SeedFile != "" {
		cfg.SeedFile = flags.SeedFile
	}
	if flags.MetricsFile != "" {
		cfg.MetricsFile = flags.MetricsFile
	}

	log, err := logger.New(cfg.LogDir, "registry", cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	ctx, err = traceid.WithTraceID(ctx, traceid.NewUUIDGenerator())
	if err != nil {
		log.Warnf("failed to generate trace id: %v", err)
	}

	app, err := bootstrap.NewApp(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer app.Close()

	log.WithFields(ctx, logger.Fields{
		"store":  cfg.StoreKind,
		"users":  app.Registry.Len(),
		"action": "registry_ready",
	}).Info("registry ready")

	if flags.Login != "" {
		if err := runLogin(ctx, app, flags.Login, stdout); err != nil {
			return err
		}
	}

	if flags.Delete != "" {
		if err := runDelete(ctx, app, flags.Delete, stdout); err != nil {
			return err
		}
	}

	if cfg.MetricsFile != "" {
		if err := metrics.WriteTextfile(cfg.MetricsFile); err != nil {
			return err
		}
	}

	return nil
}

func runLogin(ctx context.Context, app *bootstrap.App, credentials string, stdout io.Writer) error {
	username, password, ok := strings.Cut(credentials, ":")
	if !ok {
		return errors.New("-login expects username:password")
	}

	user, found, err := app.Registry.LoginWith(ctx, username, password)
	if err != nil {
		return err
	}
	if !found {
		fmt.Fprintln(stdout, "login: no matching user")
		return nil
	}

	summary := user.Summary()
	fmt.Fprintf(stdout, "login: ok id=%d username=%s\n", summary.ID, summary.Username)
	return nil
}

func runDelete(ctx context.Context, app *bootstrap.App, rawID string, stdout io.Writer) error {
	id, err := strconv.Atoi(rawID)
	if err != nil {
		return fmt.Errorf("-delete expects an integer id: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, app.Config.DeleteTimeout)
	defer cancel()

	deleted, err := app.Registry.Delete(ctx, domain.ID(id))
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "delete: id=%d deleted=%t remaining=%d\n", id, deleted, app.Registry.Len())
	return nil
}

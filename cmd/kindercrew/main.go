package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"
	fiberlogger "github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	goredis "github.com/redis/go-redis/v9"

	"github.com/lborres/kindercrew"
	fiberadapter "github.com/lborres/kindercrew/adapters/fiber"
	memoryadapter "github.com/lborres/kindercrew/adapters/memory"
	pgxadapter "github.com/lborres/kindercrew/adapters/pgx"
	redisadapter "github.com/lborres/kindercrew/adapters/redis"
	"github.com/lborres/kindercrew/core"
	"github.com/lborres/kindercrew/dashboard"
	"github.com/lborres/kindercrew/pkg/config"
	"github.com/lborres/kindercrew/pkg/logger"
	"github.com/lborres/kindercrew/pkg/metrics"
	"github.com/lborres/kindercrew/pkg/store"
	"github.com/lborres/kindercrew/services"
)

func logFormat() string {
	format := []string{
		"${time}",
		"${status}|${latency}",
		"${ip}",
		"${method}|${path}|${queryParams}",
		"${error}",
	}
	return strings.Join(format, "|") + "\n"
}

func main() {
	if err := run(); err != nil {
		slog.Error("kindercrew exited", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	log := logger.SetupDefault(os.Stdout, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend, err := openBackend(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer backend.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	collector := metrics.NewCollector(reg)

	validatorConfig := core.DefaultValidatorConfig()
	validatorConfig.Latency = cfg.ValidatorLatency

	k, err := kindercrew.New(ctx, kindercrew.Config{
		Records:         backend.records,
		Credentials:     backend.credentials,
		ValidatorConfig: &validatorConfig,
		Logger:          log,
		Metrics:         collector,
	})
	if err != nil {
		return fmt.Errorf("could not create kindercrew instance: %w", err)
	}
	defer k.Close()

	app := fiber.New()
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format:     logFormat(),
		TimeFormat: "2006/01/02 15:04:05",
		TimeZone:   "Local",
	}))

	httpAdapter := fiberadapter.New(app, k.Session, dashboard.NewBoard(time.Now, log), fiberadapter.Options{
		LoginRatePerMinute: cfg.LoginRatePerMinute,
		Gatherer:           reg,
		Metrics:            collector,
		Logger:             log,
	})
	defer httpAdapter.Close()
	if err := httpAdapter.RegisterRoutes(services.NewEndpointRegistry()); err != nil {
		return fmt.Errorf("failed to register routes: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", slog.String("addr", cfg.HTTPAddr), slog.String("backend", string(cfg.Backend)))
		errCh <- app.Listen(cfg.HTTPAddr, fiber.ListenConfig{DisableStartupMessage: true})
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server stopped: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	return nil
}

type backend struct {
	records     core.RecordStorage
	credentials core.CredentialStorage
	closers     []io.Closer
}

func (b *backend) Close() error {
	var errs []error
	for _, c := range b.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}

type closerFunc func()

func (f closerFunc) Close() error {
	f()
	return nil
}

// openBackend picks record and credential storage for cfg.Backend. Only the
// postgres backend keeps credentials across restarts.
func openBackend(ctx context.Context, cfg *config.Config, log *slog.Logger) (*backend, error) {
	b := &backend{credentials: memoryadapter.New()}

	switch cfg.Backend {
	case config.BackendMemory:
		b.records = store.NewMemory()

	case config.BackendFile:
		files, err := store.NewFile(cfg.StorageDir)
		if err != nil {
			return nil, err
		}
		b.records = files

	case config.BackendRedis:
		client := goredis.NewClient(&goredis.Options{Addr: cfg.RedisAddr})
		records := redisadapter.New(client, "", cfg.RedisTTL)
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := records.Ping(pingCtx); err != nil {
			_ = client.Close()
			return nil, err
		}
		b.records = records
		b.closers = append(b.closers, client)

	case config.BackendPostgres:
		pool, err := pgxadapter.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		adapter := pgxadapter.New(pool)
		if err := adapter.Migrate(ctx); err != nil {
			pool.Close()
			return nil, err
		}
		b.records = adapter
		b.credentials = adapter
		b.closers = append(b.closers, closerFunc(pool.Close))

	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}

	log.Info("storage ready", slog.String("backend", string(cfg.Backend)))
	return b, nil
}

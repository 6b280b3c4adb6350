package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"greenpass/internal/platform/config"
	"greenpass/internal/platform/database"
	"greenpass/internal/platform/httpserver"
	"greenpass/internal/platform/kafka"
	"greenpass/internal/platform/logger"
	"greenpass/internal/platform/metrics"
	"greenpass/internal/platform/redis"
	"greenpass/internal/platform/tracer"
	"greenpass/internal/revocation/consumer"
	httptransport "greenpass/internal/transport/http"
	"greenpass/internal/trust"
	trusthandler "greenpass/internal/trust/handler"
	"greenpass/internal/validator"
	vhandler "greenpass/internal/validator/handler"
	vmetrics "greenpass/internal/validator/metrics"
	"greenpass/pkg/platform/middleware/adminauth"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal service packages.
func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Log.Level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}

func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	log.Info("initializing greenpass",
		"addr", cfg.Server.Addr,
		"environment", cfg.Server.Environment,
		"revocation_backend", cfg.Trust.RevocationBackend,
		"default_mode", cfg.Server.DefaultMode,
	)

	defaultMode, err := validator.ParseMode(cfg.Server.DefaultMode)
	if err != nil {
		return err
	}

	infra, err := openInfra(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer infra.Close()

	store, err := infra.revocationStore(ctx, cfg.Trust.RevocationBackend, log)
	if err != nil {
		return err
	}

	manager := trust.NewManager(store, trust.WithLogger(log), trust.WithMetrics(metrics.NewTrust()))
	if err := manager.LoadFiles(ctx, cfg.Trust.RulesFile, cfg.Trust.KeysFile); err != nil {
		return err
	}
	if !manager.Ready() {
		log.Warn("trust store not ready; load rules and keys through the admin API")
	}

	svc := validator.New(manager,
		validator.WithLogger(log),
		validator.WithMetrics(vmetrics.New()),
		validator.WithTracer(tracer.NewOTel()),
	)

	health := httptransport.NewHealth(manager.Ready)
	health.RegisterCheck("trust_store", manager.CheckSetUp)
	infra.registerChecks(health, cfg)

	router := httptransport.NewRouter(httptransport.Deps{
		Logger: log,
		Health: health,
		Features: []httptransport.Registrar{
			vhandler.New(svc, log, defaultMode),
			trusthandler.New(manager, adminauth.NewVerifier(cfg.Admin.JWTSigningKey, cfg.Admin.JWTIssuer), log),
		},
	})
	srv := httpserver.New(cfg.Server.Addr, router)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("starting http server", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down server gracefully")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if cfg.Kafka.Brokers != "" {
		c, err := consumer.New(consumer.Config{
			Brokers: cfg.Kafka.Brokers,
			GroupID: cfg.Kafka.GroupID,
			Topic:   cfg.Kafka.CRLTopic,
		}, store, log)
		if err != nil {
			return err
		}
		g.Go(func() error {
			defer c.Close()
			log.Info("consuming crl updates", "topic", cfg.Kafka.CRLTopic)
			return c.Run(gctx)
		})
	}

	if infra.redis != nil {
		g.Go(func() error {
			ticker := time.NewTicker(15 * time.Second)
			defer ticker.Stop()
			for {
				select {
				case <-gctx.Done():
					return nil
				case <-ticker.C:
					infra.redis.RecordPoolStats()
				}
			}
		})
	}

	return g.Wait()
}

// infra holds optional backing services. Nil fields are not configured.
type infra struct {
	redis *redis.Client
	db    *database.Pool
}

func openInfra(ctx context.Context, cfg config.Config, log *slog.Logger) (*infra, error) {
	in := &infra{}

	rc, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		return nil, err
	}
	in.redis = rc

	db, err := database.New(ctx, cfg.Database)
	if err != nil {
		in.Close()
		return nil, err
	}
	in.db = db

	log.Info("infrastructure connected",
		"redis", in.redis != nil,
		"postgres", in.db != nil,
	)
	return in, nil
}

func (in *infra) registerChecks(h *httptransport.Health, cfg config.Config) {
	if in.redis != nil {
		h.RegisterCheck("redis", in.redis.Health)
	}
	if in.db != nil {
		h.RegisterCheck("postgres", in.db.Health)
	}
	if cfg.Kafka.Brokers != "" {
		h.RegisterCheck("kafka", kafka.NewHealthChecker(cfg.Kafka.Brokers).Check)
	}
}

func (in *infra) Close() {
	if in.redis != nil {
		_ = in.redis.Close()
	}
	if in.db != nil {
		_ = in.db.Close()
	}
}

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

	"github.com/apollo-healthcare/apollo-web/internal/app"
	"github.com/apollo-healthcare/apollo-web/internal/directory"
	"github.com/apollo-healthcare/apollo-web/internal/enrollment"
	enrollmenthttp "github.com/apollo-healthcare/apollo-web/internal/enrollment/http"
	jobmetrics "github.com/apollo-healthcare/apollo-web/internal/jobs"
	"github.com/apollo-healthcare/apollo-web/internal/listing"
	listinghttp "github.com/apollo-healthcare/apollo-web/internal/listing/http"
	"github.com/apollo-healthcare/apollo-web/internal/observability"
	"github.com/apollo-healthcare/apollo-web/internal/platform/cache"
	"github.com/apollo-healthcare/apollo-web/internal/shared"
	"github.com/apollo-healthcare/apollo-web/internal/view"
	"github.com/apollo-healthcare/apollo-web/jobs"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)
	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("apollo exited", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *app.Config, logger *slog.Logger) error {
	redisClient, err := cache.New(ctx, cfg.RedisOptions())
	if err != nil {
		return err
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	sessionManager := shared.NewSessionManager(redisClient, cfg.SessionCookie, cfg.SessionTTL, cfg.IsProduction())
	csrfManager := shared.NewCSRFManager(cfg.CSRFSecret)

	templates, err := view.NewEngine()
	if err != nil {
		return err
	}

	metrics := observability.NewMetrics()
	client := directory.NewClient(cfg.APIBaseURL, directory.WithRecorder(metrics))

	registry := listing.NewRegistry(client, listing.MachineOptions{
		Limit:    cfg.ListingPageSize,
		Logger:   logger.With(slog.String("component", "listing")),
		Recorder: metrics,
	}, cfg.ListingIdleTTL)

	jobMetrics := jobmetrics.NewMetrics(metrics.Registerer())
	scheduler, err := jobs.NewScheduler(logger.With(slog.String("component", "jobs")), jobMetrics,
		jobs.SweepRegistration(cfg.ListingSweepSpec, registry, jobMetrics),
	)
	if err != nil {
		return err
	}

	router := app.NewRouter(app.RouterParams{
		Logger:            logger,
		Config:            cfg,
		Templates:         templates,
		SessionManager:    sessionManager,
		CSRFManager:       csrfManager,
		ListingHandler:    listinghttp.NewHandler(logger, registry, templates),
		EnrollmentHandler: enrollmenthttp.NewHandler(logger, enrollment.NewService(client, logger), templates, csrfManager),
		Metrics:           metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("http server starting", slog.String("addr", cfg.AppAddr), slog.String("api", cfg.APIBaseURL))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return scheduler.Run(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown", slog.Any("error", err))
			return err
		}
		logger.Info("server stopped")
		return nil
	})
	return g.Wait()
}

package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"search-service/config"
	"search-service/consumer"
	"search-service/driver"
	"search-service/gateway"
	"search-service/logger"
	"search-service/retry"
	"search-service/usecase"
	appOtel "search-service/utils/otel"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// App holds all components of the search service.
type App struct {
	httpServer    *http.Server
	driverClose   func()
	redisConsumer *consumer.Consumer
	otelShutdown  appOtel.ShutdownFunc
}

// Run initializes all components and starts the service.
// It blocks until ctx is cancelled, then performs graceful shutdown.
func Run(ctx context.Context) error {
	// ── OpenTelemetry ──
	otelCfg := appOtel.ConfigFromEnv()
	otelShutdown, err := appOtel.InitProvider(ctx, otelCfg)
	if err != nil {
		fmt.Printf("Failed to initialize OpenTelemetry: %v\n", err)
		otelCfg.Enabled = false
		otelShutdown = func(context.Context) error { return nil }
	}

	// ── Logger ──
	logger.InitWithOTel(otelCfg.Enabled)
	logger.Logger.Info("Starting search-service",
		"service", otelCfg.ServiceName,
		"otel_enabled", otelCfg.Enabled,
	)

	// ── Load config ──
	appCfg, err := config.Load()
	if err != nil {
		logger.Logger.Error("Failed to load config", "err", err)
		return err
	}

	// ── Drivers (infrastructure layer) ──
	dbDriver, err := initDatabaseDriver(ctx, appCfg)
	if err != nil {
		logger.Logger.Error("Failed to initialize database driver", "err", err)
		return err
	}

	msClient, err := initMeilisearchClient(ctx, appCfg)
	if err != nil {
		logger.Logger.Error("Failed to initialize Meilisearch", "err", err)
		dbDriver.Close()
		return err
	}
	searchDriver := driver.NewMeilisearchDriver(msClient, appCfg.Meilisearch.Index)

	// ── Gateways (anti-corruption layer) ──
	serviceRepo := gateway.NewServiceRepositoryGateway(dbDriver)
	searchEngine := gateway.NewSearchEngineGateway(searchDriver)

	// The index must exist with the right settings before any request is
	// served. Failure here is fatal.
	if err := retry.Do(ctx, config.BootstrapAttempts, retry.Constant(config.BootstrapDelay), searchEngine.EnsureIndex); err != nil {
		logger.Logger.Error("Failed to ensure search index", "err", err)
		dbDriver.Close()
		return err
	}

	// ── Use cases (application layer) ──
	indexUsecase := usecase.NewIndexServiceUsecase(serviceRepo, searchEngine)
	deleteUsecase := usecase.NewDeleteServiceUsecase(searchEngine)
	searchUsecase := usecase.NewSearchServicesUsecase(searchEngine)
	suggestUsecase := usecase.NewSuggestServicesUsecase(searchEngine)
	syncUsecase := usecase.NewSyncSynonymsUsecase(serviceRepo, searchEngine)

	// Synonym sync failure is non-fatal: search stays usable without
	// expansion until the next restart.
	syncSynonyms(ctx, syncUsecase)

	// ── Redis Streams Consumer ──
	var redisConsumer *consumer.Consumer
	consumerCfg := consumer.ConfigFromEnv()
	if consumerCfg.Enabled {
		eventHandler := consumer.NewServiceEventHandler(indexUsecase, deleteUsecase, logger.Logger)
		redisConsumer, err = consumer.NewConsumer(consumerCfg, eventHandler, logger.Logger)
		if err != nil {
			logger.Logger.Error("Failed to create Redis Streams consumer", "err", err)
		} else {
			if err := redisConsumer.Start(ctx); err != nil {
				logger.Logger.Error("Failed to start Redis Streams consumer", "err", err)
			} else {
				logger.Logger.Info("Redis Streams consumer started",
					"stream", consumerCfg.StreamKey,
					"group", consumerCfg.GroupName,
				)
			}
		}
	} else {
		logger.Logger.Info("Redis Streams consumer disabled")
	}

	// ── Servers ──
	app := &App{
		httpServer:    newHTTPServer(appCfg, indexUsecase, deleteUsecase, searchUsecase, suggestUsecase),
		driverClose:   dbDriver.Close,
		redisConsumer: redisConsumer,
		otelShutdown:  otelShutdown,
	}

	go func() {
		logger.Logger.Info("http listen", "addr", appCfg.HTTP.Addr)
		if err := app.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Error("http", "err", err)
		}
	}()

	// ── Wait for shutdown signal ──
	<-ctx.Done()
	app.shutdown()
	return nil
}

// shutdown performs graceful shutdown of all components.
func (a *App) shutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Logger.Error("http shutdown error", "err", err)
	}
	if a.redisConsumer != nil {
		a.redisConsumer.Stop()
	}
	if a.driverClose != nil {
		a.driverClose()
	}

	otelCtx, otelCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer otelCancel()
	if err := a.otelShutdown(otelCtx); err != nil {
		fmt.Printf("Failed to shutdown OpenTelemetry: %v\n", err)
	}
}

// syncSynonyms mirrors the synonym table into the engine at startup and
// records the duration metric.
func syncSynonyms(ctx context.Context, syncUsecase *usecase.SyncSynonymsUsecase) {
	start := time.Now()
	result, err := syncUsecase.Execute(ctx)
	if err != nil {
		recordError(ctx, "synonym_sync")
		logger.Logger.Error("synonym sync failed, continuing without expansion", "err", err)
		return
	}
	recordSyncDuration(ctx, time.Since(start))
	logger.Logger.Info("synonym sync complete",
		"pairs", result.PairCount,
		"groups", result.GroupCount,
	)
}

func recordSyncDuration(ctx context.Context, duration time.Duration) {
	m := appOtel.Metrics
	if m == nil {
		return
	}
	m.SyncDuration.Record(ctx, duration.Seconds())
}

// recordError records an error metric.
func recordError(ctx context.Context, operation string) {
	m := appOtel.Metrics
	if m == nil {
		return
	}
	m.ErrorsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", operation)))
}

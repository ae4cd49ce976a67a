package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/kevin0018/LiftPath/internal/api"
	"github.com/kevin0018/LiftPath/internal/auth"
	"github.com/kevin0018/LiftPath/internal/cache"
	"github.com/kevin0018/LiftPath/internal/config"
	"github.com/kevin0018/LiftPath/internal/domain"
	"github.com/kevin0018/LiftPath/internal/logging"
	"github.com/kevin0018/LiftPath/internal/outbox"
	"github.com/kevin0018/LiftPath/internal/persistence/memory"
	persistence "github.com/kevin0018/LiftPath/internal/persistence/postgres"
	httptransport "github.com/kevin0018/LiftPath/internal/transport/http"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}
	logger := logging.Setup(logging.SetupParams{
		LogFileName:   cfg.LogFile,
		LogToStdout:   true,
		LogLevel:      cfg.LogLevel,
		LogFormatJSON: cfg.LogFormatJSON,
		Service:       "training-api",
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		store      domain.Store
		dispatcher *outbox.Dispatcher
	)
	if cfg.PostgresURL == "" {
		logger.Warn("POSTGRES_URL is empty, using in-memory store without event publishing")
		store = memory.NewStore()
	} else {
		pool, err := pgxpool.New(ctx, cfg.PostgresURL)
		if err != nil {
			logger.WithError(err).Fatal("failed to connect to postgres")
		}
		defer pool.Close()

		store = persistence.NewRepository(pool)
		producer := outbox.NewKafkaProducer(cfg.KafkaBrokers)
		defer producer.Close()

		registry := outbox.NewSchemaRegistryClient(cfg.SchemaRegistryURL, cfg.RegistryTimeout)
		dispatcher = outbox.NewDispatcher(pool, producer, registry, cfg.OutboxPollInterval, cfg.OutboxBatchSize,
			outbox.WithClaimLease(cfg.OutboxClaimLease),
			outbox.WithRetryBaseDelay(cfg.DLQBaseDelay),
		)
		go dispatcher.Start(ctx)
	}

	service := domain.NewService(store, auth.CurrentUser,
		domain.WithLocation(cfg.Location()),
		domain.WithSeedMarker(cache.NewSeedMarker(cfg.SeedCacheTTL)),
		domain.WithLogger(logger.WithField("component", "domain")),
	)

	mux := http.NewServeMux()
	api.NewHandler(service, logger).RegisterRoutes(mux)
	mux.Handle("GET /metrics", promhttp.Handler())

	authMiddleware := auth.NewMiddleware(auth.Config{Secret: cfg.JWTSecret, Issuer: cfg.JWTIssuer})
	handler := httptransport.Chain(mux,
		httptransport.CORS(cfg.CORSOrigin),
		httptransport.RequestLogger(logger),
		authMiddleware.Wrap,
	)

	server := httptransport.NewServer(httptransport.DefaultServerConfig(cfg.HTTPAddress), handler)

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	httptransport.Serve(server, logger)

	<-shutdownCh
	logger.Info("shutdown requested")
	cancel()

	httptransport.Shutdown(server, 15*time.Second, logger)

	if dispatcher != nil {
		dispatcher.Wait()
	}
}

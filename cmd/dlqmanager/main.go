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

	"github.com/kevin0018/LiftPath/internal/config"
	"github.com/kevin0018/LiftPath/internal/logging"
	"github.com/kevin0018/LiftPath/internal/outbox"
	httptransport "github.com/kevin0018/LiftPath/internal/transport/http"
)

const (
	defaultDLQBatchSize = 50
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := logging.Setup(logging.SetupParams{
		LogFileName:   cfg.LogFile,
		LogToStdout:   true,
		LogLevel:      cfg.LogLevel,
		LogFormatJSON: cfg.LogFormatJSON,
		Service:       "training-dlq-manager",
	})
	if cfg.PostgresURL == "" {
		logger.Fatal("POSTGRES_URL is required for the dlq manager")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.PostgresURL)
	if err != nil {
		logger.WithError(err).Fatal("failed to connect to postgres")
	}
	defer pool.Close()

	manager := outbox.NewDLQManager(pool, cfg.DLQMaxRetries, cfg.DLQBaseDelay)

	metricsSrv := &http.Server{Addr: cfg.MetricsAddress, Handler: promhttp.Handler()}
	httptransport.Serve(metricsSrv, logger.WithField("server", "metrics"))

	logger.WithFields(log.Fields{
		"interval":    cfg.DLQPollInterval,
		"max_retries": cfg.DLQMaxRetries,
	}).Info("dlq manager started")

	done := make(chan struct{})
	go func() {
		defer close(done)
		manager.Run(ctx, cfg.DLQPollInterval, defaultDLQBatchSize)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	logger.Info("dlq manager received shutdown signal")
	cancel()
	<-done

	httptransport.Shutdown(metricsSrv, 10*time.Second, logger)
}

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/YvetteWu002039154/INFO7500-Text2SQL/internal/pkg/bitcoind"
	"github.com/YvetteWu002039154/INFO7500-Text2SQL/internal/repository"
	"github.com/YvetteWu002039154/INFO7500-Text2SQL/internal/repository/postgres"
	"github.com/YvetteWu002039154/INFO7500-Text2SQL/internal/service"
)

type config struct {
	PostgresDSN  string        `long:"postgres-dsn" env:"SYNC_POSTGRES_DSN" description:"Postgres DSN" required:"true"`
	Network      string        `long:"network" env:"SYNC_NETWORK" description:"network name" default:"mainnet"`
	RPCURL       string        `long:"rpc-url" env:"BITCOIN_RPC_URL" description:"Bitcoin RPC URL" default:"http://127.0.0.1:8332"`
	RPCUser      string        `long:"rpc-user" env:"BITCOIN_RPC_USER" description:"Bitcoin RPC username" required:"true"`
	RPCPassword  string        `long:"rpc-password" env:"BITCOIN_RPC_PASSWORD" description:"Bitcoin RPC password" required:"true"`
	HTTPTimeout  time.Duration `long:"http-timeout" env:"SYNC_HTTP_TIMEOUT" description:"HTTP timeout for RPC requests" default:"30s"`
	SyncInterval time.Duration `long:"sync-interval" env:"SYNC_INTERVAL" description:"Delay between sync passes" default:"5m"`
	RPCRateLimit int           `long:"rpc-rate-limit" env:"SYNC_RPC_RATE_LIMIT" description:"Max RPC requests per second" default:"25"`
	MetricsAddr  string        `long:"metrics-addr" env:"SYNC_METRICS_ADDR" description:"Prometheus metrics listen address" default:":2112"`
}

func main() {
	cfg := config{}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	// Optional env file, kept for parity with local node setups.
	if err := godotenv.Load("bitcoin_config.env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Warn("failed to load env file", zap.Error(err))
	}

	if _, err := flags.ParseArgs(&cfg, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		logger.Fatal("failed to parse flags", zap.Error(err))
	}

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("btc sync daemon failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	startMetricsServer(ctx, cfg.MetricsAddr, logger)

	store, err := postgres.NewRepository(ctx, cfg.PostgresDSN)
	if err != nil {
		return fmt.Errorf("init repository: %w", err)
	}
	defer store.Close()

	client := bitcoind.NewClient(cfg.RPCURL, cfg.RPCUser, cfg.RPCPassword, cfg.HTTPTimeout)
	node := repository.NewBitcoinNodeRepository(client, cfg.RPCRateLimit)

	svc, err := service.NewSyncService(node, store, cfg.Network, logger)
	if err != nil {
		return err
	}

	logger.Info("starting sync daemon",
		zap.String("network", cfg.Network),
		zap.Duration("interval", cfg.SyncInterval))

	ticker := time.NewTicker(cfg.SyncInterval)
	defer ticker.Stop()

	for {
		if err := svc.RunPass(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			// A failed pass is retried wholesale on the next tick.
			logger.Error("sync pass failed", zap.Error(err))
		}

		select {
		case <-ctx.Done():
			logger.Info("shutting down sync daemon")
			return nil
		case <-ticker.C:
		}
	}
}

func startMetricsServer(ctx context.Context, addr string, logger *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("starting metrics server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", zap.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shutdown metrics server", zap.Error(err))
		}
	}()
}

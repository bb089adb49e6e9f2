package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"portfolioquotes/internal/api"
	"portfolioquotes/internal/app"
	"portfolioquotes/internal/config"
	"portfolioquotes/internal/logging"
)

func main() {
	// Config
	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatalf("logging: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	a, err := app.New(ctx, cfg, logger, reg)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			logger.Warn("closing stores", zap.Error(err))
		}
	}()

	timeout := time.Duration(cfg.Server.RequestTimeoutSec) * time.Second
	batchDelay := cfg.AlphaVantage.BatchDelay()
	if !cfg.AlphaVantage.Live() {
		batchDelay = 0
	}

	gin.SetMode(gin.ReleaseMode)
	router := api.NewRouter(logger.Named("http"), reg,
		api.NewQuoteHandler(a.Quotes, cfg.Server.MaxSymbols, timeout, batchDelay),
		api.NewPortfolioHandler(a.Portfolios, timeout, batchDelay),
	)

	// A full batch waits one delay per extra symbol; give writes room for it.
	// Portfolio refresh extends its own deadline per holding.
	writeTimeout := 2*timeout + time.Duration(cfg.Server.MaxSymbols)*batchDelay
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       60 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	// graceful shutdown
	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

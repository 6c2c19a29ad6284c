package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"macro-sim/internal/api"
	"macro-sim/internal/config"
	"macro-sim/internal/logging"
	"macro-sim/internal/production"
	"macro-sim/internal/runs"

	"github.com/gin-gonic/gin"
)

func main() {
	logger, err := logging.Setup(os.Getenv("LOG_LEVEL"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	// Get configuration from environment
	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}
	ttl := time.Hour
	if v := os.Getenv("RUN_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			logger.Error("invalid RUN_TTL", "value", v, "err", err)
			os.Exit(1)
		}
		ttl = d
	}
	var origins []string
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
	}

	// Symbolic backend follows the optional config file
	cfg, err := config.Load(os.Getenv("MACROSIM_CONFIG"))
	if err != nil {
		logger.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	store := runs.NewStore(ttl, ttl/4)
	defer store.Close()

	ev := production.NewEvaluator(cfg.Algebra())
	ev.Logger = logger

	router := api.NewRouter(api.Deps{
		Store:       store,
		Evaluator:   ev,
		Logger:      logger,
		CORSOrigins: origins,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("shutdown", "err", err)
		}
	}()

	logger.Info("starting API server", "addr", srv.Addr, "run_ttl", ttl, "symbolic", cfg.Symbolic)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("failed to start server", "err", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}

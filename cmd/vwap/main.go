package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/mohamedkhairy/vwap-indicator/internal/config"
	"github.com/mohamedkhairy/vwap-indicator/internal/indicator"
	"github.com/mohamedkhairy/vwap-indicator/internal/models"
	indicatorpkg "github.com/mohamedkhairy/vwap-indicator/pkg/indicator"
	"github.com/mohamedkhairy/vwap-indicator/pkg/logger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	inputPath := flag.String("input", "-", "newline-delimited JSON bars (\"-\" reads stdin)")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.LogLevel, cfg.Environment); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	anchor, err := indicatorpkg.ParseAnchorMode(cfg.Indicator.Anchor)
	if err != nil {
		logger.Fatal("Invalid anchor mode", logger.ErrorField(err))
	}

	engine, err := indicator.NewEngine(indicator.EngineConfig{
		Periods:         cfg.Indicator.Periods,
		UseTypicalPrice: cfg.Indicator.UseTypicalPrice,
		MaxLen:          cfg.Indicator.MaxLen,
		BarMaxLen:       cfg.Indicator.BarMaxLen,
		Anchor:          anchor,
	})
	if err != nil {
		logger.Fatal("Failed to create indicator engine", logger.ErrorField(err))
	}

	logger.Info("Starting VWAP replay",
		logger.Ints("periods", cfg.Indicator.Periods),
		logger.Bool("use_typical_price", cfg.Indicator.UseTypicalPrice),
		logger.String("anchor", anchor.String()),
		logger.String("input", *inputPath),
	)

	// Write one JSON line per update
	encoder := json.NewEncoder(os.Stdout)
	engine.SetOnIndicatorsUpdated(func(update models.IndicatorUpdate) {
		if err := encoder.Encode(update); err != nil {
			logger.Error("Failed to write indicators",
				logger.String("symbol", update.Symbol),
				logger.ErrorField(err),
			)
		}
	})

	input, closeInput, err := openInput(*inputPath)
	if err != nil {
		logger.Fatal("Failed to open input", logger.ErrorField(err))
	}
	defer closeInput()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var replaying atomic.Bool
	replaying.Store(true)

	// Setup health and metrics server
	var wg sync.WaitGroup
	var healthServer *http.Server
	if cfg.Indicator.HealthCheckPort > 0 {
		healthServer = &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Indicator.HealthCheckPort),
			Handler:      setupHealthAndMetricsServer(engine, &replaying),
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  120 * time.Second,
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			logger.Info("Starting health and metrics server",
				logger.Int("port", cfg.Indicator.HealthCheckPort),
			)
			if err := healthServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("Health and metrics server failed",
					logger.ErrorField(err),
				)
			}
		}()
	}

	stats, err := indicator.Replay(ctx, input, engine)
	replaying.Store(false)
	if err != nil {
		logger.Error("Replay stopped", logger.ErrorField(err))
	}

	logger.Info("VWAP replay finished",
		logger.Int("lines", stats.Lines),
		logger.Int("processed", stats.Processed),
		logger.Int("rejected", stats.Rejected),
		logger.Int("symbols", engine.GetSymbolCount()),
	)

	if healthServer != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := healthServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("Health server shutdown failed", logger.ErrorField(err))
		}
	}

	// Wait for all goroutines to finish
	wg.Wait()
}

func openInput(path string) (io.Reader, func(), error) {
	if path == "" || path == "-" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { _ = f.Close() }, nil
}

// setupHealthAndMetricsServer sets up HTTP endpoints for health checks and metrics
func setupHealthAndMetricsServer(engine *indicator.Engine, replaying *atomic.Bool) *mux.Router {
	router := mux.NewRouter()

	// Health check endpoint
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		healthStatus := map[string]interface{}{
			"status":    "UP",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"checks": map[string]interface{}{
				"engine": map[string]interface{}{
					"status":       "ok",
					"replaying":    replaying.Load(),
					"symbol_count": engine.GetSymbolCount(),
				},
			},
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(healthStatus)
	}).Methods("GET")

	// Liveness probe
	router.HandleFunc("/live", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("LIVE"))
	}).Methods("GET")

	// Metrics endpoint
	router.Handle("/metrics", promhttp.Handler())

	return router
}

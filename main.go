package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"homeprice/config"
	qhttp "homeprice/http"
	"homeprice/logging"
	"homeprice/ml"
	"homeprice/monitoring"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	// 1. Load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	// 2. Load model artifacts
	store, err := ml.LoadArtifacts(cfg.Artifacts.ModelType, cfg.Artifacts.ModelPath, cfg.Artifacts.ColumnsPath)
	if err != nil {
		logger.Fatal("failed to load artifacts",
			zap.String("model_path", cfg.Artifacts.ModelPath),
			zap.String("columns_path", cfg.Artifacts.ColumnsPath),
			zap.Error(err),
		)
	}
	logger.Info("artifacts loaded",
		zap.String("model_type", cfg.Artifacts.ModelType),
		zap.Int("locations", store.LocationCount()),
		zap.Int("feature_width", store.FeatureWidth()),
	)
	if want := ml.NumericColumns + store.LocationCount(); want != store.FeatureWidth() {
		logger.Warn("columns document does not match model width",
			zap.Int("columns", want),
			zap.Int("feature_width", store.FeatureWidth()),
		)
	}

	metrics := monitoring.NewMetrics()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if cfg.Artifacts.Watch {
		paths := []string{cfg.Artifacts.ModelPath, cfg.Artifacts.ColumnsPath}
		err := ml.WatchArtifacts(ctx, paths, func(path string, op fsnotify.Op) {
			metrics.ObserveArtifactChange(path)
			logger.Warn("artifact changed on disk, restart to serve it",
				zap.String("path", path),
				zap.String("op", op.String()),
			)
		})
		if err != nil {
			logger.Warn("artifact watch disabled", zap.Error(err))
		}
	}

	// 3. Start HTTP server
	server := qhttp.NewServer(qhttp.ServerConfig{
		Port:            cfg.HTTP.Port,
		Timeout:         cfg.HTTP.Timeout,
		ClientDir:       cfg.Client.Dir,
		StrictLocations: cfg.Predict.StrictLocations,
	}, qhttp.Dependencies{
		Store:   store,
		Logger:  logger,
		Metrics: metrics,
	})
	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// 4. Handle graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	if err := server.Stop(); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}

	logger.Info("exiting")
}

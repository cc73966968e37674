package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Brownie44l1/leaf-disease-api/internal/config"
	"github.com/Brownie44l1/leaf-disease-api/internal/handlers"
	"github.com/Brownie44l1/leaf-disease-api/internal/logger"
	"github.com/Brownie44l1/leaf-disease-api/internal/model"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()

	appLog, err := logger.New(cfg.LogDirectory)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLog.Close()

	gin.SetMode(cfg.GinMode)

	appLog.Info("Loading models from: %s", cfg.ModelsDir)
	registry := model.LoadRegistry(cfg.ModelsDir, cfg.OnnxLibPath, appLog)
	defer registry.Close()

	for _, s := range registry.List() {
		if s.Loaded {
			appLog.Info("  %-12s loaded", s.Name)
		} else {
			appLog.Warning("  %-12s not loaded", s.Name)
		}
	}

	router := handlers.SetupRouter(registry, cfg, appLog)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: router,
	}

	go func() {
		appLog.Info("Server starting on port %d", cfg.Port)
		appLog.Info("Endpoints:")
		appLog.Info("  GET  /        - Service metadata")
		appLog.Info("  GET  /health  - Health check")
		appLog.Info("  GET  /models  - Model status")
		appLog.Info("  POST /predict - Predict from image upload (file, model_name)")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLog.Error("Server failed: %v", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		appLog.Error("Forced shutdown: %v", err)
	}
}

package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"asset-registry-api/internal/config"
	"asset-registry-api/internal/handler"
	"asset-registry-api/internal/logger"
	"asset-registry-api/internal/router"
	"asset-registry-api/internal/service"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// A missing .env file is fine; the environment may already be set.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	startCtx, cancelStart := context.WithTimeout(context.Background(), cfg.Database.ConnectTimeout)
	stores, err := openStores(startCtx, cfg, zlog)
	cancelStart()
	if err != nil {
		zlog.Fatal("Failed to initialize storage", zap.String("driver", cfg.Database.Driver), zap.Error(err))
	}
	defer stores.Close()

	employees := handler.NewRecordHandler(service.NewEmployeeService(stores.Employees, zlog), zlog)
	systems := handler.NewRecordHandler(service.NewSystemService(stores.Systems, zlog), zlog)
	employees.MaxBodyBytes = cfg.Server.MaxBodyBytes
	systems.MaxBodyBytes = cfg.Server.MaxBodyBytes

	health := handler.NewHealthHandler(stores.Ping, cfg.Database.Driver, zlog)

	r := router.NewRouter(router.Handlers{
		Employees: employees,
		Systems:   systems,
		Health:    health,
	}, cfg, zlog)

	server := &http.Server{
		Addr:           fmt.Sprintf(":%d", cfg.Port),
		Handler:        r,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	// Channel to listen for interrupt signal to gracefully shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		zlog.Info("Starting server",
			zap.Int("port", cfg.Port),
			zap.String("driver", cfg.Database.Driver),
			zap.Int("rate_limit_rps", cfg.Security.RateLimitRPS),
			zap.Int("rate_limit_burst", cfg.Security.RateLimitBurst),
			zap.Bool("cors", cfg.Security.EnableCORS),
			zap.Duration("request_timeout", cfg.Security.RequestTimeout),
		)

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zlog.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	<-done
	zlog.Info("Server is shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Security.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		zlog.Error("Server forced to shutdown", zap.Error(err))
	} else {
		zlog.Info("Server exited gracefully")
	}
}

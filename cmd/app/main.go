package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"waterdelivery/cmd"
	"waterdelivery/internal/adapters/out/postgres"
	"waterdelivery/internal/core/domain/model/kernel"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configs := getConfigs()
	logger := newLogger(configs.LogLevel)

	if err := kernel.SetNode(configs.SnowflakeNode); err != nil {
		log.Fatalf("Invalid SNOWFLAKE_NODE: %v", err)
	}

	gormDB, err := postgres.Open(postgres.Options{
		Driver:     configs.DBDriver,
		Host:       configs.DBHost,
		Port:       configs.DBPort,
		User:       configs.DBUser,
		Password:   configs.DBPassword,
		Name:       configs.DBName,
		SSLMode:    configs.DBSslMode,
		SQLitePath: configs.SQLitePath,
		Logger:     logger,
	})
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}

	app := cmd.NewCompositionRoot(configs, gormDB, logger)

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	e, err := app.CreateRouter()
	if err != nil {
		log.Fatalf("Failed to build router: %v", err)
	}
	startWebServer(e, configs.HTTPPort, logger)
}

func getConfigs() cmd.Config {
	// .env is optional; real deployments pass plain environment variables.
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	config := cmd.Config{
		HTTPPort:          envOr("HTTP_PORT", "8080"),
		DBDriver:          envOr("DB_DRIVER", postgres.DriverPostgres),
		DBHost:            os.Getenv("DB_HOST"),
		DBPort:            envOr("DB_PORT", "5432"),
		DBUser:            os.Getenv("DB_USER"),
		DBPassword:        os.Getenv("DB_PASSWORD"),
		DBName:            os.Getenv("DB_NAME"),
		DBSslMode:         envOr("DB_SSLMODE", "disable"),
		SQLitePath:        envOr("SQLITE_PATH", "waterdelivery.db"),
		ReconcileSchedule: os.Getenv("RECONCILE_SCHEDULE"),
		LogLevel:          envOr("LOG_LEVEL", "info"),
	}

	if raw := os.Getenv("SNOWFLAKE_NODE"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			log.Fatalf("SNOWFLAKE_NODE must be a number: %v", err)
		}
		config.SnowflakeNode = n
	}
	return config
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(logger)
	return logger
}

func startWebServer(e *echo.Echo, port string, logger *slog.Logger) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server stopped", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", "error", err)
	}
}

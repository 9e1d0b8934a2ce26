package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"paytrack/internal/amqp"
	"paytrack/internal/config"
	"paytrack/internal/core"
	apphttp "paytrack/internal/http"
	applog "paytrack/internal/log"
	"paytrack/internal/services"
	"paytrack/internal/storage"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	logger := applog.New(applog.DefaultConfig())
	applog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}
	anchor, err := cfg.Anchor()
	if err != nil {
		logger.Error("Invalid fortnight anchor", "error", err)
		os.Exit(1)
	}

	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to open database", "error", err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer repo.Close()

	// The AMQP publisher is optional. Without it shifts stay queued as
	// pending and the worker's periodic scan picks them up.
	var publisher services.ShiftPublisher
	if cfg.AMQPURL != "" {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("AMQP unavailable, shift sync will rely on periodic scans", "error", err)
		} else {
			defer client.Close()
			publisher = client
			logger.Info("Connected to AMQP broker", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
		}
	}

	holidays := holidayTable(cfg.HolidayRegion)

	goalSvc := services.NewGoalService(repo)
	srv := apphttp.NewServer(":"+cfg.Port,
		services.NewWorkplaceService(repo, repo),
		services.NewShiftService(repo, repo, holidays, publisher),
		services.NewExpenseService(repo),
		goalSvc,
		services.NewSummaryService(repo, repo, repo, goalSvc, anchor),
	)

	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
		cancel()
	}()

	logger.Info("Starting paytrack server",
		"port", cfg.Port, "db", cfg.SQLiteDBPath, "anchor", anchor.String(), "region", cfg.HolidayRegion)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}

func holidayTable(region string) core.HolidayTable {
	switch region {
	case "", "AU":
		return core.AustralianHolidays()
	default:
		// Unknown regions get an empty table rather than a wrong one;
		// every day then rates as weekday or weekend.
		return core.NewHolidayTable(region, nil)
	}
}

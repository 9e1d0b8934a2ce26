package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"paytrack/internal/amqp"
	"paytrack/internal/config"
	"paytrack/internal/export/google"
	applog "paytrack/internal/log"
	"paytrack/internal/storage"
	"paytrack/internal/worker"
)

// The worker drains shift sync messages from AMQP and also sweeps the
// pending backlog on a timer, so shifts reach the ledger even when a
// publish was lost.
func main() {
	_ = godotenv.Load()

	logger := applog.New(applog.DefaultConfig()).WithComponent(applog.ComponentWorker)
	applog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to open database", "error", err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer repo.Close()

	ledger, err := google.NewFromEnv(ctx)
	if err != nil {
		logger.Error("Failed to initialize spreadsheet ledger", "error", err)
		os.Exit(1)
	}

	w := worker.NewExportWorker(repo, ledger, cfg.ExportBatchSize)

	g, ctx := errgroup.WithContext(ctx)

	if cfg.AMQPURL != "" {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to connect to AMQP broker", "error", err)
			os.Exit(1)
		}
		defer client.Close()

		g.Go(func() error {
			return client.ConsumeShiftSync(ctx, func(msg *amqp.ShiftSyncMessage) error {
				return w.HandleSyncMessage(ctx, msg)
			})
		})
		logger.Info("Consuming shift sync messages", "queue", cfg.AMQPQueue)
	} else {
		logger.Info("No AMQP broker configured, running on periodic scans only")
	}

	g.Go(func() error {
		ticker := time.NewTicker(cfg.ExportInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
				n, err := w.ProcessPending(ctx)
				if err != nil {
					logger.Error("Pending scan failed", "error", err)
					continue
				}
				if n > 0 {
					logger.Info("Exported pending shifts", "count", n)
				}
			}
		}
	})

	logger.Info("Worker started",
		"db", cfg.SQLiteDBPath, "interval", cfg.ExportInterval.String(), "batch_size", cfg.ExportBatchSize)

	if err := g.Wait(); err != nil && err != context.Canceled {
		logger.Error("Worker stopped with error", "error", err)
		os.Exit(1)
	}
	logger.Info("Worker stopped gracefully")
}

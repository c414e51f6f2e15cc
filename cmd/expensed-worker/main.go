package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"expensed/internal/config"
	"expensed/internal/events"
	"expensed/internal/log"
)

// expensed-worker tails the expense event stream and logs each event.
// It exists as the consumption end of the exchange the API publishes
// to; downstream processing hangs off the handler.
func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := log.New(log.DefaultConfig()).WithComponent(log.ComponentWorker)
	log.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}
	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the worker")
		os.Exit(1)
	}

	client, err := events.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to connect to event stream", log.FieldError, err)
		os.Exit(1)
	}
	defer client.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("Starting expensed-worker", "queue", cfg.AMQPQueue)

	err = client.Consume(ctx, func(ev *events.ExpenseEvent) error {
		logger.InfoContext(ctx, "Expense event received",
			"type", ev.Type,
			log.FieldExpenseID, ev.ID,
			log.FieldAmount, ev.Amount,
			log.FieldCategory, ev.Category,
			"timestamp", ev.Timestamp)
		return nil
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Event consumption failed", log.FieldError, err)
		os.Exit(1)
	}

	logger.Info("Worker stopped gracefully")
}

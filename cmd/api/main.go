package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/cradoe/banking-api/internal/app"
	"github.com/cradoe/banking-api/internal/version"
	"github.com/cradoe/banking-api/internal/worker"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	err := run(logger)
	if err != nil {
		trace := string(debug.Stack())
		logger.Error(err.Error(), "trace", trace)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	showVersion := flag.Bool("version", false, "display version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("version: %s\n", version.Get())
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application, err := app.NewApplication(logger)
	if err != nil {
		return err
	}

	notifications := worker.New(&worker.Worker{
		KafkaStream: application.Kafka,
		Mailer:      application.Mailer,
		Helper:      application.Helper,
		Logger:      logger,
	})

	application.WG.Add(1)
	go func() {
		defer application.WG.Done()

		if err := notifications.NotificationWorker(ctx); err != nil {
			logger.Error("notification worker stopped", "error", err)
		}
	}()

	err = application.ServeHTTP(ctx)

	// the worker only returns once ctx is done, and Close waits for it
	stop()
	application.Close()

	return err
}

package main

import (
	"context"
	"errors"

	"presupuesto/internal/amqp"
	"presupuesto/internal/analytics"
	"presupuesto/internal/backend"
	"presupuesto/internal/cli"
	applog "presupuesto/internal/log"
	"presupuesto/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(applog.ComponentWorker)
	logger.Info("Starting export-worker")

	cfg := cli.MustLoadConfig(logger.Logger)
	if !cfg.QueueEnabled() {
		cli.Fatal(logger.Logger, "Export worker needs a broker", errors.New("AMQP_URL is not set"))
	}

	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		cli.Fatal(logger.Logger, "Invalid backend configuration", err)
	}

	writer, err := backend.NewExportWriter(context.Background(), backendCfg, logger.WithComponent(applog.ComponentSheets).Logger)
	if err != nil {
		cli.Fatal(logger.Logger, "Failed to initialize export writer", err)
	}

	res, err := backend.NewFactory(logger.WithComponent(applog.ComponentBackend).Logger).
		CreateBackend(context.Background(), backendCfg)
	if err != nil {
		cli.Fatal(logger.Logger, "Failed to initialize backend", err, "backend", cfg.DataBackend)
	}
	defer res.Cleanup()

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		cli.Fatal(logger.Logger, "Failed to initialize AMQP client", err)
	}
	defer amqpClient.Close()

	engine := analytics.NewEngine(res.Store,
		analytics.WithLogger(logger.WithComponent(applog.ComponentAnalytics).Logger))
	exportWorker := worker.NewExportWorker(engine, writer)

	ctx, done := cli.GracefulShutdown(logger.Logger, cfg.ShutdownTimeout, nil)

	logger.Info("Consuming export requests", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	if err := amqpClient.ConsumeExportRequests(ctx, exportWorker.HandleExportRequest); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Message consumption failed", "error", err)
	}

	<-done
	logger.Info("Export worker stopped")
}

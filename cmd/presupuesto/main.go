package main

import (
	"context"
	"errors"
	"net/http"

	"presupuesto/internal/amqp"
	"presupuesto/internal/analytics"
	"presupuesto/internal/backend"
	"presupuesto/internal/cli"
	apphttp "presupuesto/internal/http"
	applog "presupuesto/internal/log"
	"presupuesto/internal/services"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(applog.ComponentApp)
	cfg := cli.MustLoadConfig(logger.Logger)

	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		cli.Fatal(logger.Logger, "Invalid backend configuration", err)
	}
	res, err := backend.NewFactory(logger.WithComponent(applog.ComponentBackend).Logger).
		CreateBackend(context.Background(), backendCfg)
	if err != nil {
		cli.Fatal(logger.Logger, "Failed to initialize backend", err, "backend", cfg.DataBackend)
	}

	// Sheets exports are optional; without a broker the route answers 503.
	var (
		publisher  services.ExportPublisher
		amqpClient *amqp.Client
	)
	if cfg.QueueEnabled() {
		amqpClient, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			cli.Fatal(logger.Logger, "Failed to initialize AMQP client", err)
		}
		publisher = amqpClient
		logger.Info("AMQP export queue enabled", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	} else {
		logger.Info("AMQP_URL not set - sheets exports disabled")
	}

	engine := analytics.NewEngine(res.Store,
		analytics.WithLogger(logger.WithComponent(applog.ComponentAnalytics).Logger))

	srv := apphttp.NewServer(":"+cfg.Port, apphttp.Dependencies{
		Engine:  engine,
		Exports: services.NewExportService(publisher, nil),
		Store:   res.Store,
		Logger:  logger.WithComponent(applog.ComponentHTTP),
	}, apphttp.Options{
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
	})

	_, done := cli.GracefulShutdown(logger.Logger, cfg.ShutdownTimeout, func(ctx context.Context) error {
		err := srv.Shutdown(ctx)
		closeErr := cli.CloseAll(res.Cleanup, func() error {
			if amqpClient == nil {
				return nil
			}
			return amqpClient.Close()
		})
		return errors.Join(err, closeErr)
	})

	logger.Info("Starting presupuesto server",
		"port", cfg.Port,
		"backend", cfg.DataBackend,
		"rate_limit_per_minute", cfg.RateLimitPerMinute)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		cli.Fatal(logger.Logger, "Server error", err, "port", cfg.Port)
	}

	<-done
	logger.Info("Server stopped gracefully")
}

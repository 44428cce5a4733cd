package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/biztime-backend-go/internal/config"
	appHTTP "github.com/cmlabs-hris/biztime-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/biztime-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/biztime-backend-go/internal/pkg/events"
	"github.com/cmlabs-hris/biztime-backend-go/internal/pkg/sse"
	"github.com/cmlabs-hris/biztime-backend-go/internal/repository/postgresql"
	serviceCompany "github.com/cmlabs-hris/biztime-backend-go/internal/service/company"
	serviceInvoice "github.com/cmlabs-hris/biztime-backend-go/internal/service/invoice"
	"github.com/go-chi/httplog/v3"
	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"
)

const (
	appName         = "biztime"
	appVersion      = "v1.0.0"
	shutdownTimeout = 10 * time.Second
)

func main() {
	app := &cli.App{
		Name:    appName,
		Usage:   "companies and invoices HTTP API",
		Version: appVersion,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "env-file",
				Usage: "dotenv file to load before reading the environment (default .env when present)",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "YAML file with env-style keys, read below the process environment",
				EnvVars: []string{"CONFIG_FILE"},
			},
		},
		DefaultCommand: "serve",
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "start the HTTP server",
				Action: serve,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func serve(c *cli.Context) error {
	cfg, err := config.Load(config.Options{
		EnvFile:    c.String("env-file"),
		ConfigFile: c.String("config"),
	})
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	// Amounts go out as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Connect(ctx, cfg.DatabaseURL(), database.PoolOptions{
		MaxConns:       cfg.Database.MaxConns,
		MinConns:       cfg.Database.MinConns,
		ConnectTimeout: cfg.Database.ConnectTimeout,
	})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	hub := sse.NewHub()
	publisher := events.Publishers{hub}
	if len(cfg.Kafka.Brokers) > 0 {
		producer := events.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic, logger)
		defer producer.Close()
		publisher = append(publisher, producer)
		logger.Info("Publishing domain events", "brokers", cfg.Kafka.Brokers, "topic", cfg.Kafka.Topic)
	}

	companyRepo := postgresql.NewCompanyRepository(db)
	invoiceRepo := postgresql.NewInvoiceRepository(db)

	companyService := serviceCompany.NewCompanyService(companyRepo, invoiceRepo, publisher)
	invoiceService := serviceInvoice.NewInvoiceService(invoiceRepo, companyRepo, publisher)

	router := appHTTP.NewRouter(
		appHTTP.RouterOptions{
			Logger:         logger,
			AllowedOrigins: cfg.App.AllowedOrigins,
			LogLevel:       cfg.SlogLevel(),
		},
		appHTTP.NewCompanyHandler(companyService),
		appHTTP.NewInvoiceHandler(invoiceService),
		appHTTP.NewEventStreamHandler(hub),
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	server.RegisterOnShutdown(hub.Close)

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Server running", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	return nil
}

func newLogger(cfg *config.Config) *slog.Logger {
	logFormat := httplog.SchemaECS.Concise(cfg.App.Env != "production")
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.SlogLevel(),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", appName),
		slog.String("version", appVersion),
		slog.String("env", cfg.App.Env),
	)
}

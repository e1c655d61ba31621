package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/piresc/lume/internal/pkg/config"
	"github.com/piresc/lume/internal/pkg/database"
	"github.com/piresc/lume/internal/pkg/health"
	"github.com/piresc/lume/internal/pkg/logger"
	"github.com/piresc/lume/internal/pkg/middleware"
	"github.com/piresc/lume/internal/pkg/models"
	"github.com/piresc/lume/internal/pkg/nats"
	nrpkg "github.com/piresc/lume/internal/pkg/newrelic"
	"github.com/piresc/lume/services/payments"
	"github.com/piresc/lume/services/payments/gateway"
	"github.com/piresc/lume/services/payments/handler"
	"github.com/piresc/lume/services/payments/repository"
	"github.com/piresc/lume/services/payments/usecase"
)

// store bundles the selected payment repository with what must be checked and closed
type store struct {
	repo    payments.PaymentRepo
	checker health.HealthChecker
	close   func() error
}

func main() {
	appName := "lume-payments"
	configPath := "config/payments.env"
	configs := config.InitConfig(configPath)

	if err := config.Validate(configs); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Initialize New Relic and Zap logger
	nrApp := nrpkg.InitNewRelic(configs)

	zapLogger, err := logger.InitZapLoggerFromConfig(configs, nrApp)
	if err != nil {
		log.Fatalf("Failed to create Zap logger: %v", err)
	}
	defer zapLogger.Close()

	logger.SetGlobalLogger(zapLogger)

	logger.Info("Starting application",
		logger.String("app", appName),
		logger.String("version", configs.App.Version),
		logger.String("environment", configs.App.Environment),
		logger.String("store", configs.Store.Driver),
		logger.Duration("ledger_timeout", time.Duration(configs.Ledger.Timeout)*time.Second),
	)

	paymentStore, err := openStore(configs)
	if err != nil {
		logger.Fatal("Failed to initialize payment store", logger.Err(err))
	}

	// NATS is optional; events are dropped when it is not configured
	var natsClient *nats.Client
	if configs.NATS.URL != "" {
		natsClient, err = nats.NewClient(configs.NATS.URL, appName)
		if err != nil {
			logger.Fatal("Failed to connect to NATS", logger.Err(err))
		}
		logger.Info("NATS client initialized",
			logger.String("url", configs.NATS.URL),
			logger.Bool("connected", natsClient.IsConnected()))
	}

	// Initialize gateways
	ledgerGW := gateway.NewLedgerGateway(configs.Ledger, gateway.NewLedgerBreaker(zapLogger))
	eventGW := gateway.NewEventGW(natsClient)

	// Initialize usecase
	paymentUC, err := usecase.NewPaymentUC(configs, paymentStore.repo, ledgerGW, eventGW)
	if err != nil {
		logger.Fatal("Failed to initialize payment use case", logger.Err(err))
	}

	paymentHandler := handler.NewHandler(paymentUC)

	e := echo.New()
	e.HideBanner = true
	e.Server.ReadTimeout = time.Duration(configs.Server.ReadTimeout) * time.Second
	e.Server.WriteTimeout = time.Duration(configs.Server.WriteTimeout) * time.Second

	// Panic recovery must be first
	e.Use(middleware.PanicRecoveryWithZapMiddleware(zapLogger))
	e.Use(middleware.RequestID())
	e.Use(nrpkg.Middleware(nrApp))
	e.Use(logger.ZapEchoMiddleware(zapLogger))
	e.Use(middleware.CORS(configs.CORS))

	healthService := health.NewHealthService(zapLogger)
	healthService.AddChecker("ledger", health.NewLedgerHealthChecker(ledgerGW))
	if paymentStore.checker != nil {
		healthService.AddChecker(configs.Store.Driver, paymentStore.checker)
	}
	if natsClient != nil {
		healthService.AddChecker("nats", health.NewNATSHealthChecker(natsClient))
	}

	health.RegisterEnhancedHealthEndpoints(e, appName, configs.App.Version, healthService)
	health.RegisterAPIHealthEndpoint(e, configs.App.Name, configs.App.Version)

	paymentHandler.RegisterRoutes(e)

	go func() {
		addr := fmt.Sprintf("%s:%d", configs.Server.Host, configs.Server.Port)
		zapLogger.Info("Starting HTTP server",
			logger.String("address", addr),
			logger.String("app", appName))

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", logger.Err(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	sig := <-quit
	zapLogger.Info("Received shutdown signal", logger.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(configs.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	zapLogger.Info("Shutting down HTTP server...")
	if err := e.Shutdown(ctx); err != nil {
		zapLogger.Error("Server forced to shutdown", logger.Err(err))
	}

	if paymentStore.close != nil {
		zapLogger.Info("Closing payment store...")
		if err := paymentStore.close(); err != nil {
			zapLogger.Error("Error closing payment store", logger.Err(err))
		}
	}

	if natsClient != nil {
		zapLogger.Info("Closing NATS connection...")
		natsClient.Close()
	}

	if nrApp != nil {
		zapLogger.Info("Shutting down New Relic...")
		nrApp.Shutdown(10 * time.Second)
	}

	zapLogger.Info("Server exiting gracefully")
	_ = zapLogger.Sync()
}

func openStore(configs *models.Config) (*store, error) {
	switch configs.Store.Driver {
	case "redis":
		redisClient, err := database.NewRedisClient(configs.Redis)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		return &store{
			repo:    repository.NewRedisRepository(redisClient),
			checker: health.NewRedisHealthChecker(redisClient),
			close:   redisClient.Close,
		}, nil

	case "postgres":
		postgresClient, err := database.NewPostgresClient(configs.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := postgresClient.EnsureSchema(ctx); err != nil {
			postgresClient.Close()
			return nil, fmt.Errorf("failed to prepare schema: %w", err)
		}

		return &store{
			repo:    repository.NewPostgresRepository(postgresClient.GetDB()),
			checker: health.NewPostgresHealthChecker(postgresClient),
			close:   postgresClient.Close,
		}, nil

	default:
		logger.Warn("Using in-memory payment store; records are lost on restart")
		return &store{repo: repository.NewMemoryRepository()}, nil
	}
}

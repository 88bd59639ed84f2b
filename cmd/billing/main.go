package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/thqlabel/thqlabel/internal/pkg/config"
	"github.com/thqlabel/thqlabel/internal/pkg/database"
	"github.com/thqlabel/thqlabel/internal/pkg/health"
	httpclient "github.com/thqlabel/thqlabel/internal/pkg/http"
	"github.com/thqlabel/thqlabel/internal/pkg/logger"
	"github.com/thqlabel/thqlabel/internal/pkg/middleware"
	natspkg "github.com/thqlabel/thqlabel/internal/pkg/nats"
	nrpkg "github.com/thqlabel/thqlabel/internal/pkg/newrelic"
	nsqpkg "github.com/thqlabel/thqlabel/internal/pkg/nsq"
	"github.com/thqlabel/thqlabel/internal/pkg/server"
	wspkg "github.com/thqlabel/thqlabel/internal/pkg/websocket"
	"github.com/thqlabel/thqlabel/services/billing"
	"github.com/thqlabel/thqlabel/services/billing/gateway"
	"github.com/thqlabel/thqlabel/services/billing/gateway/provider"
	"github.com/thqlabel/thqlabel/services/billing/handler"
	httpHandler "github.com/thqlabel/thqlabel/services/billing/handler/http"
	wsHandler "github.com/thqlabel/thqlabel/services/billing/handler/websocket"
	"github.com/thqlabel/thqlabel/services/billing/repository"
	"github.com/thqlabel/thqlabel/services/billing/usecase"
	"go.uber.org/zap"
)

func main() {
	appName := "billing-service"
	configPath := config.GetEnv("CONFIG_PATH", "configs/billing.env")
	configs := config.InitConfig(configPath)

	// Initialize New Relic and Zap logger
	nrApp := nrpkg.InitNewRelic(configs)
	if nrApp != nil {
		if err := nrApp.WaitForConnection(10 * time.Second); err != nil {
			log.Printf("Warning: New Relic connection timeout: %v", err)
		} else {
			log.Println("New Relic connection established")
		}
	}

	zapLogger, err := logger.InitZapLoggerFromConfig(configs, nrApp)
	if err != nil {
		log.Fatalf("Failed to create Zap logger: %v", err)
	}
	defer zapLogger.Close()
	logger.SetGlobalLogger(zapLogger)

	zapLogger.Info("Starting application",
		zap.String("app", appName),
		zap.String("version", configs.App.Version),
		zap.String("environment", configs.App.Environment),
	)

	auditLogger, err := logger.InitAuditLoggerFromConfig(configs.Audit)
	if err != nil {
		zapLogger.Fatal("Failed to open audit log", zap.Error(err))
	}
	defer auditLogger.Close()

	// Initialize PostgreSQL database connection
	postgresClient, err := database.NewPostgresClient(configs.Database)
	if err != nil {
		zapLogger.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	if configs.Database.AutoMigrate {
		if err := postgresClient.Migrate(); err != nil {
			zapLogger.Fatal("Failed to migrate database", zap.Error(err))
		}
	}

	// Initialize Redis client
	redisClient, err := database.NewRedisClient(configs.Redis)
	if err != nil {
		zapLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}

	// Initialize NATS
	natsClient, err := natspkg.NewClient(configs.NATS.URL, appName)
	if err != nil {
		zapLogger.Fatal("Failed to connect to NATS", zap.Error(err))
	}

	// Initialize NSQ producer for notifications
	nsqProducer, err := nsqpkg.NewProducer(configs.NSQ.Address)
	if err != nil {
		zapLogger.Fatal("Failed to connect to NSQ", zap.Error(err))
	}

	// Initialize payment providers
	providerClient := httpclient.NewEnhancedClient(zapLogger, configs.Providers.Timeout)
	providers := []billing.PaymentProvider{
		provider.NewYooKassa(configs.Providers.YooKassa, providerClient, configs.Billing.PublicURL),
		provider.NewStripe(configs.Providers.Stripe, &http.Client{Timeout: configs.Providers.Timeout}, zapLogger, configs.Billing.PublicURL),
		provider.NewCryptoCloud(configs.Providers.CryptoCloud, providerClient),
		provider.NewLiqPay(configs.Providers.LiqPay, configs.Billing.PublicURL),
	}

	// Initialize repository
	billingRepo := repository.NewBillingRepository(configs, postgresClient.GetDB(), redisClient)

	// Initialize Gateway
	billingGW := gateway.NewBillingGW(natsClient, nsqProducer, configs.NSQ)

	// Initialize UseCase
	billingUC, err := usecase.NewBillingUC(configs, billingRepo, billingGW, auditLogger, providers...)
	if err != nil {
		zapLogger.Fatal("Failed to initialize billing use case", zap.Error(err))
	}

	// Handlers for HTTP
	paymentHandler := httpHandler.NewPaymentHandler(billingUC)
	balanceHandler := httpHandler.NewBalanceHandler(billingUC)
	adminHandler := httpHandler.NewAdminHandler(billingUC)

	// Handlers for WebSocket
	manager := wspkg.NewManager()
	feedHandler := wsHandler.NewFeedHandler(billingUC, manager)

	// Initialize handlers
	Handler := handler.NewHandler(paymentHandler, balanceHandler, adminHandler, feedHandler, billingUC, redisClient.GetClient(), configs)

	// Initialize Echo router
	e := echo.New()
	e.HideBanner = true

	// Add middlewares
	e.Use(echomw.RequestID())
	e.Use(middleware.RequestContextMiddleware())
	e.Use(nrpkg.Middleware(nrApp))
	e.Use(logger.ZapEchoMiddleware(zapLogger))
	e.Use(middleware.PanicRecoveryWithZapMiddleware(zapLogger))

	// Register health endpoints
	health.RegisterHealthEndpoints(e, appName, configs.App.Version, map[string]health.Checker{
		"postgres": postgresClient,
		"redis":    redisClient,
		"nats":     health.CheckerFunc(func(context.Context) error { return natsClient.Ping() }),
		"nsq":      health.CheckerFunc(func(context.Context) error { return nsqProducer.Ping() }),
	})

	// Register service routes
	Handler.RegisterRoutes(e)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if configs.Billing.SweepEnabled {
		sweeper := handler.NewSweeper(billingUC, configs.Billing.SweepInterval)
		go sweeper.Run(ctx)
	}

	shutdownManager := server.NewShutdownManager(zapLogger)
	shutdownManager.Register("postgres", func(context.Context) error { return postgresClient.Close() })
	shutdownManager.Register("redis", func(context.Context) error { return redisClient.Close() })
	shutdownManager.Register("nats", func(context.Context) error {
		natsClient.Close()
		return nil
	})
	shutdownManager.Register("nsq", func(context.Context) error {
		nsqProducer.Stop()
		return nil
	})
	shutdownManager.Register("websocket", func(context.Context) error {
		manager.CloseAll()
		return nil
	})
	shutdownManager.Register("sweeper", func(context.Context) error {
		cancel()
		return nil
	})

	// Start server
	srv := server.NewGracefulServer(e, zapLogger, configs.Server)
	if err := srv.Start(ctx); err != nil {
		zapLogger.Error("Server stopped with error", zap.String("app", appName), zap.Error(err))
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := shutdownManager.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("Shutdown finished with errors", zap.Error(err))
	}
}

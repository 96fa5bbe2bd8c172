package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	httptransport "github.com/serviceconnect/api/internal/api/http"
	"github.com/serviceconnect/api/internal/api/http/handlers"
	"github.com/serviceconnect/api/internal/auth"
	"github.com/serviceconnect/api/internal/config"
	"github.com/serviceconnect/api/internal/events"
	"github.com/serviceconnect/api/internal/observability"
	"github.com/serviceconnect/api/internal/persistence"
	"github.com/serviceconnect/api/internal/ratelimit"
	"github.com/serviceconnect/api/internal/repository"
	"github.com/serviceconnect/api/internal/service"
	"github.com/serviceconnect/api/internal/worker"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := observability.NewMetrics(registry)

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()
	pool := pg.PoolHandle()
	if pool == nil {
		logger.Fatal("a database is required; set POSTGRES_DSN")
	}

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pool, cfg.Postgres.MigrationsDir, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()

	var limiter ratelimit.Limiter
	if redis.Enabled() {
		limiter = ratelimit.NewRedisLimiter(redis.Client, cfg.RateLimit.AuthPerMinute, time.Minute)
	} else {
		limiter = ratelimit.NewLocalLimiter(cfg.RateLimit.AuthPerMinute, time.Minute)
	}

	accountRepo := repository.NewAccountRepository(pool)
	resetRepo := repository.NewPasswordResetRepository(pool)
	profileRepo := repository.NewProfileRepository(pool)
	providerRepo := repository.NewProviderRepository(pool)
	projectRepo := repository.NewProjectRepository(pool)
	messageRepo := repository.NewMessageRepository(pool)
	notificationRepo := repository.NewNotificationRepository(pool)
	categoryRepo := repository.NewCategoryRepository(pool)
	certificationRepo := repository.NewCertificationRepository(pool)

	dispatcher := events.NewInMemoryDispatcher(logger)

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		AccountRepo:       accountRepo,
		PasswordResetRepo: resetRepo,
	})
	accountService := service.NewAccountService(service.AccountDependencies{
		Auth:         authService,
		ProfileRepo:  profileRepo,
		ProviderRepo: providerRepo,
		Logger:       logger,
		Metrics:      metrics,
	})
	providerService := service.NewProviderService(service.ProviderDependencies{
		ProviderRepo:      providerRepo,
		CategoryRepo:      categoryRepo,
		CertificationRepo: certificationRepo,
	})
	projectService := service.NewProjectService(service.ProjectDependencies{
		ProjectRepo:  projectRepo,
		CategoryRepo: categoryRepo,
		Dispatcher:   dispatcher,
		Logger:       logger,
	})
	messageService := service.NewMessageService(service.MessageDependencies{
		MessageRepo: messageRepo,
		ProfileRepo: profileRepo,
		ProjectRepo: projectRepo,
		Dispatcher:  dispatcher,
	})
	notificationService := service.NewNotificationService(service.NotificationDependencies{
		NotificationRepo: notificationRepo,
		ProviderRepo:     providerRepo,
		Dispatcher:       dispatcher,
		Logger:           logger,
		Metrics:          metrics,
		Config:           cfg.Notification,
	})
	worker.StartNotificationWorker(notificationService, logger)

	accessPolicy := auth.NewAccessPolicy(authService.TokenManager(), auth.DefaultPolicy(), logger, metrics)

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: true,
		ErrorHandler:          httptransport.ErrorHandler(logger, metrics),
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	checks := map[string]handlers.Pinger{"postgres": pg}
	if redis.Enabled() {
		checks["redis"] = redis
	}

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, checks),
		Auth:           handlers.NewAuthHandler(accountService, authService, logger),
		Users:          handlers.NewUsersHandler(accountService),
		Categories:     handlers.NewCategoriesHandler(service.NewCategoryService(categoryRepo)),
		Providers:      handlers.NewProvidersHandler(providerService),
		Projects:       handlers.NewProjectsHandler(projectService),
		Messages:       handlers.NewMessagesHandler(messageService),
		Notifications:  handlers.NewNotificationsHandler(notificationService),
		Certifications: handlers.NewCertificationsHandler(service.NewCertificationService(certificationRepo, providerRepo)),
		AccessPolicy:   accessPolicy,
		AuthRateLimit:  ratelimit.Middleware(limiter, logger, metrics),
		Metrics:        metrics.Handler(),
	})

	go func() {
		logger.Info("http server listening", zap.String("addr", cfg.App.Addr()))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}

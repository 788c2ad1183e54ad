package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/epwerk/field-service/internal/api/http"
	"github.com/epwerk/field-service/internal/api/http/handlers"
	"github.com/epwerk/field-service/internal/auth"
	"github.com/epwerk/field-service/internal/config"
	"github.com/epwerk/field-service/internal/events"
	"github.com/epwerk/field-service/internal/observability"
	"github.com/epwerk/field-service/internal/persistence"
	"github.com/epwerk/field-service/internal/repository"
	"github.com/epwerk/field-service/internal/service"
	"github.com/epwerk/field-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.Handle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.Handle()
	stores := repository.NewStores(pool)
	uow := repository.NewUnitOfWork(pool)
	userRepo := repository.NewUserRepository(pool)
	taskRepo := repository.NewTaskRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	metrics := observability.NewMetrics()

	notificationService := service.NewNotificationService(dispatcher, redis, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	authService := service.NewAuthService(*cfg, userRepo)
	authMiddleware := auth.NewMiddleware(authService.TokenManager(), userRepo)

	ticketService := service.NewTicketService(stores.Tickets, dispatcher)
	conversionService := service.NewConversionService(uow, dispatcher, metrics, logger)
	projectService := service.NewProjectService(service.ProjectDependencies{
		ProjectRepo:  stores.Projects,
		StageRepo:    stores.Stages,
		SequenceRepo: stores.Sequences,
		Dispatcher:   dispatcher,
	})
	customerService := service.NewCustomerService(stores.Customers)
	categoryService := service.NewCategoryService(stores.Categories)
	taskService := service.NewTaskService(taskRepo, stores.Projects)
	userService := service.NewUserService(userRepo)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout(), cfg.App.CORSOrigins)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(pg, redis),
		Users:          handlers.NewUsersHandler(authService, userService),
		Tickets:        handlers.NewTicketsHandler(ticketService, conversionService),
		Projects:       handlers.NewProjectsHandler(projectService),
		Customers:      handlers.NewCustomersHandler(customerService),
		Categories:     handlers.NewCategoriesHandler(categoryService),
		Tasks:          handlers.NewTasksHandler(taskService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}

package app

import (
	"errors"
	"fmt"

	"shopapi/internal/config"
	"shopapi/internal/database"
	"shopapi/internal/handlers"
	"shopapi/internal/middleware"
	"shopapi/internal/repositories"
	"shopapi/internal/services"
	"shopapi/pkg/rabbitmq"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// App is a fully wired Product API.
type App struct {
	Fiber       *fiber.App
	AuthService *services.AuthService // nil with the memory driver
	cfg         *config.Config
	logger      zerolog.Logger
	closers     []func() error
}

// New builds storage, messaging, services and routes from cfg.
func New(cfg *config.Config, log zerolog.Logger) (*App, error) {
	a := &App{cfg: cfg, logger: log}

	// --- Storage ---
	var (
		db          *gorm.DB
		productRepo repositories.ProductRepository
		pingDB      func() error
	)
	if cfg.Database.Driver == config.DriverMemory {
		productRepo = repositories.NewMemoryProductRepository()
	} else {
		var err error
		db, err = database.Open(cfg.Database, cfg.Logger.Level)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func() error { return database.Close(db) })
		productRepo = repositories.NewGORMProductRepository(db)
		pingDB = func() error { return database.Ping(db) }
	}

	// --- Messaging ---
	var publisher services.EventPublisher
	if cfg.RabbitMQ.Enabled {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQ.URL, Queue: cfg.RabbitMQ.Queue})
		if err != nil {
			a.Close()
			return nil, err
		}
		a.closers = append(a.closers, mqClient.Close)
		publisher = eventPublisher{client: mqClient}

		if err := mqClient.Consume(auditProductEvent(log)); err != nil {
			a.Close()
			return nil, err
		}
		log.Info().Str("queue", mqClient.Queue()).Msg("consuming product events")
	}

	// --- Services & handlers ---
	productService := services.NewProductService(productRepo, publisher, log)
	productHandler := handlers.NewProductHandler(productService, log, cfg.ExposeErrorDetails)
	healthHandler := handlers.NewHealthHandler(pingDB, cfg.RabbitMQ.Enabled)

	a.Fiber = fiber.New(fiber.Config{
		AppName:               "shopapi",
		BodyLimit:             cfg.BodyLimit,
		Views:                 handlers.NewViewEngine(),
		DisableStartupMessage: true,
	})
	a.Fiber.Use(recover.New())
	a.Fiber.Use(requestid.New())
	a.Fiber.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} ${latency} ${method} ${path}\n",
		Output: log,
	}))

	healthHandler.RegisterRoutes(a.Fiber)

	var guards []fiber.Handler
	if db != nil {
		a.AuthService = services.NewAuthService(repositories.NewGORMUserRepository(db), cfg.Auth.JWTSecret)
		handlers.NewAuthHandler(a.AuthService, log, cfg.ExposeErrorDetails).RegisterRoutes(a.Fiber)
		if cfg.Auth.Enabled {
			guards = append(guards, middleware.AuthRequired(a.AuthService, log))
		}
	}
	productHandler.RegisterRoutes(a.Fiber, guards...)

	return a, nil
}

// Listen serves HTTP on the configured port until Shutdown is called.
func (a *App) Listen() error {
	a.logger.Info().Str("addr", a.cfg.AppPort).Msg("starting server")
	return a.Fiber.Listen(a.cfg.AppPort)
}

// Shutdown stops the HTTP server and releases storage and messaging.
func (a *App) Shutdown() error {
	var errs []error
	if a.Fiber != nil {
		if err := a.Fiber.Shutdown(); err != nil {
			errs = append(errs, fmt.Errorf("fiber shutdown: %w", err))
		}
	}
	if err := a.Close(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Close releases storage and messaging in reverse order of acquisition.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

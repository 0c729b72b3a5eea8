package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/inventario-tiendas/internal/application/auth"
	"github.com/jhoicas/inventario-tiendas/internal/application/inventory"
	"github.com/jhoicas/inventario-tiendas/internal/application/usecase"
	"github.com/jhoicas/inventario-tiendas/internal/infrastructure/alerts"
	infrapdf "github.com/jhoicas/inventario-tiendas/internal/infrastructure/pdf"
	"github.com/jhoicas/inventario-tiendas/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/inventario-tiendas/internal/interfaces/http"
	"github.com/jhoicas/inventario-tiendas/pkg/config"
	"github.com/jhoicas/inventario-tiendas/pkg/logger"
)

// devJWTSecret solo se usa en development cuando JWT_SECRET no está definido.
const devJWTSecret = "dev-only-secret-change-me"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("db_driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Warn().Msg("JWT_SECRET vacío: usando secreto de desarrollo")
		cfg.JWT.Secret = devJWTSecret
	}

	ctx := context.Background()
	backend, err := storage.Open(ctx, cfg.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión al almacén")
	}
	defer backend.Close()

	// Alertas de stock bajo: siempre al log; a Redis si está configurado
	publishers := []inventory.AlertPublisher{alerts.NewLogPublisher(log)}
	if cfg.Redis.Enabled() {
		redisClient, err := alerts.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis no disponible, alertas solo al log")
		} else {
			defer func() {
				if err := redisClient.Close(); err != nil {
					log.Warn().Err(err).Msg("cerrar redis")
				}
			}()
			publishers = append(publishers, alerts.NewRedisPublisher(redisClient, cfg.Redis.AlertChannel))
		}
	}
	notifier := inventory.NewLowStockNotifier(log, publishers...)

	registerMovementUC := inventory.NewRegisterMovementUseCase(backend.Tx, backend.Stores, notifier, log)
	movementQueryUC := inventory.NewMovementQueryUseCase(backend.Stores, backend.Movements, infrapdf.NewMarotoReportGenerator())
	storeUC := usecase.NewStoreUseCase(backend.Stores, backend.Users)
	productUC := usecase.NewProductUseCase(backend.Products, backend.Stores)
	authUC := auth.NewAuthUseCase(backend.Users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.HTTP.SwaggerFile); cfg.HTTP.SwaggerFile != "" && err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.HTTP.SwaggerFile,
			Path:     "docs",
			Title:    "Inventario Tiendas API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		pingCtx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := backend.Ping(pingCtx); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:           authUC,
		StoreUC:          storeUC,
		ProductUC:        productUC,
		RegisterMovement: registerMovementUC,
		MovementQuery:    movementQueryUC,
		JWTSecret:        cfg.JWT.Secret,
		ProviderSecret:   cfg.Auth.ProviderSecret,
		RateLimitMax:     cfg.RateLimit.Max,
		RateLimitWindow:  cfg.RateLimit.Window,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

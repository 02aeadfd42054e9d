package server

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"

	"inventory/internal/config"
	"inventory/internal/handlers"
	"inventory/internal/middleware"
	"inventory/internal/models"
)

// NewApp builds the Fiber app with middleware and all routes registered.
func NewApp(cfg config.ServerConfig, logger *zap.Logger, productHandler *handlers.ProductHandler) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "inventory",
		BodyLimit:             cfg.BodyLimit,
		ErrorHandler:          middleware.ErrorHandler(logger),
		DisableStartupMessage: cfg.IsProduction(),
	})

	app.Use(requestid.New())
	app.Use(middleware.RequestLogger(logger))
	app.Use(recover.New())
	app.Use(middleware.CORS(cfg.CORSMaxAge))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(models.NewAPIResponse(fiber.Map{
			"status": "healthy",
			"time":   time.Now().UTC().Format(time.RFC3339),
		}))
	})

	productHandler.RegisterRoutes(app)

	return app
}

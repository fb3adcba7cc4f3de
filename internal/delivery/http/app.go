package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/flightprice/backend/internal/config"
)

// NewApp builds the fiber app with the service's middleware stack
func NewApp(cfg *config.Config) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name + " v" + cfg.App.Version,
		ReadTimeout:           config.GetDuration(cfg.Server.ReadTimeout),
		WriteTimeout:          config.GetDuration(cfg.Server.WriteTimeout),
		ErrorHandler:          ErrorHandler,
		DisableStartupMessage: cfg.App.Environment == "production",
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "[${time}] ${status} - ${method} ${path} (${latency})\n",
	}))

	// Any origin is allowed. fiber refuses a literal "*" together with
	// credentials, so the request origin is reflected instead.
	corsCfg := cors.Config{
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,HEAD,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept,Authorization",
		AllowCredentials: cfg.CORS.AllowCredentials,
	}
	if cfg.CORS.AllowCredentials {
		corsCfg.AllowOriginsFunc = func(string) bool { return true }
	} else {
		corsCfg.AllowOrigins = "*"
	}
	app.Use(cors.New(corsCfg))

	return app
}

package server

import (
	"github.com/HugoJF/boxbox/cmd"
	"github.com/HugoJF/boxbox/internal/middleware"
	"github.com/HugoJF/boxbox/internal/routers"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

// NewApp assembles the fiber application. Health and metrics endpoints are
// registered ahead of the auth middleware and stay public.
func NewApp(server *cmd.Server) *fiber.App {
	cfg := server.Configuration
	app := fiber.New(fiber.Config{
		BodyLimit:   cfg.Server.RequestConfig.SizeLimit * 1024 * 1024,
		Concurrency: cfg.Server.Concurrency * 1024,
		AppName:     "BoxBox",
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
		Output: server.LogService.Log.Out,
	}))

	metrics := middleware.NewMetrics()
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", metrics.Expose())
	app.Use(metrics.Handler())

	routers.SetupRoutes(app, server, middleware.NewAuth(cfg.Auth))
	return app
}

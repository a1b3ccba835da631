package routers

import (
	"github.com/HugoJF/boxbox/cmd"
	"github.com/gofiber/fiber/v2"
)

// SetupRoutes mounts the API under /api behind the given middleware.
func SetupRoutes(app *fiber.App, server *cmd.Server, middleware ...fiber.Handler) {
	api := app.Group("/api", middleware...)
	SetupBoxRouter(api, server)
	SetupItemRouter(api, server)
	SetupAnalysisRouter(api, server)
	SetupAdminRouter(api, server)
}

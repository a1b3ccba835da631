package routers

import (
	"errors"
	"github.com/HugoJF/boxbox/cmd"
	"github.com/HugoJF/boxbox/internal/dto"
	"github.com/HugoJF/boxbox/internal/services"
	"github.com/gofiber/fiber/v2"
)

func SetupAdminRouter(router fiber.Router, server *cmd.Server) {
	reconciler := server.Reconciler
	router.Post("/admin/reconcile", func(ctx *fiber.Ctx) error {
		corrected, err := reconciler.ForceReconcile()
		if errors.Is(err, services.ErrReconcileRunning) {
			return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		if err != nil {
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "could not reconcile item counts",
			})
		}
		return ctx.Status(fiber.StatusOK).JSON(dto.ReconcileDTO{Corrected: corrected})
	})
}

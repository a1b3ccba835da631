package routers

import (
	"github.com/HugoJF/boxbox/cmd"
	"github.com/gofiber/fiber/v2"
)

func SetupBoxRouter(router fiber.Router, server *cmd.Server) {
	boxHandler := server.BoxHandler
	router.Get("/boxes", boxHandler.ListBoxes)
	router.Post("/boxes", boxHandler.CreateBox)
	router.Get("/boxes/:id", boxHandler.GetBoxByID)
	router.Patch("/boxes/:id", boxHandler.UpdateBox)
	router.Delete("/boxes/:id", boxHandler.DeleteBox)
}

package handlers

import (
	"errors"
	"github.com/HugoJF/boxbox/internal/services"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// respondError maps service errors to a status code. Store and other
// unexpected failures are reported with the fallback message.
func respondError(c *fiber.Ctx, err error, fallback string) error {
	status := http.StatusInternalServerError
	message := fallback
	switch {
	case errors.Is(err, services.ErrNotFound):
		status = http.StatusNotFound
		message = err.Error()
	case errors.Is(err, services.ErrValidation):
		status = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, services.ErrUpstream):
		status = http.StatusBadGateway
		message = err.Error()
	}
	return c.Status(status).JSON(map[string]interface{}{"error": message})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(http.StatusBadRequest).JSON(map[string]interface{}{"error": message})
}

package handlers

import (
	"github.com/HugoJF/boxbox/internal/mapper"
	"github.com/HugoJF/boxbox/internal/services"

	"github.com/gofiber/fiber/v2"
)

type QRHandler struct {
	service services.QRService
}

func NewQRHandler(service services.QRService) *QRHandler {
	return &QRHandler{service: service}
}

func (h *QRHandler) GetBoxQRCode(c *fiber.Ctx) error {
	code, err := h.service.BoxQRCode(c.Params("id"))
	if err != nil {
		return respondError(c, err, "failed to generate QR code")
	}
	return c.JSON(mapper.ToQRCodeDTO(code))
}

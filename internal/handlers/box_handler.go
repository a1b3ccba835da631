package handlers

import (
	"github.com/HugoJF/boxbox/internal/dto"
	"github.com/HugoJF/boxbox/internal/mapper"
	"github.com/HugoJF/boxbox/internal/services"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

type BoxHandler struct {
	service services.BoxService
}

func NewBoxHandler(service services.BoxService) *BoxHandler {
	return &BoxHandler{service: service}
}

func (h *BoxHandler) CreateBox(c *fiber.Ctx) error {
	var req dto.BoxCreateDTO
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid input")
	}

	box, err := h.service.CreateBox(req.Name, req.Description, req.Color)
	if err != nil {
		return respondError(c, err, "could not create box")
	}

	return c.Status(http.StatusCreated).JSON(mapper.ToBoxGetDTO(box))
}

func (h *BoxHandler) GetBoxByID(c *fiber.Ctx) error {
	box, err := h.service.GetBoxByID(c.Params("id"))
	if err != nil {
		return respondError(c, err, "could not load box")
	}

	return c.JSON(mapper.ToBoxDetailDTO(box))
}

func (h *BoxHandler) UpdateBox(c *fiber.Ctx) error {
	var req dto.BoxUpdateDTO
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid input")
	}

	box, err := h.service.UpdateBox(c.Params("id"), mapper.ToBoxUpdate(req))
	if err != nil {
		return respondError(c, err, "could not update box")
	}

	return c.JSON(mapper.ToBoxGetDTO(box))
}

func (h *BoxHandler) DeleteBox(c *fiber.Ctx) error {
	if err := h.service.DeleteBox(c.Params("id")); err != nil {
		return respondError(c, err, "could not delete box")
	}

	return c.JSON(dto.SuccessDTO{Success: true})
}

func (h *BoxHandler) ListBoxes(c *fiber.Ctx) error {
	boxes, err := h.service.GetBoxes(c.Query("search"))
	if err != nil {
		return respondError(c, err, "could not list boxes")
	}
	return c.JSON(mapper.ToBoxesGetDTOs(boxes))
}

package handlers

import (
	"github.com/HugoJF/boxbox/internal/dto"
	"github.com/HugoJF/boxbox/internal/mapper"
	"github.com/HugoJF/boxbox/internal/services"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

type ItemHandler struct {
	service services.ItemService
}

func NewItemHandler(service services.ItemService) *ItemHandler {
	return &ItemHandler{service: service}
}

func (h *ItemHandler) CreateItem(c *fiber.Ctx) error {
	var req dto.ItemCreateDTO
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid input")
	}

	item, err := h.service.CreateItem(mapper.ToItemCreateInput(req))
	if err != nil {
		return respondError(c, err, "could not create item")
	}

	return c.Status(http.StatusCreated).JSON(mapper.ToItemGetDTO(item))
}

func (h *ItemHandler) GetItemByID(c *fiber.Ctx) error {
	item, err := h.service.GetItemByID(c.Params("id"))
	if err != nil {
		return respondError(c, err, "could not load item")
	}

	return c.JSON(mapper.ToItemGetDTO(item))
}

func (h *ItemHandler) UpdateItem(c *fiber.Ctx) error {
	var req dto.ItemUpdateDTO
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid input")
	}

	item, err := h.service.UpdateItem(c.Params("id"), mapper.ToItemUpdateInput(req))
	if err != nil {
		return respondError(c, err, "could not update item")
	}

	return c.JSON(mapper.ToItemGetDTO(item))
}

func (h *ItemHandler) DeleteItem(c *fiber.Ctx) error {
	if err := h.service.DeleteItem(c.Params("id")); err != nil {
		return respondError(c, err, "could not delete item")
	}

	return c.JSON(dto.SuccessDTO{Success: true})
}

// ListItems returns a plain array unless a limit or cursor is given, in which
// case the response is a page with the cursor for the next one.
func (h *ItemHandler) ListItems(c *fiber.Ctx) error {
	query := services.ItemQuery{
		BoxID:  c.Query("boxId"),
		Search: c.Query("search"),
		Cursor: c.Query("cursor"),
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return badRequest(c, "invalid limit")
		}
		query.Limit = limit
		query.Paginate = true
	}
	if query.Cursor != "" {
		query.Paginate = true
	}

	page, err := h.service.ListItems(query)
	if err != nil {
		return respondError(c, err, "could not list items")
	}
	if !query.Paginate {
		return c.JSON(mapper.ToItemsGetDTOs(page.Items))
	}
	return c.JSON(mapper.ToItemPageDTO(page))
}

package handlers

import (
	"github.com/HugoJF/boxbox/internal/dto"
	"github.com/HugoJF/boxbox/internal/helpers"
	"github.com/HugoJF/boxbox/internal/mapper"
	"github.com/HugoJF/boxbox/internal/services"
	"io"

	"github.com/gofiber/fiber/v2"
)

type AnalysisHandler struct {
	service services.AnalysisService
}

func NewAnalysisHandler(service services.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{service: service}
}

func (h *AnalysisHandler) AnalyzeItem(c *fiber.Ctx) error {
	var req dto.AnalyzeRequestDTO
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid input")
	}

	analysis, err := h.service.Analyze(c.UserContext(), req.Image, req.Profile)
	if err != nil {
		return respondError(c, err, "failed to analyze item")
	}

	return c.JSON(mapper.ToAnalysisDTO(analysis))
}

// AnalyzeUpload accepts a multipart photo instead of a data URL.
func (h *AnalysisHandler) AnalyzeUpload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "image is required")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return badRequest(c, "invalid file")
	}
	defer file.Close()
	raw, err := io.ReadAll(file)
	if err != nil {
		return badRequest(c, "invalid file")
	}
	if len(raw) == 0 {
		return badRequest(c, "image is required")
	}

	analysis, err := h.service.Analyze(c.UserContext(), helpers.ToDataURL(raw), c.FormValue("profile"))
	if err != nil {
		return respondError(c, err, "failed to analyze item")
	}

	return c.JSON(mapper.ToAnalysisDTO(analysis))
}

func (h *AnalysisHandler) CompareProfiles(c *fiber.Ctx) error {
	var req dto.CompareRequestDTO
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid input")
	}

	results, err := h.service.Compare(c.UserContext(), req.Image, req.Profiles)
	if err != nil {
		return respondError(c, err, "failed to analyze item")
	}

	return c.JSON(mapper.ToCompareResultDTOs(results))
}

package routers

import (
	"github.com/HugoJF/boxbox/cmd"
	"github.com/gofiber/fiber/v2"
)

func SetupAnalysisRouter(router fiber.Router, server *cmd.Server) {
	analysisHandler := server.AnalysisHandler
	router.Post("/analyze-item", analysisHandler.AnalyzeItem)
	router.Post("/analyze-item/upload", analysisHandler.AnalyzeUpload)
	router.Post("/analyze-item/compare", analysisHandler.CompareProfiles)
	router.Get("/qr/:id", server.QRHandler.GetBoxQRCode)
}

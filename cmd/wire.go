package cmd

import (
	"github.com/HugoJF/boxbox/internal/config"
	"github.com/HugoJF/boxbox/internal/handlers"
	"github.com/HugoJF/boxbox/internal/services"
	"gorm.io/gorm"
)

type Server struct {
	Configuration   *config.Configuration
	DB              *gorm.DB
	BoxService      services.BoxService
	BoxHandler      *handlers.BoxHandler
	ItemService     services.ItemService
	ItemHandler     *handlers.ItemHandler
	AnalysisService services.AnalysisService
	AnalysisHandler *handlers.AnalysisHandler
	QRHandler       *handlers.QRHandler
	LogService      services.LogService
	Reconciler      *services.Reconciler
}

func NewServer(
	configuration *config.Configuration,
	db *gorm.DB,
	boxService services.BoxService,
	boxHandler *handlers.BoxHandler,
	itemService services.ItemService,
	itemHandler *handlers.ItemHandler,
	analysisService services.AnalysisService,
	analysisHandler *handlers.AnalysisHandler,
	qrHandler *handlers.QRHandler,
	logService services.LogService,
	reconciler *services.Reconciler,
) *Server {
	return &Server{
		Configuration:   configuration,
		DB:              db,
		BoxService:      boxService,
		BoxHandler:      boxHandler,
		ItemService:     itemService,
		ItemHandler:     itemHandler,
		AnalysisService: analysisService,
		AnalysisHandler: analysisHandler,
		QRHandler:       qrHandler,
		LogService:      logService,
		Reconciler:      reconciler,
	}
}

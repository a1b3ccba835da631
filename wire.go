//go:build wireinject
// +build wireinject

package main

import (
	"github.com/HugoJF/boxbox/cmd"
	"github.com/HugoJF/boxbox/database"
	"github.com/HugoJF/boxbox/internal/config"
	"github.com/HugoJF/boxbox/internal/handlers"
	"github.com/HugoJF/boxbox/internal/repository"
	"github.com/HugoJF/boxbox/internal/services"
	"github.com/HugoJF/boxbox/internal/vision"
	"github.com/google/wire"
)

func InitializeServer(configuration *config.Configuration) (*cmd.Server, error) {
	wire.Build(
		cmd.NewServer,
		services.NewBoxService,
		handlers.NewBoxHandler,
		repository.NewBoxRepository,
		services.NewItemService,
		handlers.NewItemHandler,
		repository.NewItemRepository,
		database.SetupDatabase,
		vision.NewOpenAIModel,
		wire.Bind(new(vision.Model), new(*vision.OpenAIModel)),
		services.NewAnalysisService,
		handlers.NewAnalysisHandler,
		services.NewQRService,
		handlers.NewQRHandler,
		services.NewLogService,
		services.NewReconcilerService,
	)
	return nil, nil
}

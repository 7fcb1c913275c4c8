package core

import (
	"embed"

	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/modules/core/infrastructure/persistence"
	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/modules/core/presentation/controllers"
	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/modules/core/services"
	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/pkg/application"
	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/pkg/configuration"
)

//go:embed infrastructure/persistence/schema/core-schema.sql
var migrationFiles embed.FS

func NewModule() application.Module {
	return &Module{}
}

type Module struct{}

func (m *Module) Register(app application.Application) error {
	app.Migrations().RegisterSchema(&migrationFiles)

	app.RegisterServices(
		services.NewAuthService(
			persistence.NewUserRepository(),
			persistence.NewSessionRepository(),
			configuration.Use().SessionDuration,
		),
	)

	app.RegisterControllers(
		controllers.NewAuthController(app),
	)

	return nil
}

func (m *Module) Name() string {
	return "core"
}

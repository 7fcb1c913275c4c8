package billing

import (
	"embed"

	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/modules/billing/infrastructure/gateway"
	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/modules/billing/infrastructure/persistence"
	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/modules/billing/presentation/controllers"
	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/modules/billing/services"
	coreservices "github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/modules/core/services"
	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/pkg/application"
	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/pkg/configuration"
)

//go:embed infrastructure/persistence/schema/billing-schema.sql
var migrationFiles embed.FS

func NewModule() application.Module {
	return &Module{}
}

type Module struct{}

// Register wires the billing module. Depends on core being registered first
// for the plan upgrade path.
func (m *Module) Register(app application.Application) error {
	app.Migrations().RegisterSchema(&migrationFiles)

	authSvc := app.Service(coreservices.AuthService{}).(*coreservices.AuthService)

	app.RegisterServices(
		services.NewBillingService(
			persistence.NewOrderRepository(),
			gateway.NewClient(configuration.Use().Payments),
			authSvc,
			app.EventPublisher(),
		),
	)

	app.RegisterControllers(
		controllers.NewBillingController(app),
		controllers.NewWebhookController(app),
	)

	return nil
}

func (m *Module) Name() string {
	return "billing"
}

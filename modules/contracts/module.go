package contracts

import (
	"embed"

	"github.com/redis/go-redis/v9"

	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/modules/contracts/infrastructure/persistence"
	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/modules/contracts/presentation/controllers"
	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/modules/contracts/services"
	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/pkg/application"
	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/pkg/configuration"
)

//go:embed infrastructure/persistence/schema/contracts-schema.sql
var migrationFiles embed.FS

func NewModule() application.Module {
	return &Module{}
}

type Module struct{}

func (m *Module) Register(app application.Application) error {
	app.Migrations().RegisterSchema(&migrationFiles)

	contractRepo := persistence.NewContractRepository()
	revisionRepo := persistence.NewRevisionRequestRepository()
	terminationRepo := persistence.NewTerminationRequestRepository()

	reveals, err := keyRevealCounter()
	if err != nil {
		return err
	}

	app.RegisterServices(
		services.NewContractService(contractRepo, reveals, app.EventPublisher()),
		services.NewClientAccessService(contractRepo, revisionRepo, terminationRepo, app.EventPublisher()),
		services.NewRequestService(contractRepo, revisionRepo, terminationRepo),
	)

	app.RegisterControllers(
		controllers.NewContractsController(app),
		controllers.NewClientController(app),
	)

	return nil
}

func (m *Module) Name() string {
	return "contracts"
}

func keyRevealCounter() (services.KeyRevealCounter, error) {
	conf := configuration.Use()
	if conf.KeyReveal.Storage != "redis" {
		return services.NewInmemKeyRevealCounter(), nil
	}
	opts, err := redis.ParseURL(conf.KeyReveal.RedisURL)
	if err != nil {
		return nil, err
	}
	return services.NewRedisKeyRevealCounter(redis.NewClient(opts)), nil
}

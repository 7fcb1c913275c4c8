package services_test

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/modules/contracts/infrastructure/persistence"
	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/modules/contracts/services"
	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/pkg/eventbus"
	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/pkg/logging"
)

type fixtures struct {
	ctx          context.Context
	contracts    *persistence.InmemContractRepository
	revisions    *persistence.InmemRevisionRequestRepository
	terminations *persistence.InmemTerminationRequestRepository
	reveals      *services.InmemKeyRevealCounter
	bus          eventbus.EventBus

	contractSvc *services.ContractService
	clientSvc   *services.ClientAccessService
	requestSvc  *services.RequestService
}

func setupTest(t *testing.T) *fixtures {
	t.Helper()

	contracts := persistence.NewInmemContractRepository()
	revisions := persistence.NewInmemRevisionRequestRepository(contracts)
	terminations := persistence.NewInmemTerminationRequestRepository(contracts)
	reveals := services.NewInmemKeyRevealCounter()
	bus := eventbus.NewEventPublisher(logging.ConsoleLogger(logrus.ErrorLevel))

	return &fixtures{
		ctx:          context.Background(),
		contracts:    contracts,
		revisions:    revisions,
		terminations: terminations,
		reveals:      reveals,
		bus:          bus,
		contractSvc:  services.NewContractService(contracts, reveals, bus),
		clientSvc:    services.NewClientAccessService(contracts, revisions, terminations, bus),
		requestSvc:   services.NewRequestService(contracts, revisions, terminations),
	}
}

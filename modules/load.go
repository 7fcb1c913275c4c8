package modules

import (
	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/modules/assistant"
	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/modules/billing"
	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/modules/contracts"
	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/modules/core"
	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/pkg/application"
)

// BuiltInModules lists every module in registration order. Core goes first;
// billing and the API modules resolve core services during registration.
var BuiltInModules = []application.Module{
	core.NewModule(),
	contracts.NewModule(),
	assistant.NewModule(),
	billing.NewModule(),
}

func Load(app application.Application, mods ...application.Module) error {
	for _, module := range mods {
		if err := module.Register(app); err != nil {
			return err
		}
	}
	return nil
}

package assistant

import (
	"github.com/redis/go-redis/v9"

	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/modules/assistant/infrastructure/cache"
	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/modules/assistant/presentation/controllers"
	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/modules/assistant/services"
	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/pkg/application"
	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/pkg/configuration"
)

func NewModule() application.Module {
	return &Module{}
}

type Module struct{}

func (m *Module) Register(app application.Application) error {
	conf := configuration.Use()

	var completionCache cache.Cache
	if conf.AssistCacheEnabled {
		completionCache = cache.NewRedisCache(
			redis.NewClient(&redis.Options{Addr: conf.RedisURL}),
			conf.AssistCacheTTL,
		)
	}

	app.RegisterServices(
		services.NewAssistService(
			services.NewOpenAICompleter(conf.OpenAI),
			completionCache,
			conf.OpenAI,
		),
	)

	app.RegisterControllers(
		controllers.NewAssistController(app),
	)

	return nil
}

func (m *Module) Name() string {
	return "assistant"
}

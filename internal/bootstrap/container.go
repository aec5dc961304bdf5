package bootstrap

import (
	"context"
	"log"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"github.com/Meta3VenturesAI/meta3ventures-agentic-website-sub004/internal/config"
	"github.com/Meta3VenturesAI/meta3ventures-agentic-website-sub004/internal/controller"
	"github.com/Meta3VenturesAI/meta3ventures-agentic-website-sub004/internal/pkg/logger"
	"github.com/Meta3VenturesAI/meta3ventures-agentic-website-sub004/internal/pkg/serverutils"
	"github.com/Meta3VenturesAI/meta3ventures-agentic-website-sub004/internal/service"
	"github.com/Meta3VenturesAI/meta3ventures-agentic-website-sub004/internal/websocket"
	"github.com/Meta3VenturesAI/meta3ventures-agentic-website-sub004/pkg/ai/orchestrator"
	"github.com/Meta3VenturesAI/meta3ventures-agentic-website-sub004/pkg/ai/prompt"
	"github.com/Meta3VenturesAI/meta3ventures-agentic-website-sub004/pkg/ai/response"
	"github.com/Meta3VenturesAI/meta3ventures-agentic-website-sub004/pkg/ai/tools"
	"github.com/Meta3VenturesAI/meta3ventures-agentic-website-sub004/pkg/embedding"
	"github.com/Meta3VenturesAI/meta3ventures-agentic-website-sub004/pkg/knowledge"
	"github.com/Meta3VenturesAI/meta3ventures-agentic-website-sub004/pkg/llm/factory"
	"github.com/Meta3VenturesAI/meta3ventures-agentic-website-sub004/pkg/llm/registry"
	pktNats "github.com/Meta3VenturesAI/meta3ventures-agentic-website-sub004/pkg/nats"
	"github.com/Meta3VenturesAI/meta3ventures-agentic-website-sub004/pkg/session"
)

type Container struct {
	// Controllers
	AgentController     controller.IAgentController
	KnowledgeController controller.IKnowledgeController
	ProviderController  controller.IProviderController
	OpsController       controller.IOpsController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets
	WebSocketHub *websocket.Hub
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	serverutils.SetJWTSecret(cfg.App.JWTSecret)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// Optional NATS mirror for external analytics consumers
	var natsPub *pktNats.Publisher
	if cfg.App.NatsURL != "" {
		var err error
		natsPub, err = pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
			natsPub = nil
		}
	}

	// 3. Knowledge Index
	var embedder embedding.Provider
	if cfg.Knowledge.EmbeddingProvider == "ollama" {
		embedder = embedding.NewOllamaProvider(
			cfg.Providers.OllamaBaseURL,
			cfg.Knowledge.OllamaEmbeddingModel,
			cfg.Knowledge.EmbeddingDimension,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Knowledge.OllamaEmbeddingModel)
	} else {
		embedder = embedding.NewHashProvider(cfg.Knowledge.EmbeddingDimension)
		log.Printf("[INFO] Using Embedding Provider: HASH (%d dims)", cfg.Knowledge.EmbeddingDimension)
	}
	index := knowledge.NewIndex(embedder)

	// 4. Generation Chain
	providers := factory.NewProviders(factory.Config{
		OpenAIKey:     cfg.Providers.OpenAIKey,
		OpenAIModels:  cfg.Providers.OpenAIModels,
		GroqKey:       cfg.Providers.GroqKey,
		GroqModels:    cfg.Providers.GroqModels,
		OllamaBaseURL: cfg.Providers.OllamaBaseURL,
		OllamaModels:  cfg.Providers.OllamaModels,
	})
	providerRegistry := registry.NewRegistry(providers, cfg.Providers.HealthCacheTTL)
	orch := orchestrator.NewOrchestrator(providerRegistry, cfg.Providers.AttemptTimeout, sysLogger)

	// 5. Tools
	toolRegistry := tools.NewRegistry()
	for _, tool := range []tools.Tool{
		tools.NewKnowledgeSearchTool(index),
		tools.NewScheduleMeetingTool(),
		tools.NewPortfolioLookupTool(index),
		tools.NewFundingCriteriaTool(),
	} {
		if err := toolRegistry.Register(tool); err != nil {
			log.Fatalf("[FATAL] Failed to register tool %s: %v", tool.Id(), err)
		}
	}
	executor := tools.NewExecutor(toolRegistry, sysLogger)

	// 6. Sessions
	sessions := session.NewManager(cfg.Agent.TopicCap, cfg.Agent.SessionTTL)

	// 7. WebSocket Hub fed by the activity bus
	wsLogger := logger.NewIsolatedLogger("logs/activity.log")
	wsHub := websocket.NewHub(pubSub, service.ActivityTopic, wsLogger)
	go wsHub.Run(context.Background())

	// 8. Services
	publisherService := service.NewPublisherService(pubSub, natsPub, sysLogger)
	consumerService := service.NewConsumerService(pubSub, sysLogger)

	knowledgeService := service.NewKnowledgeService(
		index,
		cfg.Knowledge.ChunkSize,
		cfg.Knowledge.ChunkOverlap,
		publisherService,
		sysLogger,
	)
	if err := knowledgeService.Seed(); err != nil {
		log.Fatalf("[FATAL] Failed to seed knowledge index: %v", err)
	}

	agentService := service.NewAgentService(
		sessions,
		index,
		prompt.NewBuilder(),
		orch,
		executor,
		response.NewShaper(nil),
		publisherService,
		sysLogger,
		cfg.Agent.DefaultAgentId,
	)
	providerService := service.NewProviderService(providerRegistry)

	// 9. Controllers
	return &Container{
		AgentController:     controller.NewAgentController(agentService),
		KnowledgeController: controller.NewKnowledgeController(knowledgeService),
		ProviderController:  controller.NewProviderController(providerService),
		OpsController:       controller.NewOpsController(consumerService, sysLogger),

		ConsumerService: consumerService,
		WebSocketHub:    wsHub,
	}
}

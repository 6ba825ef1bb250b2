package bootstrap

import (
	"log"
	"time"

	"gorm.io/gorm"

	"riski-agent-be/internal/config"
	"riski-agent-be/internal/controller"
	"riski-agent-be/internal/pkg/logger"
	"riski-agent-be/internal/repository/implementation"
	"riski-agent-be/pkg/agent/checkpoint"
	"riski-agent-be/pkg/agent/graph"
	"riski-agent-be/pkg/agent/stream"
	"riski-agent-be/pkg/agent/tools"
	"riski-agent-be/pkg/embedding"
	"riski-agent-be/pkg/llm/factory"
	"riski-agent-be/pkg/vectorstore"
)

type Container struct {
	// Controllers
	AgentController  controller.IAgentController
	SystemController controller.ISystemController

	// Shared infrastructure exposed for shutdown
	EventBus *stream.Bus
	Logger   logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// Embedding provider
	var embeddingProvider embedding.Provider
	if cfg.Ai.EmbeddingProvider == "gemini" {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Ai.GeminiAPIKey, cfg.Ai.EmbeddingModel)
		log.Printf("[INFO] Using Embedding Provider: GEMINI (%s)", cfg.Ai.EmbeddingModel)
	} else {
		embeddingProvider = embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.EmbeddingModel)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.EmbeddingModel)
	}

	// Chat model provider
	llmProvider, err := factory.NewProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Ai.GeminiAPIKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// Retrieval stack
	store := vectorstore.NewPgVectorStore(db, embeddingProvider)
	proposalRepo := implementation.NewProposalRepository(db)
	registry := tools.NewRegistry(
		tools.NewRetrieveDocuments(store, proposalRepo, cfg.Agent.TopK, sysLogger),
		tools.DescribeCapabilities{},
	)

	// Checkpointer
	ttl := time.Duration(cfg.Agent.CheckpointTTLMinutes) * time.Minute
	var checkpoints checkpoint.Store
	if cfg.Agent.CheckpointBackend == "redis" {
		redisStore, err := checkpoint.NewRedisStore(cfg.App.RedisURL, ttl)
		if err != nil {
			log.Fatalf("[FATAL] Failed to initialize Redis checkpointer: %v", err)
		}
		checkpoints = redisStore
		log.Printf("[INFO] Using Checkpoint Store: REDIS (ttl %s)", ttl)
	} else {
		checkpoints = checkpoint.NewMemoryStore(ttl)
		log.Printf("[INFO] Using Checkpoint Store: IN_MEMORY (ttl %s)", ttl)
	}

	// Event stream: in-process bus for SSE, optionally mirrored to NATS
	bus := stream.NewBus()
	var sink stream.Sink = bus
	if cfg.App.NatsURL != "" {
		natsSink, err := stream.NewNatsSink(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect NATS event sink: %v", err)
		} else {
			sink = stream.MultiSink{bus, natsSink}
			log.Printf("[INFO] Mirroring run events to NATS (%s)", cfg.App.NatsURL)
		}
	}

	agentGraph := graph.New(llmProvider, registry, checkpoints, sink, sysLogger, graph.Config{
		SnippetMaxLen: cfg.Agent.SnippetMaxLen,
	})

	return &Container{
		AgentController:  controller.NewAgentController(agentGraph, bus, sysLogger),
		SystemController: controller.NewSystemController(cfg),
		EventBus:         bus,
		Logger:           sysLogger,
	}
}

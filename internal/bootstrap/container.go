package bootstrap

import (
	"context"
	"log"
	"time"

	"code-assistant-be/internal/config"
	"code-assistant-be/internal/controller"
	"code-assistant-be/internal/pkg/logger"
	"code-assistant-be/internal/repository/contract"
	"code-assistant-be/internal/repository/implementation"
	"code-assistant-be/internal/repository/memory"
	"code-assistant-be/internal/repository/redisrepo"
	"code-assistant-be/internal/service"
	"code-assistant-be/pkg/database"
	"code-assistant-be/pkg/embedding"
	"code-assistant-be/pkg/embedding/jina"
	"code-assistant-be/pkg/events"
	"code-assistant-be/pkg/explain"
	"code-assistant-be/pkg/intent"
	"code-assistant-be/pkg/llm/factory"
	"code-assistant-be/pkg/session"

	pktNats "code-assistant-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AssistantController controller.IAssistantController

	// Background Services (Exposed for main.go to run)
	IndexerService service.IIndexerService

	// Held for graceful shutdown
	NatsPublisher *pktNats.Publisher
	SysLogger     logger.ILogger
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Providers
	// Initialize Embedding Provider based on Config
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.EmbeddingModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.EmbeddingModel)
	} else if cfg.Ai.EmbeddingProvider == "jina" {
		embeddingProvider = jina.NewJinaProvider(cfg.Keys.Jina)
		log.Printf("[INFO] Using Embedding Provider: JINA AI")
	} else {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Keys.GoogleGemini)
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
	}

	// Initialize LLM Provider based on Config
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Keys.HuggingFace,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 4. Storage
	// Postgres is optional: only the postgres corpus source and turn auditing
	// need it.
	var db *gorm.DB
	if cfg.Database.Connection != "" {
		db, err = database.NewGormDBFromDSN(cfg.Database.Connection)
		if err != nil {
			log.Fatalf("[FATAL] Failed to connect to database: %v", err)
		}
	}

	var corpusRepo contract.CorpusRepository
	var auditRepo contract.TurnAuditRepository
	if db != nil {
		corpusRepo = implementation.NewCorpusRepository(db)
		if cfg.Search.AuditTurns {
			auditRepo = implementation.NewTurnAuditRepository(db)
		}
	}

	// Session storage
	var sessionRepo session.Repository
	if cfg.Session.Backend == "redis" {
		redisRepo, err := redisrepo.NewSessionRepository(cfg.App.RedisURL, cfg.Session.IdleTimeout)
		if err != nil {
			log.Fatalf("[FATAL] Failed to connect to Redis session store: %v", err)
		}
		sessionRepo = redisRepo
		log.Printf("[INFO] Using Session Backend: REDIS")
	} else {
		sessionRepo = memory.NewSessionRepository(cfg.Session.IdleTimeout)
		log.Printf("[INFO] Using Session Backend: MEMORY")
	}
	sessionManager := session.NewManager(sessionRepo, cfg.Session.IdleTimeout, cfg.Session.HistoryCap)

	// 5. Corpus index
	var loader service.CorpusLoader
	if cfg.Corpus.Source == "postgres" {
		if corpusRepo == nil {
			log.Fatalf("[FATAL] CORPUS_SOURCE=postgres requires DB_CONNECTION_STRING")
		}
		loader = &service.PostgresCorpusLoader{Repo: corpusRepo, Model: embeddingProvider.Model()}
	} else {
		loader = &service.FileCorpusLoader{
			CorpusPath:  cfg.Corpus.CorpusPath,
			VectorsPath: cfg.Corpus.VectorsPath,
			Model:       embeddingProvider.Model(),
		}
	}

	indexerService, err := service.NewIndexerService(
		context.Background(),
		loader,
		embeddingProvider.Model(),
		pubSub,
		cfg.Keys.ReloadTopic,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to build corpus index: %v", err)
	}

	// 6. Cross-replica reload fan-out (optional)
	var natsPub *pktNats.Publisher
	if cfg.App.NatsURL != "" {
		natsPub, err = pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		}
		natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
		} else {
			durable := "assistant-reload-" + uuid.NewString()[:8]
			subject := "assistant." + events.EventTypeIndexReload
			if err := natsSub.Subscribe(subject, durable, indexerService.HandleBroadcast); err != nil {
				log.Printf("[WARN] Failed to subscribe to reload broadcasts: %v", err)
			} else if natsPub != nil {
				// Reload requests go over NATS only when the subscription is
				// live, otherwise this replica would never see its own event.
				indexerService.SetBroadcaster(natsPub)
			}
		}
	}

	// 7. Dialogue components
	var classifier intent.Classifier
	ruleClassifier := intent.NewRuleClassifier(cfg.Search.IntentThreshold)
	if cfg.Search.IntentClassifier == "llm" {
		classifier = intent.NewLLMClassifier(llmProvider, ruleClassifier, cfg.Search.IntentThreshold, log.Default())
		log.Printf("[INFO] Using Intent Classifier: LLM")
	} else {
		classifier = ruleClassifier
		log.Printf("[INFO] Using Intent Classifier: RULE")
	}

	explainer := explain.NewExplainer(llmProvider, 30*time.Second, log.Default())

	assistantService := service.NewAssistantService(
		indexerService,
		embeddingProvider,
		classifier,
		explainer,
		sessionManager,
		auditRepo,
		cfg.Search.TopK,
	)

	return &Container{
		AssistantController: controller.NewAssistantController(assistantService, indexerService, cfg.App.JWTSecret),
		IndexerService:      indexerService,
		NatsPublisher:       natsPub,
		SysLogger:           sysLogger,
	}
}

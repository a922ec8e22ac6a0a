package bootstrap

import (
	"log"
	"os"
	"path/filepath"

	"doc-voicebot-be/internal/config"
	"doc-voicebot-be/internal/controller"
	"doc-voicebot-be/internal/pkg/logger"
	"doc-voicebot-be/internal/repository/memory"
	"doc-voicebot-be/internal/service"
	"doc-voicebot-be/internal/websocket"
	"doc-voicebot-be/pkg/embedding"
	"doc-voicebot-be/pkg/embedding/jina"
	"doc-voicebot-be/pkg/llm/factory"
	"doc-voicebot-be/pkg/qa"
	"doc-voicebot-be/pkg/speech"
	"doc-voicebot-be/pkg/translate"

	pktNats "doc-voicebot-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type Container struct {
	// Controllers
	AuthController     controller.IAuthController
	LanguageController controller.ILanguageController
	DocumentController controller.IDocumentController
	ChatController     controller.IChatController
	SpeechController   controller.ISpeechController
	VoiceController    controller.IVoiceController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets
	WebSocketHandler *websocket.Handler
	WebSocketHub     *websocket.Hub
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

	// 3. AI Providers
	// Initialize Embedding Provider based on Config
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaEmbedModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaEmbedModel)
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
		cfg.Keys.OpenAI,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// Translation and speech services
	translator := translate.NewGoogleTranslator()
	transcriber := speech.NewGoogleTranscriber(cfg.Keys.Speech)
	synthesizer := speech.NewGoogleSynthesizer()

	// 4. Infrastructure
	// NATS (best effort: chat keeps working without the event stream)
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	// In-memory storage
	sessionRepo := memory.NewSessionRepository()
	docRepo := memory.NewDocumentRepository()

	// WebSocket hub for voice progress events
	wsHub := websocket.NewHub(sysLogger)
	wsHandler := websocket.NewHandler(wsHub)

	// 5. Domain
	generator := qa.NewGenerator(llmProvider, translator, initQALogger())

	// 6. Services
	documentService := service.NewDocumentService(
		docRepo,
		embeddingProvider,
		pubSub,
		cfg.App.EmbedChunkTopic,
		cfg.App.UploadDir,
		sysLogger,
	)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.App.EmbedChunkTopic,
		docRepo,
		natsPub,
		sysLogger,
	)
	chatService := service.NewChatService(sessionRepo, docRepo, generator, natsPub, sysLogger)
	voiceService := service.NewVoiceService(
		sessionRepo,
		chatService,
		transcriber,
		synthesizer,
		wsHub,
		cfg.App.UploadDir,
		sysLogger,
	)
	authService := service.NewAuthService(cfg.Auth)

	// 7. Controllers
	return &Container{
		AuthController:     controller.NewAuthController(authService),
		LanguageController: controller.NewLanguageController(),
		DocumentController: controller.NewDocumentController(documentService),
		ChatController:     controller.NewChatController(chatService),
		SpeechController:   controller.NewSpeechController(synthesizer),
		VoiceController:    controller.NewVoiceController(voiceService),

		ConsumerService: consumerService,

		WebSocketHandler: wsHandler,
		WebSocketHub:     wsHub,
	}
}

func initQALogger() *log.Logger {
	logPath := filepath.Join(".", "logs", "llm_qa.log")
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		log.Printf("Failed to create logs directory: %v", err)
	}
	file, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return log.New(os.Stdout, "[LLM-QA] ", log.LstdFlags)
	}
	return log.New(file, "", log.LstdFlags)
}

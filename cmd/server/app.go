package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/cardforge/cardforge-api/internal/config"
	"github.com/cardforge/cardforge-api/internal/generation"
	"github.com/cardforge/cardforge-api/internal/llm"
	"github.com/cardforge/cardforge-api/internal/pdf"
	"github.com/cardforge/cardforge-api/internal/platform/gemini"
	"github.com/cardforge/cardforge-api/internal/platform/openai"
	"github.com/cardforge/cardforge-api/internal/platform/postgres"
	"github.com/cardforge/cardforge-api/internal/search"
	"github.com/cardforge/cardforge-api/internal/service"
	"github.com/cardforge/cardforge-api/internal/service/auth"
	"github.com/cardforge/cardforge-api/internal/store"
)

// application holds the shared application dependencies so wiring and
// cleanup live in one place.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// Stores
	userStore       store.UserStore
	chatStore       store.ChatStore
	messageStore    store.MessageStore
	flashcardStore  store.FlashcardStore
	collectionStore store.CollectionStore

	// Auth
	jwtService       auth.JWTService
	passwordVerifier auth.PasswordVerifier

	// Generation pipeline
	gateway      llm.Gateway
	pdfExtractor *pdf.Extractor

	// Services
	generationService service.GenerationService
	chatService       service.ChatService
	collectionService service.CollectionService
	flashcardService  service.FlashcardService
}

// newApplication creates an application instance with all dependencies
// initialized. Configuration, logging, and the database connection must
// already be established.
func newApplication(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	db *sql.DB,
) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	app.passwordVerifier = auth.NewBcryptVerifier()

	// Stores
	app.userStore = postgres.NewPostgresUserStore(db, logger, bcrypt.DefaultCost)
	app.chatStore = postgres.NewPostgresChatStore(db, logger)
	app.messageStore = postgres.NewPostgresMessageStore(db, logger)
	app.flashcardStore = postgres.NewPostgresFlashcardStore(db, logger)
	app.collectionStore = postgres.NewPostgresCollectionStore(db, logger)

	// LLM gateway: OpenAI-compatible chat completions by default, with
	// gemini-* models routed to the Gemini backend when configured.
	app.gateway, err = setupGateway(ctx, cfg.LLM, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize LLM gateway: %w", err)
	}

	searchProvider := search.NewSimulatedProvider()
	answerService := generation.NewAnswerService(app.gateway, searchProvider, logger)
	extractor := generation.NewExtractor(app.gateway, logger)
	app.pdfExtractor = pdf.NewExtractor(logger)

	// Services
	app.generationService = service.NewGenerationService(
		db,
		app.chatStore,
		app.messageStore,
		app.flashcardStore,
		answerService,
		extractor,
		cfg.LLM.DefaultModel,
		logger,
	)
	app.chatService = service.NewChatService(
		app.chatStore, app.messageStore, app.flashcardStore, logger)
	app.collectionService = service.NewCollectionService(
		db, app.collectionStore, app.flashcardStore, logger)
	app.flashcardService = service.NewFlashcardService(
		app.flashcardStore, app.collectionStore, logger)

	logger.Info("application initialized successfully")
	return app, nil
}

// setupGateway builds the model router. Gemini support is optional and
// only enabled when an API key is configured.
func setupGateway(ctx context.Context, cfg config.LLMConfig, logger *slog.Logger) (llm.Gateway, error) {
	openaiProvider, err := openai.NewProvider(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("openai provider: %w", err)
	}

	var geminiProvider llm.Gateway
	if cfg.GeminiAPIKey != "" {
		provider, err := gemini.NewProvider(ctx, cfg, logger)
		if err != nil {
			return nil, fmt.Errorf("gemini provider: %w", err)
		}
		geminiProvider = provider
		logger.Info("gemini provider enabled")
	}

	return llm.NewRouter(openaiProvider, geminiProvider), nil
}

// Run starts the HTTP server and blocks until shutdown.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", "error", err)
		}
	}

	app.logger.Info("application shutdown completed")
}

package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/cardforge/cardforge-api/internal/api"
	apiMiddleware "github.com/cardforge/cardforge-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all
// routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	authHandler := api.NewAuthHandler(
		app.userStore, app.jwtService, app.passwordVerifier, app.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	generateHandler := api.NewGenerateHandler(app.generationService, app.logger)
	chatHandler := api.NewChatHandler(app.chatService, app.logger)
	collectionHandler := api.NewCollectionHandler(app.collectionService, app.logger)
	flashcardHandler := api.NewFlashcardHandler(app.flashcardService, app.logger)
	pdfHandler := api.NewPDFHandler(app.pdfExtractor, app.logger)

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/refresh", authHandler.RefreshToken)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			// Generation
			r.Post("/generate", generateHandler.Generate)

			// Chat history
			r.Get("/chats", chatHandler.ListChats)
			r.Get("/chats/{id}", chatHandler.GetChat)
			r.Patch("/chats/{id}", chatHandler.RenameChat)
			r.Delete("/chats/{id}", chatHandler.DeleteChat)

			// Collections
			r.Post("/collections", collectionHandler.CreateCollection)
			r.Get("/collections", collectionHandler.ListCollections)
			r.Get("/collections/{id}", collectionHandler.GetCollection)
			r.Delete("/collections/{id}", collectionHandler.DeleteCollection)

			// Flashcards
			r.Get("/flashcards", flashcardHandler.ListFlashcards)
			r.Get("/flashcards/{id}", flashcardHandler.GetFlashcard)
			r.Patch("/flashcards/{id}", flashcardHandler.MoveFlashcard)
			r.Delete("/flashcards/{id}", flashcardHandler.DeleteFlashcard)

			// PDF extraction
			r.Post("/extract-pdf", pdfHandler.ExtractPDF)
			r.Post("/test-extract-pdf", pdfHandler.TestExtractPDF)
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}

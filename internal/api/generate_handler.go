package api

import (
	"log/slog"
	"net/http"

	"github.com/cardforge/cardforge-api/internal/api/shared"
	"github.com/cardforge/cardforge-api/internal/llm"
	"github.com/cardforge/cardforge-api/internal/platform/logger"
	"github.com/cardforge/cardforge-api/internal/service"
	"github.com/go-playground/validator/v10"
)

// GenerateHandler handles flashcard generation requests.
type GenerateHandler struct {
	generationService service.GenerationService
	validator         *validator.Validate
	logger            *slog.Logger
}

// NewGenerateHandler creates a new GenerateHandler.
func NewGenerateHandler(generationService service.GenerationService, log *slog.Logger) *GenerateHandler {
	if log == nil {
		log = slog.Default()
	}

	return &GenerateHandler{
		generationService: generationService,
		validator:         validator.New(),
		logger:            log.With(slog.String("component", "generate_handler")),
	}
}

// Generate handles POST /generate requests: answer the question, extract
// flashcards, and persist both into the user's chat.
func (h *GenerateHandler) Generate(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	var req GenerateRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	if req.CardCount == 0 {
		req.CardCount = defaultCardCount
	}

	result, err := h.generationService.Generate(r.Context(), userID, service.GenerateParams{
		Question:         req.Question,
		CardCount:        req.CardCount,
		Model:            req.Model,
		WebSearchEnabled: req.WebSearchEnabled,
		ChatID:           req.ChatID,
		History:          historyFromRequest(req.PreviousMessages),
	})
	if err != nil {
		log.Warn("generation request failed",
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()))
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, GenerateResponse{
		ChatID:      result.Chat.ID,
		ChatTitle:   result.Chat.Title,
		Answer:      result.Answer,
		Flashcards:  flashcardsToResponse(result.Flashcards),
		Synthesized: result.Synthesized,
	})
}

// historyFromRequest converts client-supplied prior messages into prompt
// turns. Roles are pre-validated by the request validator.
func historyFromRequest(messages []PreviousMessage) []llm.Turn {
	if len(messages) == 0 {
		return nil
	}

	turns := make([]llm.Turn, 0, len(messages))
	for _, m := range messages {
		role := llm.UserRole
		switch m.Role {
		case "system":
			role = llm.SystemRole
		case "assistant":
			role = llm.AssistantRole
		}
		turns = append(turns, llm.Turn{Role: role, Content: m.Content})
	}
	return turns
}

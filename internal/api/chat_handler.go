package api

import (
	"log/slog"
	"net/http"

	"github.com/cardforge/cardforge-api/internal/api/shared"
	"github.com/cardforge/cardforge-api/internal/service"
	"github.com/go-playground/validator/v10"
)

// ChatHandler handles chat history HTTP requests.
type ChatHandler struct {
	chatService service.ChatService
	validator   *validator.Validate
	logger      *slog.Logger
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(chatService service.ChatService, log *slog.Logger) *ChatHandler {
	if log == nil {
		log = slog.Default()
	}

	return &ChatHandler{
		chatService: chatService,
		validator:   validator.New(),
		logger:      log.With(slog.String("component", "chat_handler")),
	}
}

// ListChats handles GET /chats requests.
func (h *ChatHandler) ListChats(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	chats, err := h.chatService.List(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list chats")
		return
	}

	out := make([]ChatResponse, 0, len(chats))
	for _, chat := range chats {
		out = append(out, chatToResponse(chat))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, out)
}

// GetChat handles GET /chats/{id} requests, returning the chat with its
// messages and flashcards.
func (h *ChatHandler) GetChat(w http.ResponseWriter, r *http.Request) {
	userID, chatID, ok := requireUserAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	detail, err := h.chatService.Get(r.Context(), userID, chatID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, chatDetailToResponse(detail))
}

// RenameChat handles PATCH /chats/{id} requests.
func (h *ChatHandler) RenameChat(w http.ResponseWriter, r *http.Request) {
	userID, chatID, ok := requireUserAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	var req RenameChatRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	chat, err := h.chatService.Rename(r.Context(), userID, chatID, req.Title)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, chatToResponse(chat))
}

// DeleteChat handles DELETE /chats/{id} requests.
func (h *ChatHandler) DeleteChat(w http.ResponseWriter, r *http.Request) {
	userID, chatID, ok := requireUserAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.chatService.Delete(r.Context(), userID, chatID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

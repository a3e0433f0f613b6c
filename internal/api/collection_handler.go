package api

import (
	"log/slog"
	"net/http"

	"github.com/cardforge/cardforge-api/internal/api/shared"
	"github.com/cardforge/cardforge-api/internal/service"
	"github.com/go-playground/validator/v10"
)

// CollectionHandler handles saved-collection HTTP requests.
type CollectionHandler struct {
	collectionService service.CollectionService
	validator         *validator.Validate
	logger            *slog.Logger
}

// NewCollectionHandler creates a new CollectionHandler.
func NewCollectionHandler(collectionService service.CollectionService, log *slog.Logger) *CollectionHandler {
	if log == nil {
		log = slog.Default()
	}

	return &CollectionHandler{
		collectionService: collectionService,
		validator:         validator.New(),
		logger:            log.With(slog.String("component", "collection_handler")),
	}
}

// CreateCollection handles POST /collections requests.
func (h *CollectionHandler) CreateCollection(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	var req CreateCollectionRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	collection, err := h.collectionService.Create(r.Context(), userID, req.Name, req.Topic, req.CardIDs)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, collectionToResponse(collection))
}

// ListCollections handles GET /collections requests.
func (h *CollectionHandler) ListCollections(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	collections, err := h.collectionService.List(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list collections")
		return
	}

	out := make([]CollectionResponse, 0, len(collections))
	for _, collection := range collections {
		out = append(out, collectionToResponse(collection))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, out)
}

// GetCollection handles GET /collections/{id} requests.
func (h *CollectionHandler) GetCollection(w http.ResponseWriter, r *http.Request) {
	userID, collectionID, ok := requireUserAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	detail, err := h.collectionService.Get(r.Context(), userID, collectionID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, collectionDetailToResponse(detail))
}

// DeleteCollection handles DELETE /collections/{id} requests.
func (h *CollectionHandler) DeleteCollection(w http.ResponseWriter, r *http.Request) {
	userID, collectionID, ok := requireUserAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.collectionService.Delete(r.Context(), userID, collectionID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

package api

import (
	"time"

	"github.com/cardforge/cardforge-api/internal/domain"
	"github.com/cardforge/cardforge-api/internal/service"
	"github.com/google/uuid"
)

// Request and response structures for the REST API.

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=12,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	// UserID is the unique identifier for the authenticated user
	UserID uuid.UUID `json:"user_id"`

	// AccessToken is the JWT token used for API authorization
	AccessToken string `json:"token"`

	// RefreshToken is the JWT token used to obtain new access tokens
	RefreshToken string `json:"refresh_token,omitempty"`
}

// RefreshTokenRequest defines the payload for the token refresh endpoint.
type RefreshTokenRequest struct {
	// RefreshToken is the JWT refresh token used to obtain a new token pair
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshTokenResponse defines the successful response for the token refresh endpoint.
type RefreshTokenResponse struct {
	// AccessToken is the new JWT token used for API authorization
	AccessToken string `json:"access_token"`

	// RefreshToken is the new JWT token used to obtain future access tokens
	RefreshToken string `json:"refresh_token"`
}

// GenerateRequest defines the payload for the flashcard generation endpoint.
type GenerateRequest struct {
	// Question is the user's query to answer and turn into flashcards.
	Question string `json:"question" validate:"required,min=1"`

	// CardCount is the number of flashcards to generate. Defaults to 5.
	CardCount int `json:"card_count" validate:"omitempty,min=1,max=10"`

	// Model optionally overrides the configured default model.
	Model string `json:"model,omitempty"`

	// WebSearchEnabled allows the model to invoke web search.
	WebSearchEnabled bool `json:"web_search_enabled,omitempty"`

	// ChatID continues an existing chat when set.
	ChatID *uuid.UUID `json:"chat_id,omitempty"`

	// PreviousMessages carries the conversation so far for clients that
	// keep history themselves. Ignored when chat_id is set, since the
	// stored messages are authoritative.
	PreviousMessages []PreviousMessage `json:"previous_messages,omitempty" validate:"omitempty,max=100,dive"`
}

// PreviousMessage is one client-supplied prior conversation turn.
type PreviousMessage struct {
	Role    string `json:"role" validate:"required,oneof=system user assistant"`
	Content string `json:"content" validate:"required"`
}

// defaultCardCount is used when a generation request omits card_count.
const defaultCardCount = 5

// FlashcardResponse represents one flashcard in API responses.
type FlashcardResponse struct {
	ID           uuid.UUID  `json:"id"`
	Question     string     `json:"question"`
	Answer       string     `json:"answer"`
	ChatID       *uuid.UUID `json:"chat_id,omitempty"`
	CollectionID *uuid.UUID `json:"collection_id,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// GenerateResponse defines the successful response for the generation endpoint.
type GenerateResponse struct {
	ChatID      uuid.UUID           `json:"chat_id"`
	ChatTitle   string              `json:"chat_title"`
	Answer      string              `json:"answer"`
	Flashcards  []FlashcardResponse `json:"flashcards"`
	Synthesized bool                `json:"synthesized,omitempty"`
}

// ChatResponse represents one chat in list responses.
type ChatResponse struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MessageResponse represents one chat message.
type MessageResponse struct {
	ID        uuid.UUID `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// ChatDetailResponse bundles a chat with its messages and flashcards.
type ChatDetailResponse struct {
	Chat       ChatResponse        `json:"chat"`
	Messages   []MessageResponse   `json:"messages"`
	Flashcards []FlashcardResponse `json:"flashcards"`
}

// RenameChatRequest defines the payload for the chat rename endpoint.
type RenameChatRequest struct {
	Title string `json:"title" validate:"required,min=1,max=200"`
}

// CreateCollectionRequest defines the payload for creating a collection.
type CreateCollectionRequest struct {
	Name    string      `json:"name" validate:"required,min=1,max=200"`
	Topic   string      `json:"topic,omitempty" validate:"omitempty,max=500"`
	CardIDs []uuid.UUID `json:"card_ids,omitempty"`
}

// CollectionResponse represents one collection in API responses.
type CollectionResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Topic     string    `json:"topic,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CollectionDetailResponse bundles a collection with its flashcards.
type CollectionDetailResponse struct {
	Collection CollectionResponse  `json:"collection"`
	Flashcards []FlashcardResponse `json:"flashcards"`
}

// MoveFlashcardRequest defines the payload for attaching a flashcard to a
// collection. A null collection_id detaches the card.
type MoveFlashcardRequest struct {
	CollectionID *uuid.UUID `json:"collection_id"`
}

// ExtractPDFRequest defines the JSON payload for base64 PDF uploads.
// PDFData accepts either raw base64 or the data-URL form browsers
// produce from FileReader.readAsDataURL.
type ExtractPDFRequest struct {
	PDFData string `json:"pdfData" validate:"required"`
}

// ExtractPDFResponse defines the response for the PDF extraction
// endpoints. Fallback marks the canned study content returned when the
// document yielded no readable text.
type ExtractPDFResponse struct {
	Success       bool   `json:"success"`
	ExtractedText string `json:"extractedText"`
	Fallback      bool   `json:"fallback,omitempty"`
}

// Conversions from domain objects to response DTOs.

func flashcardToResponse(card *domain.Flashcard) FlashcardResponse {
	return FlashcardResponse{
		ID:           card.ID,
		Question:     card.Question,
		Answer:       card.Answer,
		ChatID:       card.ChatID,
		CollectionID: card.CollectionID,
		CreatedAt:    card.CreatedAt,
	}
}

func flashcardsToResponse(cards []*domain.Flashcard) []FlashcardResponse {
	out := make([]FlashcardResponse, 0, len(cards))
	for _, card := range cards {
		out = append(out, flashcardToResponse(card))
	}
	return out
}

func chatToResponse(chat *domain.Chat) ChatResponse {
	return ChatResponse{
		ID:        chat.ID,
		Title:     chat.Title,
		CreatedAt: chat.CreatedAt,
		UpdatedAt: chat.UpdatedAt,
	}
}

func messagesToResponse(messages []*domain.ChatMessage) []MessageResponse {
	out := make([]MessageResponse, 0, len(messages))
	for _, m := range messages {
		out = append(out, MessageResponse{
			ID:        m.ID,
			Role:      string(m.Role),
			Content:   m.Content,
			CreatedAt: m.CreatedAt,
		})
	}
	return out
}

func collectionToResponse(collection *domain.Collection) CollectionResponse {
	return CollectionResponse{
		ID:        collection.ID,
		Name:      collection.Name,
		Topic:     collection.Topic,
		CreatedAt: collection.CreatedAt,
		UpdatedAt: collection.UpdatedAt,
	}
}

func chatDetailToResponse(detail *service.ChatDetail) ChatDetailResponse {
	return ChatDetailResponse{
		Chat:       chatToResponse(detail.Chat),
		Messages:   messagesToResponse(detail.Messages),
		Flashcards: flashcardsToResponse(detail.Flashcards),
	}
}

func collectionDetailToResponse(detail *service.CollectionDetail) CollectionDetailResponse {
	return CollectionDetailResponse{
		Collection: collectionToResponse(detail.Collection),
		Flashcards: flashcardsToResponse(detail.Flashcards),
	}
}

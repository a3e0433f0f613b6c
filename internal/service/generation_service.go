package service

import (
	"context"
	"database/sql"
	"log/slog"
	"strings"
	"time"

	"github.com/cardforge/cardforge-api/internal/domain"
	"github.com/cardforge/cardforge-api/internal/generation"
	"github.com/cardforge/cardforge-api/internal/llm"
	"github.com/cardforge/cardforge-api/internal/platform/logger"
	"github.com/cardforge/cardforge-api/internal/store"
	"github.com/google/uuid"
)

// maxDerivedTitleLength bounds chat titles derived from the question text.
const maxDerivedTitleLength = 80

// GenerateParams carries the inputs for one generation round.
type GenerateParams struct {
	// Question is the user's query. Required.
	Question string

	// CardCount is the number of flashcards to request, between
	// MinCardCount and MaxCardCount.
	CardCount int

	// Model optionally overrides the configured default model.
	Model string

	// WebSearchEnabled allows the model to invoke the web search tool.
	WebSearchEnabled bool

	// ChatID continues an existing chat when set. When nil, a new chat
	// is created and titled from the question.
	ChatID *uuid.UUID

	// History carries client-supplied prior turns for stateless callers.
	// Ignored when ChatID is set; the persisted messages are
	// authoritative for existing chats.
	History []llm.Turn
}

// GenerateResult is the outcome of one generation round: the answer, the
// extracted flashcards, and the chat both were appended to.
type GenerateResult struct {
	Chat        *domain.Chat
	Answer      string
	Flashcards  []*domain.Flashcard
	Synthesized bool
}

// GenerationService orchestrates the two-call generation flow: obtain a
// long-form answer, extract flashcards from it, and persist the exchange
// atomically.
type GenerationService interface {
	// Generate runs one question-to-flashcards round for the given user.
	Generate(ctx context.Context, userID uuid.UUID, params GenerateParams) (*GenerateResult, error)
}

// txRunner abstracts transaction execution so tests can substitute a
// runner that skips the database.
type txRunner func(ctx context.Context, db *sql.DB, fn store.TxFn) error

// generationService implements GenerationService.
type generationService struct {
	db           *sql.DB
	chatStore    store.ChatStore
	messageStore store.MessageStore
	cardStore    store.FlashcardStore
	answers      *generation.AnswerService
	extractor    *generation.Extractor
	defaultModel string
	logger       *slog.Logger
	runTx        txRunner
}

// Ensure generationService implements GenerationService.
var _ GenerationService = (*generationService)(nil)

// NewGenerationService creates a new GenerationService.
func NewGenerationService(
	db *sql.DB,
	chatStore store.ChatStore,
	messageStore store.MessageStore,
	cardStore store.FlashcardStore,
	answers *generation.AnswerService,
	extractor *generation.Extractor,
	defaultModel string,
	log *slog.Logger,
) GenerationService {
	if log == nil {
		log = slog.Default()
	}

	return &generationService{
		db:           db,
		chatStore:    chatStore,
		messageStore: messageStore,
		cardStore:    cardStore,
		answers:      answers,
		extractor:    extractor,
		defaultModel: defaultModel,
		logger:       log.With(slog.String("component", "generation_service")),
		runTx:        store.RunInTransaction,
	}
}

// Generate implements GenerationService.
func (s *generationService) Generate(
	ctx context.Context,
	userID uuid.UUID,
	params GenerateParams,
) (*GenerateResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	question := strings.TrimSpace(params.Question)
	if question == "" {
		return nil, ErrEmptyQuestion
	}
	if params.CardCount < MinCardCount || params.CardCount > MaxCardCount {
		return nil, ErrInvalidCardCount
	}

	model := params.Model
	if model == "" {
		model = s.defaultModel
	}

	// Resolve the target chat and its prior turns before calling the
	// model, so follow-up questions carry their conversation.
	chat, history, isNewChat, err := s.resolveChat(ctx, userID, params, question)
	if err != nil {
		return nil, err
	}

	answer, err := s.answers.GetAnswer(ctx, question, model, history, params.WebSearchEnabled)
	if err != nil {
		log.Error("answer generation failed",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, NewGenerationServiceError("answer", "failed to generate answer", err)
	}

	outcome, err := s.extractor.Extract(ctx, generation.ExtractionRequest{
		SourceText:   answer,
		DesiredCount: params.CardCount,
		SubjectHint:  question,
		Model:        model,
	})
	if err != nil {
		log.Error("flashcard extraction failed",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, NewGenerationServiceError("extract", "failed to extract flashcards", err)
	}

	userMsg, err := domain.NewChatMessage(chat.ID, userID, domain.MessageRoleUser, question)
	if err != nil {
		return nil, NewGenerationServiceError("persist", "invalid user message", err)
	}
	assistantMsg, err := domain.NewChatMessage(chat.ID, userID, domain.MessageRoleAssistant, answer)
	if err != nil {
		return nil, NewGenerationServiceError("persist", "invalid assistant message", err)
	}

	cards := cardsFromOutcome(outcome, userID, chat.ID)

	err = s.runTx(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		chats := s.chatStore.WithTx(tx)
		messages := s.messageStore.WithTx(tx)
		flashcards := s.cardStore.WithTx(tx)

		if isNewChat {
			if err := chats.Create(ctx, chat); err != nil {
				return err
			}
		} else if err := chats.Touch(ctx, userID, chat.ID); err != nil {
			return err
		}

		if err := messages.Create(ctx, userMsg); err != nil {
			return err
		}
		if err := messages.Create(ctx, assistantMsg); err != nil {
			return err
		}

		return flashcards.CreateMultiple(ctx, cards)
	})
	if err != nil {
		log.Error("failed to persist generation round",
			slog.String("error", err.Error()),
			slog.String("chat_id", chat.ID.String()))
		return nil, NewGenerationServiceError("persist", "failed to save generation results", err)
	}

	log.Info("generation round completed",
		slog.String("chat_id", chat.ID.String()),
		slog.Int("card_count", len(cards)),
		slog.String("stage", outcome.Stage.String()),
		slog.Bool("new_chat", isNewChat))

	return &GenerateResult{
		Chat:        chat,
		Answer:      answer,
		Flashcards:  cards,
		Synthesized: outcome.Synthesized(),
	}, nil
}

// resolveChat loads the existing chat and its history, or prepares a new
// chat titled from the question. New chats carry the client-supplied
// history and are not persisted here; the caller creates them inside the
// same transaction as the messages.
func (s *generationService) resolveChat(
	ctx context.Context,
	userID uuid.UUID,
	params GenerateParams,
	question string,
) (*domain.Chat, []llm.Turn, bool, error) {
	if params.ChatID == nil {
		chat, err := domain.NewChat(userID, deriveChatTitle(question))
		if err != nil {
			return nil, nil, false, NewGenerationServiceError("chat", "invalid chat", err)
		}
		return chat, params.History, true, nil
	}

	chat, err := s.chatStore.GetByID(ctx, userID, *params.ChatID)
	if err != nil {
		return nil, nil, false, err
	}

	stored, err := s.messageStore.ListByChat(ctx, userID, chat.ID)
	if err != nil {
		return nil, nil, false, err
	}

	return chat, historyTurns(stored), false, nil
}

// historyTurns converts persisted messages into prompt turns.
func historyTurns(messages []*domain.ChatMessage) []llm.Turn {
	turns := make([]llm.Turn, 0, len(messages))
	for _, m := range messages {
		role := llm.UserRole
		if m.Role == domain.MessageRoleAssistant {
			role = llm.AssistantRole
		}
		turns = append(turns, llm.Turn{Role: role, Content: m.Content})
	}
	return turns
}

// cardsFromOutcome converts extracted cards into domain flashcards,
// keeping the minted IDs so the response and the stored rows agree.
func cardsFromOutcome(outcome generation.Outcome, userID, chatID uuid.UUID) []*domain.Flashcard {
	now := time.Now().UTC()
	cards := make([]*domain.Flashcard, 0, len(outcome.Cards))
	for _, c := range outcome.Cards {
		id := chatID
		cards = append(cards, &domain.Flashcard{
			ID:        c.ID,
			UserID:    userID,
			ChatID:    &id,
			Question:  c.Question,
			Answer:    c.Answer,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}
	return cards
}

// deriveChatTitle builds a chat title from the opening question,
// truncated on a rune boundary.
func deriveChatTitle(question string) string {
	runes := []rune(question)
	if len(runes) <= maxDerivedTitleLength {
		return question
	}
	return strings.TrimSpace(string(runes[:maxDerivedTitleLength])) + "..."
}

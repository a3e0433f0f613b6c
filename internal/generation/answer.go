package generation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cardforge/cardforge-api/internal/llm"
	"github.com/cardforge/cardforge-api/internal/platform/logger"
	"github.com/cardforge/cardforge-api/internal/search"
)

// System prompts sent verbatim on the answer call. Exact text matters
// for reproducibility.
const (
	answerSystemPrompt = "You are a helpful assistant that provides detailed answers to questions."

	answerSystemPromptWithSearch = "You are a helpful assistant with access to web search. " +
		"When appropriate, search for up-to-date information to answer the query accurately."
)

// unexpectedFormatAnswer is returned when the provider replies with a
// well-formed but contentless response.
const unexpectedFormatAnswer = "The AI processed your query but returned data in an unexpected format."

// errToolResolutionFailed marks tool-resolution irregularities that
// degrade to the templated apology rather than failing the request.
var errToolResolutionFailed = errors.New("tool resolution failed")

// AnswerService acquires a long-form answer to a user question through
// the gateway, resolving at most one tool-invocation round. Ordinary
// model-output irregularities degrade to templated text; only gateway
// failures propagate as errors.
type AnswerService struct {
	gateway llm.Gateway
	search  search.Provider
	logger  *slog.Logger
}

// NewAnswerService creates an AnswerService.
func NewAnswerService(gateway llm.Gateway, searchProvider search.Provider, log *slog.Logger) *AnswerService {
	if gateway == nil {
		panic("gateway cannot be nil")
	}
	if searchProvider == nil {
		panic("search provider cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &AnswerService{
		gateway: gateway,
		search:  searchProvider,
		logger:  log.With(slog.String("component", "answer_service")),
	}
}

// GetAnswer returns a long-form answer to the question, given prior
// conversation turns and a model selection. It always returns a usable
// string unless the gateway itself fails.
func (s *AnswerService) GetAnswer(
	ctx context.Context,
	question string,
	model string,
	history []llm.Turn,
	webSearchEnabled bool,
) (string, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	systemPrompt := answerSystemPrompt
	if webSearchEnabled {
		systemPrompt = answerSystemPromptWithSearch
	}

	turns := make([]llm.Turn, 0, len(history)+2)
	turns = append(turns, llm.Turn{Role: llm.SystemRole, Content: systemPrompt})
	turns = append(turns, history...)
	turns = append(turns, llm.Turn{Role: llm.UserRole, Content: question})

	reply, err := s.gateway.Complete(ctx, llm.Request{
		Turns:        turns,
		Model:        model,
		ToolsEnabled: webSearchEnabled,
	})
	if err != nil {
		return "", err
	}

	switch reply.Kind {
	case llm.TextReply:
		log.Debug("direct answer received",
			slog.Int("answer_length", len(reply.Text)))
		return reply.Text, nil

	case llm.ToolInvocationReply:
		answer, err := s.resolveToolCall(ctx, turns, model, reply.ToolCalls, question)
		if err != nil {
			if errors.Is(err, errToolResolutionFailed) {
				log.Warn("tool resolution failed, degrading to apology",
					slog.String("error", err.Error()))
				return searchApology(question), nil
			}
			return "", err
		}
		return answer, nil

	default:
		log.Warn("empty reply from gateway")
		return unexpectedFormatAnswer, nil
	}
}

// resolveToolCall performs the single permitted tool-resolution round:
// extract the query, obtain search results, and reissue the completion
// with the tool result appended. A second tool invocation or an empty
// follow-up reply is a resolution failure; this never loops.
func (s *AnswerService) resolveToolCall(
	ctx context.Context,
	turns []llm.Turn,
	model string,
	toolCalls []llm.ToolCall,
	subject string,
) (string, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if len(toolCalls) == 0 {
		return "", fmt.Errorf("%w: no tool calls in reply", errToolResolutionFailed)
	}
	call := toolCalls[0]

	query := extractQuery(call.Arguments, subject)
	log.Debug("resolving tool call",
		slog.String("tool", call.Name),
		slog.String("query", query))

	results, err := s.search.Search(ctx, query)
	if err != nil {
		return "", fmt.Errorf("%w: search provider: %v", errToolResolutionFailed, err)
	}

	followUp := make([]llm.Turn, 0, len(turns)+2)
	followUp = append(followUp, turns...)
	followUp = append(followUp, llm.Turn{
		Role:      llm.AssistantRole,
		ToolCalls: toolCalls,
	})
	followUp = append(followUp, llm.Turn{
		Role:       llm.ToolRole,
		Content:    results,
		ToolCallID: call.ID,
	})

	reply, err := s.gateway.Complete(ctx, llm.Request{
		Turns: followUp,
		Model: model,
	})
	if err != nil {
		return "", err
	}

	if reply.Kind != llm.TextReply {
		return "", fmt.Errorf("%w: follow-up reply was not text", errToolResolutionFailed)
	}

	log.Debug("tool call resolved",
		slog.Int("answer_length", len(reply.Text)))
	return reply.Text, nil
}

// extractQuery pulls the query field out of the tool call arguments.
// Malformed arguments fall back silently to the subject.
func extractQuery(argumentsJSON, subject string) string {
	var args struct {
		Query string `json:"query"`
	}
	if err := json.Unmarshal([]byte(argumentsJSON), &args); err != nil {
		return subject
	}
	if args.Query == "" {
		return subject
	}
	return args.Query
}

// searchApology is the degraded answer used when tool resolution fails.
// It keeps the literal question text so downstream extraction still has
// something to work from.
func searchApology(question string) string {
	return fmt.Sprintf(
		"I attempted to search the web for information about %q but encountered an issue "+
			"with the search process. Here's what I know about the topic without web search: "+
			"%s is a topic that might have recent developments that aren't covered in my training data.",
		question, question)
}

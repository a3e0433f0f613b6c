// Package openai implements the llm.Gateway interface against
// OpenAI-compatible chat completion APIs.
package openai

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/cardforge/cardforge-api/internal/config"
	"github.com/cardforge/cardforge-api/internal/llm"
	"github.com/cardforge/cardforge-api/internal/platform/logger"
	openai "github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"
)

const providerName = "openai"

// Provider implements llm.Gateway using the OpenAI chat completion API.
// A client-side rate limiter smooths request bursts below the configured
// requests-per-minute budget before they reach the provider.
type Provider struct {
	api          *openai.Client
	logger       *slog.Logger
	limiter      *rate.Limiter
	defaultModel string
}

// NewProvider creates a Provider from the LLM configuration.
// A custom BaseURL routes requests to OpenAI-compatible backends.
func NewProvider(cfg config.LLMConfig, log *slog.Logger) (*Provider, error) {
	if cfg.OpenAIAPIKey == "" {
		return nil, errors.New("openai API key cannot be empty")
	}

	if log == nil {
		log = slog.Default()
	}

	clientConfig := openai.DefaultConfig(cfg.OpenAIAPIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	rpm := cfg.RequestsPerMinute
	if rpm <= 0 {
		rpm = 60
	}

	return &Provider{
		api:          openai.NewClientWithConfig(clientConfig),
		logger:       log.With(slog.String("component", "openai_gateway")),
		limiter:      rate.NewLimiter(rate.Limit(float64(rpm)/60.0), rpm),
		defaultModel: cfg.DefaultModel,
	}, nil
}

// Ensure Provider implements llm.Gateway
var _ llm.Gateway = (*Provider)(nil)

// webSearchTool is the function declaration advertised to the model when
// tools are enabled. The model fills in the query; resolution happens in
// the answer service.
var webSearchTool = openai.Tool{
	Type: "function",
	Function: &openai.FunctionDefinition{
		Name:        "web_search",
		Description: "Search the web for up-to-date information on a topic.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"query": map[string]any{
					"type":        "string",
					"description": "The search query.",
				},
			},
			"required": []string{"query"},
		},
	},
}

// Complete implements llm.Gateway.Complete
func (p *Provider) Complete(ctx context.Context, req llm.Request) (llm.Reply, error) {
	log := logger.FromContextOrDefault(ctx, p.logger)
	start := time.Now()

	if err := p.limiter.Wait(ctx); err != nil {
		return llm.Reply{}, llm.NewGatewayError(
			llm.TimeoutError, providerName, "rate limiter wait aborted", err)
	}

	model := req.Model
	if model == "" {
		model = p.defaultModel
	}

	apiReq := openai.ChatCompletionRequest{
		Model:    model,
		Messages: mapTurns(req.Turns),
	}

	if req.ToolsEnabled {
		apiReq.Tools = []openai.Tool{webSearchTool}
		apiReq.ToolChoice = "auto"
	}

	resp, err := p.api.CreateChatCompletion(ctx, apiReq)
	if err != nil {
		gwErr := mapAPIError(err)
		log.Error("chat completion failed",
			slog.String("model", model),
			slog.String("error_kind", gwErr.Kind.String()),
			slog.String("error", err.Error()))
		return llm.Reply{}, gwErr
	}

	if len(resp.Choices) == 0 {
		log.Error("chat completion returned no choices",
			slog.String("model", model))
		return llm.Reply{}, llm.NewGatewayError(
			llm.MalformedResponseError, providerName, "response contained no choices", nil)
	}

	choice := resp.Choices[0].Message

	log.Debug("chat completion succeeded",
		slog.String("model", model),
		slog.Int("tool_calls", len(choice.ToolCalls)),
		slog.Int("content_length", len(choice.Content)),
		slog.Int64("duration_ms", time.Since(start).Milliseconds()))

	if len(choice.ToolCalls) > 0 {
		calls := make([]llm.ToolCall, len(choice.ToolCalls))
		for i, tc := range choice.ToolCalls {
			calls[i] = llm.ToolCall{
				ID:        tc.ID,
				Name:      tc.Function.Name,
				Arguments: tc.Function.Arguments,
			}
		}
		return llm.NewToolInvocationReply(calls), nil
	}

	if choice.Content == "" {
		return llm.NewEmptyReply(), nil
	}

	return llm.NewTextReply(choice.Content), nil
}

// mapTurns converts conversation turns into the SDK message format.
func mapTurns(turns []llm.Turn) []openai.ChatCompletionMessage {
	messages := make([]openai.ChatCompletionMessage, len(turns))
	for i, turn := range turns {
		msg := openai.ChatCompletionMessage{
			Role:       string(turn.Role),
			Content:    turn.Content,
			ToolCallID: turn.ToolCallID,
		}

		if len(turn.ToolCalls) > 0 {
			msg.ToolCalls = make([]openai.ToolCall, len(turn.ToolCalls))
			for j, tc := range turn.ToolCalls {
				msg.ToolCalls[j] = openai.ToolCall{
					ID:   tc.ID,
					Type: openai.ToolTypeFunction,
					Function: openai.FunctionCall{
						Name:      tc.Name,
						Arguments: tc.Arguments,
					},
				}
			}
		}

		messages[i] = msg
	}
	return messages
}

// mapAPIError classifies SDK errors into gateway error kinds.
func mapAPIError(err error) *llm.GatewayError {
	if errors.Is(err, context.DeadlineExceeded) {
		return llm.NewGatewayError(llm.TimeoutError, providerName, "request timed out", err)
	}
	if errors.Is(err, context.Canceled) {
		return llm.NewGatewayError(llm.TimeoutError, providerName, "request canceled", err)
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.HTTPStatusCode {
		case 401, 403:
			return llm.NewGatewayError(
				llm.AuthFailureError, providerName, "authentication rejected", err)
		case 429:
			return llm.NewGatewayError(
				llm.RateLimitedError, providerName, "request rate limited", err)
		case 408, 504:
			return llm.NewGatewayError(
				llm.TimeoutError, providerName, "request timed out upstream", err)
		}
	}

	return llm.NewGatewayError(llm.UnknownError, providerName, "completion failed", err)
}

// Package gemini implements the llm.Gateway interface using Google's
// Gemini API. The Gemini gateway answers directly and does not
// participate in tool resolution; the ToolsEnabled flag is ignored.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cardforge/cardforge-api/internal/config"
	"github.com/cardforge/cardforge-api/internal/llm"
	"github.com/cardforge/cardforge-api/internal/platform/logger"
	"google.golang.org/genai"
)

const providerName = "gemini"

// Provider implements llm.Gateway against the Gemini API.
type Provider struct {
	client *genai.Client
	logger *slog.Logger
}

// NewProvider creates a Provider from the LLM configuration.
// Returns an error when the Gemini API key is missing or the client
// cannot be initialized.
func NewProvider(ctx context.Context, cfg config.LLMConfig, log *slog.Logger) (*Provider, error) {
	if cfg.GeminiAPIKey == "" {
		return nil, errors.New("gemini API key cannot be empty")
	}

	if log == nil {
		log = slog.Default()
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &Provider{
		client: client,
		logger: log.With(slog.String("component", "gemini_gateway")),
	}, nil
}

// Ensure Provider implements llm.Gateway
var _ llm.Gateway = (*Provider)(nil)

// Complete implements llm.Gateway.Complete
func (p *Provider) Complete(ctx context.Context, req llm.Request) (llm.Reply, error) {
	log := logger.FromContextOrDefault(ctx, p.logger)
	start := time.Now()

	system, contents := splitTurns(req.Turns)

	var genCfg *genai.GenerateContentConfig
	if system != "" {
		genCfg = &genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		}
	}

	resp, err := p.client.Models.GenerateContent(ctx, req.Model, contents, genCfg)
	if err != nil {
		gwErr := mapAPIError(err)
		log.Error("content generation failed",
			slog.String("model", req.Model),
			slog.String("error_kind", gwErr.Kind.String()),
			slog.String("error", err.Error()))
		return llm.Reply{}, gwErr
	}

	if resp == nil || len(resp.Candidates) == 0 {
		return llm.Reply{}, llm.NewGatewayError(
			llm.MalformedResponseError, providerName, "response contained no candidates", nil)
	}

	text := resp.Text()

	log.Debug("content generation succeeded",
		slog.String("model", req.Model),
		slog.Int("content_length", len(text)),
		slog.Int64("duration_ms", time.Since(start).Milliseconds()))

	if text == "" {
		return llm.NewEmptyReply(), nil
	}

	return llm.NewTextReply(text), nil
}

// splitTurns separates system turns from the conversation and converts
// the rest to Gemini content. Tool turns are folded into user content so
// nothing from the transcript is silently dropped.
func splitTurns(turns []llm.Turn) (string, []*genai.Content) {
	var system string
	contents := make([]*genai.Content, 0, len(turns))

	for _, turn := range turns {
		switch turn.Role {
		case llm.SystemRole:
			if system != "" {
				system += "\n"
			}
			system += turn.Content
		case llm.AssistantRole:
			contents = append(contents, genai.NewContentFromText(turn.Content, genai.RoleModel))
		default:
			contents = append(contents, genai.NewContentFromText(turn.Content, genai.RoleUser))
		}
	}

	return system, contents
}

// mapAPIError classifies Gemini client errors into gateway error kinds.
func mapAPIError(err error) *llm.GatewayError {
	if errors.Is(err, context.DeadlineExceeded) {
		return llm.NewGatewayError(llm.TimeoutError, providerName, "request timed out", err)
	}
	if errors.Is(err, context.Canceled) {
		return llm.NewGatewayError(llm.TimeoutError, providerName, "request canceled", err)
	}

	var apiErr *genai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case 401, 403:
			return llm.NewGatewayError(
				llm.AuthFailureError, providerName, "authentication rejected", err)
		case 429:
			return llm.NewGatewayError(
				llm.RateLimitedError, providerName, "request rate limited", err)
		case 504:
			return llm.NewGatewayError(
				llm.TimeoutError, providerName, "request timed out upstream", err)
		}
	}

	return llm.NewGatewayError(llm.UnknownError, providerName, "generation failed", err)
}

package generation

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cardforge/cardforge-api/internal/llm"
	"github.com/cardforge/cardforge-api/internal/platform/logger"
	"github.com/google/uuid"
)

// extractionSystemPrompt is sent verbatim on the extraction call.
const extractionSystemPrompt = "You are a helpful assistant that creates flashcards from text. " +
	"You MUST respond with valid JSON only, with no additional text, markdown, or explanations."

// extractionPromptFormat states the exact shape and count the model
// must emit.
const extractionPromptFormat = `Create exactly %d flashcards from the following information.
Format your response as a valid JSON object with this EXACT structure:
{
  "flashcards": [
    {"question": "First question?", "answer": "First answer"},
    {"question": "Second question?", "answer": "Second answer"}
  ]
}
DO NOT include any text outside the JSON object.

Here's the information: %s`

// stageFn is one recovery stage: pure text in, drafts out, ok only when
// at least one draft was produced.
type stageFn func(string) ([]Draft, bool)

// Extractor turns a long-form answer into flashcards. One gateway call
// requests strict JSON; the reply then runs through an ordered chain of
// recovery stages, ending in synthesis so a non-empty result is
// guaranteed whenever at least one card was requested.
type Extractor struct {
	gateway llm.Gateway
	logger  *slog.Logger
	stages  []stageFn
}

// NewExtractor creates an Extractor.
func NewExtractor(gateway llm.Gateway, log *slog.Logger) *Extractor {
	if gateway == nil {
		panic("gateway cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &Extractor{
		gateway: gateway,
		logger:  log.With(slog.String("component", "extractor")),
		stages:  []stageFn{parseDirect, parseFenced, scanEmbedded, extractLines},
	}
}

// Extract implements the extraction pipeline. It returns the recovered
// cards unpadded and untruncated; only the synthesis fallback produces
// exactly DesiredCount. The only error source is the gateway call
// itself.
func (e *Extractor) Extract(ctx context.Context, req ExtractionRequest) (Outcome, error) {
	log := logger.FromContextOrDefault(ctx, e.logger)

	reply, err := e.gateway.Complete(ctx, llm.Request{
		Turns: []llm.Turn{
			{Role: llm.SystemRole, Content: extractionSystemPrompt},
			{Role: llm.UserRole, Content: fmt.Sprintf(
				extractionPromptFormat, req.DesiredCount, req.SourceText)},
		},
		Model: req.Model,
	})
	if err != nil {
		return Outcome{}, err
	}

	raw := ""
	if reply.Kind == llm.TextReply {
		raw = reply.Text
	}

	stageNames := []Stage{StageDirectParse, StageMarkdownFence, StageEmbeddedScan, StageLineHeuristic}
	for i, stage := range e.stages {
		drafts, ok := stage(raw)
		if !ok {
			continue
		}

		cards := promote(drafts)
		if len(cards) == 0 {
			continue
		}

		log.Info("flashcards extracted",
			slog.String("stage", stageNames[i].String()),
			slog.Int("count", len(cards)),
			slog.Int("requested", req.DesiredCount))
		return Outcome{Cards: cards, Stage: stageNames[i]}, nil
	}

	log.Warn("all extraction stages failed, synthesizing cards",
		slog.Int("requested", req.DesiredCount))
	return Outcome{
		Cards: promote(synthesize(req.SubjectHint, req.DesiredCount)),
		Stage: StageSynthesis,
	}, nil
}

// promote mints identities for drafts, discarding pairs with an empty
// side so downstream validation cannot fail on model-shaped data.
func promote(drafts []Draft) []Card {
	cards := make([]Card, 0, len(drafts))
	for _, d := range drafts {
		if d.Question == "" || d.Answer == "" {
			continue
		}
		cards = append(cards, Card{
			ID:       uuid.New(),
			Question: d.Question,
			Answer:   d.Answer,
		})
	}
	return cards
}

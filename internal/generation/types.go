package generation

import "github.com/google/uuid"

// Draft is an unvalidated question/answer pair produced mid-pipeline.
// Drafts carry no identity; ids are minted only when a draft is promoted
// to a Card at the pipeline boundary.
type Draft struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Card is a promoted flashcard with a freshly minted id. Identifiers
// appearing in model output are discarded, never trusted.
type Card struct {
	ID       uuid.UUID
	Question string
	Answer   string
}

// Stage identifies which extraction stage produced the cards.
type Stage int

const (
	// StageDirectParse means the raw model reply parsed as the expected JSON.
	StageDirectParse Stage = iota

	// StageMarkdownFence means the JSON was recovered from a fenced code block.
	StageMarkdownFence

	// StageEmbeddedScan means the JSON was found embedded in surrounding prose.
	StageEmbeddedScan

	// StageLineHeuristic means cards were scraped from numbered/prefixed lines.
	StageLineHeuristic

	// StageSynthesis means no extraction succeeded and generic cards were
	// fabricated from the subject hint.
	StageSynthesis
)

// String returns a stable label for the stage, used in logs.
func (s Stage) String() string {
	switch s {
	case StageDirectParse:
		return "direct_parse"
	case StageMarkdownFence:
		return "markdown_fence"
	case StageEmbeddedScan:
		return "embedded_scan"
	case StageLineHeuristic:
		return "line_heuristic"
	case StageSynthesis:
		return "synthesis"
	default:
		return "unknown"
	}
}

// ExtractionRequest describes one extraction pipeline invocation.
// DesiredCount is validated at the HTTP boundary; the pipeline trusts it.
type ExtractionRequest struct {
	// SourceText is the long-form answer to extract flashcards from.
	SourceText string

	// DesiredCount is the number of cards the user asked for, in [1,10].
	DesiredCount int

	// SubjectHint is the original question, used for synthesis fallback.
	SubjectHint string

	// Model selects the provider model for the extraction call.
	Model string
}

// Outcome is the result of one extraction pipeline invocation.
type Outcome struct {
	// Cards are the extracted flashcards in discovery order.
	Cards []Card

	// Stage records which stage produced the cards. Callers can use it
	// to tell full-fidelity extraction from synthesized filler.
	Stage Stage
}

// Synthesized reports whether the cards were fabricated rather than
// extracted from the source text.
func (o Outcome) Synthesized() bool {
	return o.Stage == StageSynthesis
}

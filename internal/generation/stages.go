package generation

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// The recovery stages are pure functions text -> (drafts, ok), tried in
// order by the Extractor. A stage reports ok only when it produced at
// least one draft; anything else falls through to the next stage.

// flashcardsPayload is the schema the model is asked to emit. The
// pointer distinguishes a missing flashcards field from an empty list.
type flashcardsPayload struct {
	Flashcards *[]Draft `json:"flashcards"`
}

// parseDirect attempts to parse the raw reply as the exact expected
// JSON object.
func parseDirect(text string) ([]Draft, bool) {
	return parsePayload(strings.TrimSpace(text))
}

// fenceRegex matches a fenced code block, optionally tagged json,
// containing an object.
var fenceRegex = regexp.MustCompile("(?s)```(?:json)?\\s*(\\{.*?\\})\\s*```")

// parseFenced recovers the payload from a markdown code fence.
func parseFenced(text string) ([]Draft, bool) {
	match := fenceRegex.FindStringSubmatch(text)
	if match == nil {
		return nil, false
	}
	return parsePayload(match[1])
}

// scanEmbedded scans the text for balanced-brace object candidates and
// accepts the first one that parses with a list-typed flashcards field.
func scanEmbedded(text string) ([]Draft, bool) {
	for _, candidate := range balancedObjects(text) {
		if drafts, ok := parsePayload(candidate); ok {
			return drafts, true
		}
	}
	return nil, false
}

var (
	questionPrefixRegex = regexp.MustCompile(`(?i)^(\d+\.|Flashcard \d+:|Q\d+:)`)
	answerPrefixRegex   = regexp.MustCompile(`(?i)^(A\d+:|Answer:)`)
	answerStripRegex    = regexp.MustCompile(`(?i)^(A\d+:|Answer:|-)`)
)

// answerWindow is how many lines past a question line are searched for
// its answer.
const answerWindow = 4

// extractLines scrapes question/answer pairs from free text. A line
// with a numbered, "Flashcard N:", or "QN:" prefix starts a question;
// the answer is the first of the next four lines carrying an "AN:" or
// "Answer:" prefix, or a "-" lead when the question ends in "?".
// Questions without a located answer are discarded.
func extractLines(text string) ([]Draft, bool) {
	lines := strings.Split(text, "\n")
	var drafts []Draft

	for i := 0; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if !questionPrefixRegex.MatchString(line) {
			continue
		}

		question := strings.TrimSpace(questionPrefixRegex.ReplaceAllString(line, ""))
		var answer string

		for j := i + 1; j < len(lines) && j <= i+answerWindow; j++ {
			next := strings.TrimSpace(lines[j])
			if answerPrefixRegex.MatchString(next) ||
				(strings.HasPrefix(next, "-") && strings.HasSuffix(question, "?")) {
				answer = strings.TrimSpace(answerStripRegex.ReplaceAllString(next, ""))
				break
			}
		}

		if question != "" && answer != "" {
			drafts = append(drafts, Draft{Question: question, Answer: answer})
		}
	}

	return drafts, len(drafts) > 0
}

// synthesize fabricates count generic drafts about the subject. It is
// the terminal fallback and always produces exactly count drafts.
func synthesize(subject string, count int) []Draft {
	drafts := make([]Draft, count)
	for i := range drafts {
		drafts[i] = Draft{
			Question: fmt.Sprintf("Question %d about %s?", i+1, subject),
			Answer: fmt.Sprintf(
				"This would contain information about %s relevant to question %d.",
				subject, i+1),
		}
	}
	return drafts
}

// parsePayload parses a candidate JSON object and validates the shape.
// Shape mismatches are rejected so the caller falls through to the next
// stage; unchecked fields are never trusted.
func parsePayload(candidate string) ([]Draft, bool) {
	var payload flashcardsPayload
	if err := json.Unmarshal([]byte(candidate), &payload); err != nil {
		return nil, false
	}
	if payload.Flashcards == nil || len(*payload.Flashcards) == 0 {
		return nil, false
	}
	return *payload.Flashcards, true
}

// balancedObjects returns every substring of text that spans a balanced
// brace pair, in order of appearance. Nested objects are included as
// their own candidates. Braces inside JSON strings are ignored while
// matching.
func balancedObjects(text string) []string {
	var objects []string

	for start := 0; start < len(text); start++ {
		if text[start] != '{' {
			continue
		}
		if end := matchingBrace(text, start); end >= 0 {
			objects = append(objects, text[start:end+1])
		}
	}

	return objects
}

// matchingBrace returns the index of the brace closing the one at
// start, or -1 when the text ends first.
func matchingBrace(text string, start int) int {
	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(text); i++ {
		c := text[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}

	return -1
}

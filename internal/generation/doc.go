// Package generation contains the answer acquisition and flashcard
// extraction logic. It orchestrates sequential LLM calls through the
// llm.Gateway boundary: one call (plus at most one tool-resolution
// round) to obtain a long-form answer, then one call to turn that
// answer into flashcards, with a layered recovery chain that coerces
// whatever text the model returns into the expected shape.
package generation

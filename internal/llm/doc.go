// Package llm defines the conversation types and the Gateway interface
// that abstract the details of LLM provider integration, allowing the
// application to acquire answers and flashcard extractions without
// coupling to a specific external service.
package llm

package llm

import "context"

// Request describes one completion call to a provider.
type Request struct {
	// Turns is the full conversation transcript, oldest first. The first
	// turn is normally the system prompt.
	Turns []Turn

	// Model selects the provider model. An empty value lets the gateway
	// fall back to its configured default.
	Model string

	// ToolsEnabled advertises the web search tool to the model. Providers
	// that cannot invoke tools ignore it.
	ToolsEnabled bool
}

// Gateway is the boundary between the application core and an external
// LLM service. Implementations live under internal/platform.
type Gateway interface {
	// Complete sends the conversation to the model and returns its reply.
	// Errors are reported as *GatewayError so callers can distinguish
	// timeouts, auth failures, and rate limits from provider bugs.
	Complete(ctx context.Context, req Request) (Reply, error)
}

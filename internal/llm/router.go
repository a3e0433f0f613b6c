package llm

import (
	"context"
	"strings"
)

// Router dispatches completion requests to a provider gateway based on
// the requested model name. Models prefixed "gemini-" go to the Gemini
// gateway; everything else, including the empty default, goes to the
// OpenAI-compatible gateway.
type Router struct {
	openai Gateway
	gemini Gateway
}

// NewRouter creates a Router. The gemini gateway may be nil when no
// Gemini credentials are configured; gemini models then fall through to
// the primary gateway, which reports the unknown model upstream.
func NewRouter(openai, gemini Gateway) *Router {
	if openai == nil {
		panic("openai gateway cannot be nil")
	}
	return &Router{
		openai: openai,
		gemini: gemini,
	}
}

// Ensure Router implements Gateway
var _ Gateway = (*Router)(nil)

// Complete implements Gateway.Complete by delegating to the provider
// matching the requested model.
func (r *Router) Complete(ctx context.Context, req Request) (Reply, error) {
	if r.gemini != nil && strings.HasPrefix(req.Model, "gemini-") {
		return r.gemini.Complete(ctx, req)
	}
	return r.openai.Complete(ctx, req)
}

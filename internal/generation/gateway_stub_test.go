package generation

import (
	"context"

	"github.com/cardforge/cardforge-api/internal/llm"
)

// scriptedGateway replays a fixed sequence of replies and records every
// request it receives.
type scriptedGateway struct {
	replies  []llm.Reply
	errs     []error
	requests []llm.Request
}

func (g *scriptedGateway) Complete(ctx context.Context, req llm.Request) (llm.Reply, error) {
	call := len(g.requests)
	g.requests = append(g.requests, req)

	var err error
	if call < len(g.errs) {
		err = g.errs[call]
	}
	if err != nil {
		return llm.Reply{}, err
	}

	if call < len(g.replies) {
		return g.replies[call], nil
	}
	return llm.NewEmptyReply(), nil
}

package llm

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingGateway struct {
	name  string
	calls int
}

func (g *recordingGateway) Complete(ctx context.Context, req Request) (Reply, error) {
	g.calls++
	return NewTextReply(g.name), nil
}

func TestRouterDispatchesByModelPrefix(t *testing.T) {
	openai := &recordingGateway{name: "openai"}
	gemini := &recordingGateway{name: "gemini"}
	router := NewRouter(openai, gemini)

	tests := []struct {
		model string
		want  string
	}{
		{model: "gpt-4o-mini", want: "openai"},
		{model: "", want: "openai"},
		{model: "gemini-2.0-flash", want: "gemini"},
	}

	for _, tt := range tests {
		t.Run("model "+tt.model, func(t *testing.T) {
			reply, err := router.Complete(context.Background(), Request{Model: tt.model})
			require.NoError(t, err)
			assert.Equal(t, tt.want, reply.Text)
		})
	}
}

func TestRouterWithoutGeminiFallsBackToPrimary(t *testing.T) {
	openai := &recordingGateway{name: "openai"}
	router := NewRouter(openai, nil)

	reply, err := router.Complete(context.Background(), Request{Model: "gemini-2.0-flash"})
	require.NoError(t, err)
	assert.Equal(t, "openai", reply.Text)
}

func TestNewRouterRequiresPrimaryGateway(t *testing.T) {
	assert.Panics(t, func() { NewRouter(nil, nil) })
}

func TestGatewayError(t *testing.T) {
	inner := errors.New("status 401")
	err := NewGatewayError(AuthFailureError, "openai", "completion failed", inner)

	assert.Contains(t, err.Error(), "openai")
	assert.Contains(t, err.Error(), "auth_failure")
	assert.ErrorIs(t, err, inner)

	assert.Equal(t, AuthFailureError, ErrorKindOf(fmt.Errorf("wrapped: %w", err)))
	assert.Equal(t, UnknownError, ErrorKindOf(errors.New("plain")))
	assert.Equal(t, UnknownError, ErrorKindOf(nil))
}

func TestReplyConstructors(t *testing.T) {
	text := NewTextReply("hello")
	assert.Equal(t, TextReply, text.Kind)
	assert.Equal(t, "hello", text.Text)

	calls := []ToolCall{{ID: "call_1", Name: "web_search", Arguments: `{"query":"go"}`}}
	tool := NewToolInvocationReply(calls)
	assert.Equal(t, ToolInvocationReply, tool.Kind)
	assert.Len(t, tool.ToolCalls, 1)

	empty := NewEmptyReply()
	assert.Equal(t, EmptyReply, empty.Kind)
	assert.Empty(t, empty.Text)
}

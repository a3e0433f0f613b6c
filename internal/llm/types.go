package llm

// TurnRole identifies the author of a conversation turn.
type TurnRole string

// Valid turn roles. ToolRole carries tool results back to the model after
// a tool invocation round.
const (
	SystemRole    TurnRole = "system"
	UserRole      TurnRole = "user"
	AssistantRole TurnRole = "assistant"
	ToolRole      TurnRole = "tool"
)

// Turn is one entry in the conversation transcript sent to the model.
// ToolCalls is set on assistant turns that requested tool invocations;
// ToolCallID is set on tool turns to link the result to its request.
type Turn struct {
	Role       TurnRole
	Content    string
	ToolCalls  []ToolCall
	ToolCallID string
}

// ToolCall is a tool invocation requested by the model. Arguments is the
// raw JSON argument payload exactly as the model produced it.
type ToolCall struct {
	ID        string
	Name      string
	Arguments string
}

// ReplyKind discriminates the Reply variants.
type ReplyKind int

const (
	// TextReply is a plain text answer.
	TextReply ReplyKind = iota

	// ToolInvocationReply means the model wants one or more tools resolved
	// before it can answer.
	ToolInvocationReply

	// EmptyReply means the provider returned a well-formed response with
	// no usable content.
	EmptyReply
)

// Reply is the provider's response to a Complete call.
type Reply struct {
	Kind ReplyKind

	// Text is the answer content. Set only for TextReply.
	Text string

	// ToolCalls are the requested invocations. Set only for ToolInvocationReply.
	ToolCalls []ToolCall
}

// NewTextReply builds a plain text reply.
func NewTextReply(text string) Reply {
	return Reply{Kind: TextReply, Text: text}
}

// NewToolInvocationReply builds a reply requesting tool resolution.
func NewToolInvocationReply(calls []ToolCall) Reply {
	return Reply{Kind: ToolInvocationReply, ToolCalls: calls}
}

// NewEmptyReply builds a reply signaling the provider produced no content.
func NewEmptyReply() Reply {
	return Reply{Kind: EmptyReply}
}

package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewChatDefaultsTitle(t *testing.T) {
	chat, err := NewChat(uuid.New(), "")

	require.NoError(t, err)
	assert.Equal(t, DefaultChatTitle, chat.Title)
}

func TestNewChatRequiresUser(t *testing.T) {
	chat, err := NewChat(uuid.Nil, "History questions")

	assert.ErrorIs(t, err, ErrEmptyChatUserID)
	assert.Nil(t, chat)
}

func TestChatRename(t *testing.T) {
	chat, err := NewChat(uuid.New(), "Before")
	require.NoError(t, err)

	require.NoError(t, chat.Rename("After"))
	assert.Equal(t, "After", chat.Title)

	assert.ErrorIs(t, chat.Rename(""), ErrEmptyChatTitle)
}

func TestNewChatMessage(t *testing.T) {
	chatID := uuid.New()
	userID := uuid.New()

	tests := []struct {
		name    string
		role    MessageRole
		content string
		wantErr error
	}{
		{name: "user message", role: MessageRoleUser, content: "What is photosynthesis?"},
		{name: "assistant message", role: MessageRoleAssistant, content: "Photosynthesis is..."},
		{name: "invalid role", role: MessageRole("system"), content: "x", wantErr: ErrInvalidMessageRole},
		{name: "empty content", role: MessageRoleUser, content: "", wantErr: ErrEmptyMessageContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := NewChatMessage(chatID, userID, tt.role, tt.content)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, chatID, msg.ChatID)
			assert.Equal(t, tt.role, msg.Role)
		})
	}
}

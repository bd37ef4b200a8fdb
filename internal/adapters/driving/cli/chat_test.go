package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/4ug-aug/Metabrain/internal/core/domain"
)

func setupChatTest(mock *mockRagService) func() {
	oldRag := ragService
	ragService = mock
	return func() {
		ragService = oldRag
	}
}

func TestChatCmd_Use(t *testing.T) {
	assert.Equal(t, "chat [question]", chatCmd.Use)
}

func TestChatCmd_OneShot(t *testing.T) {
	mock := &mockRagService{answer: "Kubernetes upgrades are documented in ops/upgrade.md."}
	defer setupChatTest(mock)()

	out, err := executeCommand("chat", "how do I upgrade the cluster?")
	require.NoError(t, err)
	assert.Equal(t, []string{"how do I upgrade the cluster?"}, mock.questions)
	assert.Contains(t, out, "ops/upgrade.md")
}

func TestChatCmd_AnswerError(t *testing.T) {
	mock := &mockRagService{answerErr: errors.New("ollama unreachable")}
	defer setupChatTest(mock)()

	_, err := executeCommand("chat", "anything")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ollama unreachable")
}

func TestChatCmd_RequiresService(t *testing.T) {
	oldRag := ragService
	ragService = nil
	defer func() { ragService = oldRag }()

	_, err := executeCommand("chat", "question")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func TestChatHistoryCmd(t *testing.T) {
	t.Run("prints turns with role labels", func(t *testing.T) {
		mock := &mockRagService{history: []domain.ChatMessage{
			{Role: domain.RoleUser, Content: "what changed?"},
			{Role: domain.RoleAssistant, Content: "the deploy pipeline"},
		}}
		defer setupChatTest(mock)()

		out, err := executeCommand("chat", "history")
		require.NoError(t, err)
		assert.Contains(t, out, "You: what changed?")
		assert.Contains(t, out, "Metabrain: the deploy pipeline")
	})

	t.Run("empty log", func(t *testing.T) {
		defer setupChatTest(&mockRagService{})()

		out, err := executeCommand("chat", "history")
		require.NoError(t, err)
		assert.Contains(t, out, "No conversation yet")
	})
}

func TestChatClearCmd(t *testing.T) {
	mock := &mockRagService{}
	defer setupChatTest(mock)()

	out, err := executeCommand("chat", "clear")
	require.NoError(t, err)
	assert.True(t, mock.cleared)
	assert.Contains(t, out, "Conversation cleared")
}

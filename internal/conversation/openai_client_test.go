package conversation

import (
	"context"
	"errors"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockCompleter struct {
	req  openai.ChatCompletionRequest
	resp openai.ChatCompletionResponse
	err  error
}

func (m *mockCompleter) CreateChatCompletion(_ context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	m.req = req
	return m.resp, m.err
}

func completionWith(text string) openai.ChatCompletionResponse {
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{{
			Message:      openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: text},
			FinishReason: openai.FinishReasonStop,
		}},
	}
}

func TestOpenAICompletePrependsSystemPrompts(t *testing.T) {
	mock := &mockCompleter{resp: completionWith("  hello there  ")}
	c := NewOpenAIClient(mock, "gpt-4o", 0)

	resp, err := c.Complete(context.Background(), LLMRequest{
		System:   []string{"be helpful"},
		Messages: []ChatMessage{{Role: ChatRoleUser, Content: "hi"}},
	})
	require.NoError(t, err)

	assert.Equal(t, "hello there", resp.Text)
	assert.Equal(t, "stop", resp.StopReason)
	require.Len(t, mock.req.Messages, 2)
	assert.Equal(t, openai.ChatMessageRoleSystem, mock.req.Messages[0].Role)
	assert.Equal(t, "be helpful", mock.req.Messages[0].Content)
	assert.Equal(t, openai.ChatMessageRoleUser, mock.req.Messages[1].Role)
}

func TestOpenAICompleteDefaultsModel(t *testing.T) {
	mock := &mockCompleter{resp: completionWith("ok")}
	c := NewOpenAIClient(mock, "gpt-4o", 0)

	_, err := c.Complete(context.Background(), LLMRequest{Messages: []ChatMessage{{Role: ChatRoleUser, Content: "hi"}}})
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o", mock.req.Model)

	_, err = c.Complete(context.Background(), LLMRequest{Model: "gpt-4o-mini", Messages: []ChatMessage{{Role: ChatRoleUser, Content: "hi"}}})
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o-mini", mock.req.Model)
}

func TestOpenAICompleteWrapsError(t *testing.T) {
	mock := &mockCompleter{err: errors.New("boom")}
	c := NewOpenAIClient(mock, "gpt-4o", 0)

	_, err := c.Complete(context.Background(), LLMRequest{Messages: []ChatMessage{{Role: ChatRoleUser, Content: "hi"}}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "openai completion failed")
}

func TestOpenAICompleteNoChoices(t *testing.T) {
	mock := &mockCompleter{}
	c := NewOpenAIClient(mock, "gpt-4o", 0)

	_, err := c.Complete(context.Background(), LLMRequest{Messages: []ChatMessage{{Role: ChatRoleUser, Content: "hi"}}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no choices")
}

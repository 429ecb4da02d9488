package conversation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/technosurge/leadflow/internal/leads"
)

func TestExtractMergesOverTurns(t *testing.T) {
	llm := newScriptedLLM()
	ex := NewLeadExtractor(llm, "gpt-4o", nil, nil)
	ctx := context.Background()

	llm.extractReply = `{"name":"Alice","email":"null","refused":false}`
	lead := ex.Extract(ctx, "I'm Alice", leads.New())
	assert.Equal(t, "Alice", lead.Name)
	assert.Equal(t, leads.NoEmail, lead.Email)

	// Email revealed later must not clobber the captured name.
	llm.extractReply = `{"name":"null","email":"bob@x.com","refused":false}`
	lead = ex.Extract(ctx, "reach me at bob@x.com", lead)
	assert.Equal(t, "Alice", lead.Name)
	assert.Equal(t, "bob@x.com", lead.Email)
}

func TestExtractKeepsPreviousOnServiceError(t *testing.T) {
	llm := newScriptedLLM()
	llm.extractErr = errors.New("rate limited")
	ex := NewLeadExtractor(llm, "gpt-4o", nil, nil)

	prev := leads.New().Merge("Alice", "alice@example.com")
	got := ex.Extract(context.Background(), "anything", prev)
	assert.Equal(t, prev, got)
}

func TestExtractKeepsPreviousOnMalformedJSON(t *testing.T) {
	llm := newScriptedLLM()
	llm.extractReply = "Sure! The name is Alice."
	ex := NewLeadExtractor(llm, "gpt-4o", nil, nil)

	prev := leads.New().Merge("Alice", "alice@example.com")
	got := ex.Extract(context.Background(), "anything", prev)
	assert.Equal(t, prev, got)
}

func TestExtractRecordsRefusal(t *testing.T) {
	llm := newScriptedLLM()
	llm.extractReply = `{"name":"null","email":"null","refused":true}`
	ex := NewLeadExtractor(llm, "gpt-4o", nil, nil)

	got := ex.Extract(context.Background(), "I won't share my email", leads.New())
	assert.True(t, got.Refused)
	assert.False(t, got.HasEmail())
}

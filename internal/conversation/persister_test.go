package conversation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/technosurge/leadflow/internal/leads"
	"github.com/technosurge/leadflow/internal/sheet"
)

type failingRowStore struct{}

func (failingRowStore) Append(context.Context, sheet.Row) error { return errors.New("sheet down") }
func (failingRowStore) Rows(context.Context) ([]sheet.Row, error) {
	return nil, errors.New("sheet down")
}
func (failingRowStore) UpdateStatus(context.Context, string, string) error {
	return errors.New("sheet down")
}

func TestSaveAppendsRowWithSummary(t *testing.T) {
	llm := newScriptedLLM()
	llm.summaryReply = "Alice wants a demo of our missed-lead agents."
	store := sheet.NewMemoryStore()
	p := NewLeadPersister(llm, "gpt-4o-mini", store, nil, nil)

	lead := leads.New().Merge("Alice", "alice@example.com")
	got, saved := p.Save(context.Background(), lead, []ChatMessage{{Role: ChatRoleUser, Content: "hi"}})

	assert.True(t, saved)
	assert.Equal(t, "Alice wants a demo of our missed-lead agents.", got.Summary)

	rows, err := store.Rows(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Alice", rows[0].Name)
	assert.Equal(t, "alice@example.com", rows[0].Email)
	assert.Equal(t, got.Summary, rows[0].Summary)
}

func TestSaveWithoutStoreIsNoOp(t *testing.T) {
	p := NewLeadPersister(newScriptedLLM(), "gpt-4o-mini", nil, nil, nil)

	lead := leads.New().Merge("Alice", "alice@example.com")
	got, saved := p.Save(context.Background(), lead, nil)
	assert.False(t, saved)
	assert.Equal(t, lead, got)
}

func TestSaveStillAppendsWhenSummaryFails(t *testing.T) {
	llm := newScriptedLLM()
	llm.summaryErr = errors.New("timeout")
	store := sheet.NewMemoryStore()
	p := NewLeadPersister(llm, "gpt-4o-mini", store, nil, nil)

	lead := leads.New().Merge("Alice", "alice@example.com")
	got, saved := p.Save(context.Background(), lead, nil)

	assert.True(t, saved)
	assert.Empty(t, got.Summary)

	rows, err := store.Rows(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
}

func TestSaveTwiceAppendsTwoRows(t *testing.T) {
	store := sheet.NewMemoryStore()
	p := NewLeadPersister(newScriptedLLM(), "gpt-4o-mini", store, nil, nil)

	lead := leads.New().Merge("Alice", "alice@example.com")
	_, saved := p.Save(context.Background(), lead, nil)
	assert.True(t, saved)
	_, saved = p.Save(context.Background(), lead, nil)
	assert.True(t, saved)

	// Save never deduplicates: the session state machine is the only guard
	// against re-invocation, so a second call appends a second row.
	rows, err := store.Rows(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, rows[0].Email, rows[1].Email)
}

func TestSaveReportsAppendFailure(t *testing.T) {
	p := NewLeadPersister(newScriptedLLM(), "gpt-4o-mini", failingRowStore{}, nil, nil)

	lead := leads.New().Merge("Alice", "alice@example.com")
	_, saved := p.Save(context.Background(), lead, nil)
	assert.False(t, saved)
}

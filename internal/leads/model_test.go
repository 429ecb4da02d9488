package leads

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewLeadSentinels(t *testing.T) {
	l := New()
	assert.Equal(t, UnknownName, l.Name)
	assert.Equal(t, NoEmail, l.Email)
	assert.False(t, l.HasName())
	assert.False(t, l.HasEmail())
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "there", New().DisplayName())

	l := New()
	l.Name = "Alice"
	assert.Equal(t, "Alice", l.DisplayName())
}

func TestMergeKeepsPreviousOnNull(t *testing.T) {
	l := New().Merge("Alice", "null")
	assert.Equal(t, "Alice", l.Name)
	assert.Equal(t, NoEmail, l.Email)

	// A later turn that only reveals the email must not clobber the name.
	l = l.Merge("NULL", "bob@x.com")
	assert.Equal(t, "Alice", l.Name)
	assert.Equal(t, "bob@x.com", l.Email)
	assert.True(t, l.HasName())
	assert.True(t, l.HasEmail())
}

func TestMergeEmptyMeansNoNewInformation(t *testing.T) {
	l := New().Merge("Alice", "alice@example.com")
	l = l.Merge("", "")
	assert.Equal(t, "Alice", l.Name)
	assert.Equal(t, "alice@example.com", l.Email)
}

func TestMergeTrimsWhitespace(t *testing.T) {
	l := New().Merge("  Alice  ", "  ")
	assert.Equal(t, "Alice", l.Name)
	assert.Equal(t, NoEmail, l.Email)
}

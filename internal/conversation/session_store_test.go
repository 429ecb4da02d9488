package conversation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySessionStoreRoundTrip(t *testing.T) {
	store := NewMemorySessionStore(time.Minute, nil)
	defer store.Close()
	ctx := context.Background()

	got, err := store.Get(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, got)

	sess := NewSession()
	sess.Append(ChatRoleUser, "hello")
	require.NoError(t, store.Put(ctx, "s1", sess))

	got, err = store.Get(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Len(t, got.Messages, 1)
	assert.Equal(t, StatusOngoing, got.Status)
}

func TestMemorySessionStoreDelete(t *testing.T) {
	store := NewMemorySessionStore(time.Minute, nil)
	defer store.Close()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "s1", NewSession()))
	require.NoError(t, store.Delete(ctx, "s1"))

	got, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemorySessionStoreExpiry(t *testing.T) {
	store := NewMemorySessionStore(20*time.Millisecond, nil)
	defer store.Close()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "s1", NewSession()))
	time.Sleep(40 * time.Millisecond)

	got, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Nil(t, got, "entry must expire after its TTL")
}

func TestMemorySessionStorePutRefreshesTTL(t *testing.T) {
	store := NewMemorySessionStore(50*time.Millisecond, nil)
	defer store.Close()
	ctx := context.Background()

	sess := NewSession()
	require.NoError(t, store.Put(ctx, "s1", sess))
	time.Sleep(30 * time.Millisecond)
	require.NoError(t, store.Put(ctx, "s1", sess))
	time.Sleep(30 * time.Millisecond)

	got, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.NotNil(t, got, "re-put must extend the entry's life")
}

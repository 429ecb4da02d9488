package conversation

import (
	"context"
	"sync"
	"time"

	"github.com/technosurge/leadflow/pkg/logging"
)

// SessionStore holds per-session state keyed by session id. Implementations
// must expire entries so the store does not grow for the lifetime of the
// process.
type SessionStore interface {
	// Get returns the stored session, or (nil, nil) when none exists.
	Get(ctx context.Context, sessionID string) (*Session, error)
	// Put stores the session and refreshes its TTL.
	Put(ctx context.Context, sessionID string, sess *Session) error
	// Delete removes the session if present.
	Delete(ctx context.Context, sessionID string) error
}

// MemorySessionStore is an in-process SessionStore with TTL-based eviction.
type MemorySessionStore struct {
	ttl    time.Duration
	logger *logging.Logger

	mu      sync.RWMutex
	entries map[string]memoryEntry

	stop chan struct{}
	once sync.Once
}

type memoryEntry struct {
	sess      *Session
	expiresAt time.Time
}

// NewMemorySessionStore creates a memory-backed store whose entries expire
// ttl after their last Put. A background sweeper reclaims expired entries.
func NewMemorySessionStore(ttl time.Duration, logger *logging.Logger) *MemorySessionStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	if logger == nil {
		logger = logging.Default()
	}
	s := &MemorySessionStore{
		ttl:     ttl,
		logger:  logger,
		entries: make(map[string]memoryEntry),
		stop:    make(chan struct{}),
	}
	go s.sweep()
	return s
}

func (s *MemorySessionStore) Get(ctx context.Context, sessionID string) (*Session, error) {
	s.mu.RLock()
	entry, ok := s.entries[sessionID]
	s.mu.RUnlock()
	if !ok || time.Now().After(entry.expiresAt) {
		return nil, nil
	}
	return entry.sess, nil
}

func (s *MemorySessionStore) Put(ctx context.Context, sessionID string, sess *Session) error {
	s.mu.Lock()
	s.entries[sessionID] = memoryEntry{sess: sess, expiresAt: time.Now().Add(s.ttl)}
	s.mu.Unlock()
	return nil
}

func (s *MemorySessionStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	delete(s.entries, sessionID)
	s.mu.Unlock()
	return nil
}

// Close stops the background sweeper.
func (s *MemorySessionStore) Close() {
	s.once.Do(func() { close(s.stop) })
}

func (s *MemorySessionStore) sweep() {
	interval := s.ttl / 10
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-s.stop:
			return
		case now := <-ticker.C:
			s.mu.Lock()
			for id, entry := range s.entries {
				if now.After(entry.expiresAt) {
					delete(s.entries, id)
				}
			}
			s.mu.Unlock()
		}
	}
}

var _ SessionStore = (*MemorySessionStore)(nil)

package sheet

import (
	"context"
	"sync"
)

// MemoryStore is an in-memory RowStore used in tests and local development.
type MemoryStore struct {
	mu   sync.RWMutex
	rows []Row
}

// NewMemoryStore creates an empty in-memory row store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Append adds a lead row.
func (s *MemoryStore) Append(ctx context.Context, row Row) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append(s.rows, row)
	return nil
}

// Rows returns a copy of all rows.
func (s *MemoryStore) Rows(ctx context.Context) ([]Row, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Row, len(s.rows))
	copy(out, s.rows)
	return out, nil
}

// UpdateStatus writes the status of the first row matching the email.
func (s *MemoryStore) UpdateStatus(ctx context.Context, email, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.rows {
		if s.rows[i].Email == email {
			s.rows[i].Status = status
			return nil
		}
	}
	return ErrRowNotFound
}

var _ RowStore = (*MemoryStore)(nil)

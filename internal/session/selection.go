package session

import (
	"sync"

	"mc-control-bot/internal/server"
)

// SelectionStore maps a chat to its currently selected server. A selection is
// a sticky preference: it never expires, only a new picker resolution
// overwrites it.
type SelectionStore struct {
	mu sync.RWMutex
	m  map[int64]server.ID
}

func NewSelectionStore() *SelectionStore {
	return &SelectionStore{m: make(map[int64]server.ID)}
}

func (s *SelectionStore) Set(chatID int64, id server.ID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[chatID] = id
}

func (s *SelectionStore) Get(chatID int64) (server.ID, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.m[chatID]
	return id, ok
}

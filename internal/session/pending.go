package session

import (
	"sync"
	"time"
)

// ActionKind is a multi-step command awaiting a follow-up reply.
type ActionKind string

const (
	ActionSay           ActionKind = "say"
	ActionCustomCommand ActionKind = "custom_command"
)

// Command returns the slash command that started the action.
func (k ActionKind) Command() string {
	switch k {
	case ActionSay:
		return "/say"
	case ActionCustomCommand:
		return "/custom_command"
	}
	return string(k)
}

type PendingAction struct {
	Kind      ActionKind
	UserID    int64
	CreatedAt time.Time
}

// PendingStore keeps at most one in-progress multi-step action per chat.
// Completion goes through CompareAndDelete and eviction through Expire, both
// single locked operations, so a racing sweep and a continuation can never
// both consume the same entry.
type PendingStore struct {
	mu sync.Mutex
	m  map[int64]PendingAction
}

func NewPendingStore() *PendingStore {
	return &PendingStore{m: make(map[int64]PendingAction)}
}

// Set records a new pending action for the chat, replacing any existing one.
func (s *PendingStore) Set(chatID int64, kind ActionKind, userID int64, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[chatID] = PendingAction{Kind: kind, UserID: userID, CreatedAt: now}
}

func (s *PendingStore) Get(chatID int64) (PendingAction, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.m[chatID]
	return a, ok
}

// CompareAndDelete removes the chat's pending action only if it is still the
// given one. Returns false when the entry was already evicted or replaced.
func (s *PendingStore) CompareAndDelete(chatID int64, action PendingAction) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.m[chatID]
	if !ok || cur != action {
		return false
	}
	delete(s.m, chatID)
	return true
}

// Expire removes and returns every action created before cutoff. An entry is
// returned by exactly one Expire call.
func (s *PendingStore) Expire(cutoff time.Time) map[int64]PendingAction {
	s.mu.Lock()
	defer s.mu.Unlock()
	var expired map[int64]PendingAction
	for chatID, a := range s.m {
		if a.CreatedAt.Before(cutoff) {
			if expired == nil {
				expired = make(map[int64]PendingAction)
			}
			expired[chatID] = a
			delete(s.m, chatID)
		}
	}
	return expired
}

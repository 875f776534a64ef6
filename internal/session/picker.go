package session

import (
	"sync"
	"time"
)

// Picker is the ownership record for an in-flight server-selection keyboard,
// keyed by the message the keyboard is attached to.
type Picker struct {
	OwnerID   int64
	ChatID    int64
	CreatedAt time.Time
}

type ResolveStatus int

const (
	ResolveOK ResolveStatus = iota
	ResolveNotOwner
	ResolveMissing
)

type PickerStore struct {
	mu sync.Mutex
	m  map[int]Picker
}

func NewPickerStore() *PickerStore {
	return &PickerStore{m: make(map[int]Picker)}
}

func (s *PickerStore) Put(messageID int, ownerID, chatID int64, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[messageID] = Picker{OwnerID: ownerID, ChatID: chatID, CreatedAt: now}
}

// Resolve removes the picker record, but only when userID is its owner.
// A non-owner reply leaves the record in place.
func (s *PickerStore) Resolve(messageID int, userID int64) (Picker, ResolveStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.m[messageID]
	if !ok {
		return Picker{}, ResolveMissing
	}
	if p.OwnerID != userID {
		return Picker{}, ResolveNotOwner
	}
	delete(s.m, messageID)
	return p, ResolveOK
}

// Expire removes and returns every picker created before cutoff.
func (s *PickerStore) Expire(cutoff time.Time) map[int]Picker {
	s.mu.Lock()
	defer s.mu.Unlock()
	var expired map[int]Picker
	for messageID, p := range s.m {
		if p.CreatedAt.Before(cutoff) {
			if expired == nil {
				expired = make(map[int]Picker)
			}
			expired[messageID] = p
			delete(s.m, messageID)
		}
	}
	return expired
}

package session

import (
	"sync"
	"time"

	"mc-control-bot/internal/server"
)

// CooldownKey identifies one rate-limited action in one chat against one
// server.
type CooldownKey struct {
	ChatID   int64
	ServerID server.ID
	Action   string
}

// CooldownLedger records the last successful use of rate-limited actions.
// Entries have no behavioral effect once the window has passed; Expire exists
// only to bound memory.
type CooldownLedger struct {
	mu sync.Mutex
	m  map[CooldownKey]time.Time
}

func NewCooldownLedger() *CooldownLedger {
	return &CooldownLedger{m: make(map[CooldownKey]time.Time)}
}

// Remaining reports how long the key must still wait inside the window.
// Zero means the action is ready to run.
func (l *CooldownLedger) Remaining(key CooldownKey, window time.Duration, now time.Time) time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()
	lastUsed, ok := l.m[key]
	if !ok {
		return 0
	}
	if left := window - now.Sub(lastUsed); left > 0 {
		return left
	}
	return 0
}

// MarkUsed records a successful execution. Callers must not mark failed ones,
// so the user may retry immediately.
func (l *CooldownLedger) MarkUsed(key CooldownKey, now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.m[key] = now
}

// Expire drops records last used before cutoff and returns how many.
func (l *CooldownLedger) Expire(cutoff time.Time) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for key, lastUsed := range l.m {
		if lastUsed.Before(cutoff) {
			delete(l.m, key)
			n++
		}
	}
	return n
}

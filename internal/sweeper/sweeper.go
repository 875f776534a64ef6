package sweeper

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"mc-control-bot/internal/session"
)

// Notifier delivers the compensating side effects of an eviction.
type Notifier interface {
	PendingExpired(chatID int64, action session.PendingAction)
	PickerExpired(chatID int64, messageID int)
}

// Sweeper периодически вычищает просроченное состояние диалогов.
type Sweeper struct {
	cron     *cron.Cron
	interval time.Duration

	pending   *session.PendingStore
	pickers   *session.PickerStore
	cooldowns *session.CooldownLedger
	notifier  Notifier

	actionTimeout     time.Duration
	cooldownRetention time.Duration

	now func() time.Time
}

func New(
	interval time.Duration,
	pending *session.PendingStore,
	pickers *session.PickerStore,
	cooldowns *session.CooldownLedger,
	notifier Notifier,
	actionTimeout time.Duration,
	cooldownRetention time.Duration,
) *Sweeper {
	return &Sweeper{
		cron:              cron.New(cron.WithLocation(time.UTC)),
		interval:          interval,
		pending:           pending,
		pickers:           pickers,
		cooldowns:         cooldowns,
		notifier:          notifier,
		actionTimeout:     actionTimeout,
		cooldownRetention: cooldownRetention,
		now:               time.Now,
	}
}

// Start schedules the periodic sweep.
func (s *Sweeper) Start() error {
	if _, err := s.cron.AddFunc(fmt.Sprintf("@every %s", s.interval), s.RunOnce); err != nil {
		return err
	}
	s.cron.Start()
	log.Printf("sweeper started, interval %s", s.interval)
	return nil
}

// Stop halts scheduling and waits for an in-flight pass, at most 5s.
func (s *Sweeper) Stop() {
	ctx := s.cron.Stop()
	select {
	case <-ctx.Done():
	case <-time.After(5 * time.Second):
		log.Printf("sweeper stop: pass still running, not waiting further")
	}
	log.Printf("sweeper stopped")
}

// RunOnce executes one sweep pass. The stores evict atomically, so an entry
// is reported by exactly one pass even if passes overlap.
func (s *Sweeper) RunOnce() {
	now := s.now()

	for chatID, a := range s.pending.Expire(now.Add(-s.actionTimeout)) {
		log.Printf("expired pending action %s for chat_id=%d", a.Kind, chatID)
		s.notifier.PendingExpired(chatID, a)
	}

	for messageID, p := range s.pickers.Expire(now.Add(-s.actionTimeout)) {
		log.Printf("expired server picker message_id=%d chat_id=%d", messageID, p.ChatID)
		s.notifier.PickerExpired(p.ChatID, messageID)
	}

	if n := s.cooldowns.Expire(now.Add(-s.cooldownRetention)); n > 0 {
		log.Printf("dropped %d stale cooldown records", n)
	}
}

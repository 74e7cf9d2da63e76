package firepit

import (
	"sync"
	"time"
)

// ReplyLimiter enforces the rolling-hour reply quota and remembers when
// the bot last replied per channel. One limiter per bot identity.
type ReplyLimiter struct {
	mu            sync.Mutex
	maxPerHour    int
	history       []time.Time
	lastByChannel map[string]time.Time
}

// NewReplyLimiter creates a limiter allowing maxPerHour replies in any
// rolling hour.
func NewReplyLimiter(maxPerHour int) *ReplyLimiter {
	return &ReplyLimiter{
		maxPerHour:    maxPerHour,
		history:       make([]time.Time, 0, 16),
		lastByChannel: make(map[string]time.Time),
	}
}

// Allow returns true if the hourly quota leaves room at now.
func (l *ReplyLimiter) Allow(now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := now.Add(-1 * time.Hour)
	kept := l.history[:0]
	for _, t := range l.history {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	l.history = kept
	return len(l.history) < l.maxPerHour
}

// Record notes a reply sent to channelID at now. Call after a successful
// send.
func (l *ReplyLimiter) Record(channelID string, now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.history = append(l.history, now)
	l.lastByChannel[channelID] = now
}

// LastReply returns when the bot last replied in channelID, zero if never.
func (l *ReplyLimiter) LastReply(channelID string) time.Time {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lastByChannel[channelID]
}

// Restore seeds the limiter from persisted bookkeeping, dropping entries
// older than the rolling hour.
func (l *ReplyLimiter) Restore(lastByChannel map[string]time.Time, history []time.Time, now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	cutoff := now.Add(-1 * time.Hour)
	for _, t := range history {
		if t.After(cutoff) {
			l.history = append(l.history, t)
		}
	}
	for ch, t := range lastByChannel {
		l.lastByChannel[ch] = t
	}
}

// Snapshot returns copies of the limiter state for persistence.
func (l *ReplyLimiter) Snapshot() (map[string]time.Time, []time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	last := make(map[string]time.Time, len(l.lastByChannel))
	for ch, t := range l.lastByChannel {
		last[ch] = t
	}
	history := make([]time.Time, len(l.history))
	copy(history, l.history)
	return last, history
}

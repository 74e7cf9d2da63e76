package firepit

import (
	"sort"
	"sync"
)

// ChannelCache is the bounded window of recent messages for one channel.
// Live push events land in an inbox from the session goroutine; the
// monitor drains the inbox at the top of each tick, so the window itself
// is only ever touched by the owning monitor.
type ChannelCache struct {
	mu       sync.Mutex
	capacity int
	window   []Message
	inbox    []Message
}

// NewChannelCache creates a cache holding at most capacity messages.
func NewChannelCache(capacity int) *ChannelCache {
	if capacity <= 0 {
		capacity = 20
	}
	return &ChannelCache{capacity: capacity}
}

// Push appends a live message to the inbox. Safe to call from any
// goroutine.
func (c *ChannelCache) Push(m Message) {
	c.mu.Lock()
	c.inbox = append(c.inbox, m)
	c.mu.Unlock()
}

// Sync drains the inbox, merges it with freshly fetched history, dedupes
// by message ID, sorts by timestamp and trims to capacity. Returns the
// resulting window oldest first.
func (c *ChannelCache) Sync(fetched []Message) []Message {
	c.mu.Lock()
	defer c.mu.Unlock()

	merged := make([]Message, 0, len(c.window)+len(fetched)+len(c.inbox))
	merged = append(merged, c.window...)
	merged = append(merged, fetched...)
	merged = append(merged, c.inbox...)
	c.inbox = nil

	seen := make(map[string]struct{}, len(merged))
	deduped := merged[:0]
	for _, m := range merged {
		if _, dup := seen[m.ID]; dup {
			continue
		}
		seen[m.ID] = struct{}{}
		deduped = append(deduped, m)
	}

	sort.SliceStable(deduped, func(i, j int) bool {
		return deduped[i].Timestamp.Before(deduped[j].Timestamp)
	})
	if len(deduped) > c.capacity {
		deduped = deduped[len(deduped)-c.capacity:]
	}

	c.window = append(c.window[:0:0], deduped...)
	out := make([]Message, len(c.window))
	copy(out, c.window)
	return out
}

// Window returns a copy of the current window, oldest first.
func (c *ChannelCache) Window() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Message, len(c.window))
	copy(out, c.window)
	return out
}

package firepit

import (
	"context"
	"log"
	"math/rand"
	"sync"
	"time"

	"firepit/internal/metrics"
)

// ChatGateway is the platform boundary the monitor talks to. The Discord
// adapter implements it; tests use fakes.
type ChatGateway interface {
	// Channels lists the channel IDs the bot can observe.
	Channels() []string
	// History returns up to limit recent messages for a channel, oldest
	// first.
	History(ctx context.Context, channelID string, limit int) ([]Message, error)
	// Send posts text to a channel.
	Send(ctx context.Context, channelID, text string) error
	// Typing signals a typing indicator. Best effort; failures are the
	// gateway's problem.
	Typing(channelID string)
}

// Bookkeeper persists per-bot reply bookkeeping across restarts so the
// cooldown and hourly quota survive a process bounce.
type Bookkeeper interface {
	BotState(bot string) (lastByChannel map[string]time.Time, history []time.Time, err error)
	RecordReply(bot, channelID string, at time.Time) error
}

// Monitor runs the tick loop for one bot identity: refresh caches, derive
// health, decide, render, send. One monitor owns all of its channel state;
// nothing else mutates it.
type Monitor struct {
	identity  Personality
	settings  Settings
	calc      *HealthCalculator
	engine    *Engine
	selector  *TypeSelector
	generator *Generator
	gateway   ChatGateway
	limiter   *ReplyLimiter
	book      Bookkeeper

	mu     sync.RWMutex
	caches map[string]*ChannelCache

	rng *rand.Rand
	now func() time.Time
}

// NewMonitor creates a monitor for one identity. The random source is the
// only nondeterminism; inject a seeded one to replay behavior.
func NewMonitor(identity Personality, roster *Roster, settings Settings, gateway ChatGateway, rng *rand.Rand) *Monitor {
	return &Monitor{
		identity:  identity,
		settings:  settings,
		calc:      NewHealthCalculator(roster.Names()),
		engine:    NewEngine(identity, settings, rng),
		selector:  NewTypeSelector(identity, settings, rng),
		generator: NewGenerator(identity, rng),
		gateway:   gateway,
		limiter:   NewReplyLimiter(settings.HourlyReplyQuota),
		caches:    make(map[string]*ChannelCache),
		rng:       rng,
		now:       time.Now,
	}
}

// Name returns the identity this monitor speaks as.
func (m *Monitor) Name() string { return m.identity.Name }

// SetClock overrides the wall clock. Test hook.
func (m *Monitor) SetClock(now func() time.Time) { m.now = now }

// SetBookkeeper wires persistence and restores the reply limiter from it.
func (m *Monitor) SetBookkeeper(book Bookkeeper) {
	m.book = book
	last, history, err := book.BotState(m.identity.Name)
	if err != nil {
		log.Printf("[ERR] bot=%s restore bookkeeping: %v", m.identity.Name, err)
		return
	}
	m.limiter.Restore(last, history, m.now())
}

// Observe pushes a live message into the channel's cache. Safe to call
// from the session goroutine; the window itself is rebuilt on the next
// tick.
func (m *Monitor) Observe(msg Message) {
	m.cache(msg.ChannelID).Push(msg)
	metrics.MessagesObserved.Inc()
}

func (m *Monitor) cache(channelID string) *ChannelCache {
	m.mu.RLock()
	c := m.caches[channelID]
	m.mu.RUnlock()
	if c != nil {
		return c
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if c = m.caches[channelID]; c == nil {
		c = NewChannelCache(m.settings.WindowSize)
		m.caches[channelID] = c
	}
	return c
}

// Run ticks until ctx is done. Shutdown latency is bounded by one tick
// interval plus the typing delay cap.
func (m *Monitor) Run(ctx context.Context) {
	log.Printf("[INFO] monitor started bot=%s tick=%s", m.identity.Name, m.settings.TickInterval)
	ticker := time.NewTicker(m.settings.TickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Printf("[INFO] monitor stopped bot=%s", m.identity.Name)
			return
		case <-ticker.C:
			m.tick(ctx)
		}
	}
}

// tick evaluates every observable channel. Failures are isolated per
// channel; the loop never dies.
func (m *Monitor) tick(ctx context.Context) {
	metrics.TicksTotal.Inc()
	for _, channelID := range m.gateway.Channels() {
		if ctx.Err() != nil {
			return
		}
		m.checkChannel(ctx, channelID)
	}
}

func (m *Monitor) checkChannel(ctx context.Context, channelID string) {
	fetched, err := m.gateway.History(ctx, channelID, m.settings.WindowSize)
	if err != nil {
		log.Printf("[ERR] bot=%s channel=%s history fetch: %v", m.identity.Name, channelID, err)
		metrics.FetchFailures.Inc()
		// Still drain the live inbox so the window stays fresh.
	}
	window := m.cache(channelID).Sync(fetched)
	if len(window) == 0 {
		return
	}

	now := m.now()
	health := m.calc.Calculate(window, now)

	if !m.limiter.Allow(now) {
		metrics.Decisions.WithLabelValues(m.identity.Name, "quota").Inc()
		return
	}
	lastReply := m.limiter.LastReply(channelID)
	if !m.engine.ShouldSpeak(health, window, lastReply, now) {
		metrics.Decisions.WithLabelValues(m.identity.Name, "hold").Inc()
		return
	}
	metrics.Decisions.WithLabelValues(m.identity.Name, "speak").Inc()

	replyType := m.selector.Select(health, window, now)
	text := m.generator.Generate(replyType, ReplyContext{
		Target:      RoastTarget(window, health),
		Topic:       TopicPhrase(window),
		CallbackRef: CallbackReference(window),
		Health:      health,
	})

	m.gateway.Typing(channelID)
	if !m.typeOut(ctx, text) {
		return
	}

	if err := m.gateway.Send(ctx, channelID, text); err != nil {
		log.Printf("[ERR] bot=%s channel=%s send: %v", m.identity.Name, channelID, err)
		metrics.SendFailures.Inc()
		return
	}

	sentAt := m.now()
	m.limiter.Record(channelID, sentAt)
	if m.book != nil {
		if err := m.book.RecordReply(m.identity.Name, channelID, sentAt); err != nil {
			log.Printf("[ERR] bot=%s channel=%s bookkeeping: %v", m.identity.Name, channelID, err)
		}
	}
	metrics.RepliesSent.WithLabelValues(m.identity.Name, string(replyType)).Inc()
	log.Printf("[FIREPIT] bot=%s channel=%s type=%s heat=%.1f deadair=%ds", m.identity.Name, channelID, replyType, health.HeatScore, health.DeadAirSeconds)
}

// typeOut simulates typing, proportional to reply length and capped.
// Returns false if ctx was cancelled mid-delay.
func (m *Monitor) typeOut(ctx context.Context, text string) bool {
	delay := time.Duration(len(text)) * m.settings.TypingPerChar
	if delay > m.settings.TypingMax {
		delay = m.settings.TypingMax
	}
	if delay <= 0 {
		return true
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

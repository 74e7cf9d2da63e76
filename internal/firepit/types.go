package firepit

import "time"

// Message is one observed chat message. Immutable once cached; owned by the
// channel cache that holds it.
type Message struct {
	ID         string    `json:"id"`
	ChannelID  string    `json:"channel_id"`
	AuthorID   string    `json:"author_id"`
	AuthorName string    `json:"author_name"`
	Content    string    `json:"content"`
	Timestamp  time.Time `json:"timestamp"`
	IsBot      bool      `json:"is_bot"`
	BotName    string    `json:"bot_name,omitempty"` // set only when IsBot
	Mentions   []string  `json:"mentions,omitempty"` // display names
	ReplyTo    string    `json:"reply_to,omitempty"` // referenced message ID
}

// ReplyType is the categorical style of an autonomous contribution.
type ReplyType string

const (
	ReplyRoast    ReplyType = "roast"
	ReplyRiff     ReplyType = "riff"
	ReplyStory    ReplyType = "story"
	ReplyPivot    ReplyType = "pivot"
	ReplyCallback ReplyType = "callback"
	ReplyPraise   ReplyType = "praise"
)

// AllReplyTypes lists every reply type in canonical order. Weighted draws
// iterate this slice so selection is deterministic under a fixed seed.
var AllReplyTypes = []ReplyType{ReplyRoast, ReplyRiff, ReplyStory, ReplyPivot, ReplyCallback, ReplyPraise}

// ThreadHealthState is an ephemeral snapshot of conversation health,
// recomputed every cycle from the current window only. Never persisted.
type ThreadHealthState struct {
	DeadAirSeconds    int
	HeatScore         float64 // 0..10
	LastRoastTarget   string
	QuietBot          string
	DominantSpeaker   string
	MessageTypeRatios map[ReplyType]float64 // roast / riff / story / pivot
	LastPivotAt       time.Time
	CurrentTopic      string
	TopicMessageCount int
}

// emptyDeadAir is reported when a channel window has no messages at all.
const emptyDeadAir = 999

// Settings holds thresholds and timings for the whole engine. Loaded once at
// startup and treated as read-only afterwards.
type Settings struct {
	WindowSize   int           // cached messages per channel
	TickInterval time.Duration // monitor scan interval

	// Quiet hours are computed from a fixed UTC offset, same arithmetic as
	// the scheduler this engine replaces. Not timezone-aware on purpose.
	UTCOffsetHours int
	QuietStartHour int // inclusive
	QuietEndHour   int // exclusive

	DeadAirOverrideSeconds int     // dead air that escapes quiet hours and deference
	DeadAirBreakSeconds    int     // dead air that triggers a silence-break draw
	DeferenceLookback      int     // trailing messages checked for human authors
	MaxQuietTurns          int     // turns-quiet divisor for urgency
	QuietUrgencyThreshold  float64 // urgency above this forces speech
	JitterFactor           float64 // ± multiplicative jitter on baseline prob
	BaselineCap            float64 // hard cap on baseline speak probability

	RoastQuota       int           // consecutive roasts allowed toward one target
	CallbackMinAge   time.Duration // a message must be at least this old to call back to
	CallbackChance   float64       // per-candidate draw for choosing callback
	TopicPersistence int           // topic messages before a tone reset is considered
	RoastRatioReset  float64       // roast ratio that warrants a tone reset
	PivotStaleness   time.Duration // time since last pivot that warrants a reset

	ReplyCooldown    time.Duration // hard minimum between own replies in a channel
	HourlyReplyQuota int           // hard cap on replies per rolling hour

	TypingPerChar time.Duration // simulated typing delay per character
	TypingMax     time.Duration // cap on the simulated typing delay
}

// DefaultSettings returns the stock tuning.
func DefaultSettings() Settings {
	return Settings{
		WindowSize:             20,
		TickInterval:           5 * time.Second,
		UTCOffsetHours:         -5,
		QuietStartHour:         20,
		QuietEndHour:           8,
		DeadAirOverrideSeconds: 60,
		DeadAirBreakSeconds:    8,
		DeferenceLookback:      6,
		MaxQuietTurns:          20,
		QuietUrgencyThreshold:  0.7,
		JitterFactor:           0.2,
		BaselineCap:            0.15,
		RoastQuota:             3,
		CallbackMinAge:         15 * time.Minute,
		CallbackChance:         0.2,
		TopicPersistence:       6,
		RoastRatioReset:        0.6,
		PivotStaleness:         30 * time.Minute,
		ReplyCooldown:          45 * time.Second,
		HourlyReplyQuota:       12,
		TypingPerChar:          50 * time.Millisecond,
		TypingMax:              3 * time.Second,
	}
}

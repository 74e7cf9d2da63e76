package firepit

import (
	"math/rand"
	"time"
)

// Engine decides, for one bot identity, whether to speak on the current
// tick. The random source is injected so decisions replay under a fixed
// seed.
type Engine struct {
	identity Personality
	settings Settings
	rng      *rand.Rand
}

// NewEngine creates a decision engine for one identity.
func NewEngine(identity Personality, settings Settings, rng *rand.Rand) *Engine {
	return &Engine{identity: identity, settings: settings, rng: rng}
}

// ShouldSpeak applies the hard rules, then the ordered soft rules.
// lastReply is when this bot last replied in the channel (zero if never).
func (e *Engine) ShouldSpeak(health ThreadHealthState, window []Message, lastReply time.Time, now time.Time) bool {
	// Hard rules. Nothing below may override these.
	if len(window) > 0 {
		last := window[len(window)-1]
		if last.IsBot && last.BotName == e.identity.Name {
			return false
		}
	}
	if !lastReply.IsZero() && now.Sub(lastReply) < e.settings.ReplyCooldown {
		return false
	}

	// Long dead air escapes quiet hours and user deference.
	if health.DeadAirSeconds > e.settings.DeadAirOverrideSeconds {
		if e.breakSilence(health) {
			return true
		}
	}

	if e.inQuietHours(now) {
		return false
	}

	if e.userSpokeRecently(window) {
		return false
	}

	if health.QuietBot == e.identity.Name {
		if e.quietUrgency(window) > e.settings.QuietUrgencyThreshold {
			return true
		}
	}

	if health.DeadAirSeconds > e.settings.DeadAirBreakSeconds {
		if e.breakSilence(health) {
			return true
		}
	}

	if health.HeatScore < 5 {
		if e.shouldEscalate(health) {
			return true
		}
	}

	if health.DominantSpeaker == e.identity.Name {
		return false
	}

	prob := e.baseProbability(health)
	jittered := prob * (1 + (e.rng.Float64()*2-1)*e.settings.JitterFactor)
	return e.rng.Float64() < jittered
}

// inQuietHours converts the wall clock to the configured fixed UTC offset
// and checks the quiet window. Offset arithmetic, not real timezones.
func (e *Engine) inQuietHours(now time.Time) bool {
	hour := (now.UTC().Hour() + e.settings.UTCOffsetHours + 24) % 24
	return hour >= e.settings.QuietStartHour || hour < e.settings.QuietEndHour
}

// userSpokeRecently reports whether a human authored any of the trailing
// lookback messages.
func (e *Engine) userSpokeRecently(window []Message) bool {
	start := len(window) - e.settings.DeferenceLookback
	if start < 0 {
		start = 0
	}
	for _, m := range window[start:] {
		if !m.IsBot {
			return true
		}
	}
	return false
}

// quietUrgency grows toward 1 with the number of turns since this bot
// last spoke.
func (e *Engine) quietUrgency(window []Message) float64 {
	if len(window) == 0 {
		return 1
	}
	turns := 0
	for i := len(window) - 1; i >= 0; i-- {
		if window[i].AuthorName == e.identity.Name {
			break
		}
		turns++
	}
	urgency := float64(turns) / float64(e.settings.MaxQuietTurns)
	if urgency > 1 {
		urgency = 1
	}
	return urgency
}

// breakSilence draws for a dead-air break. The quiet bot is eager, the
// dominant speaker is reluctant.
func (e *Engine) breakSilence(health ThreadHealthState) bool {
	if health.DominantSpeaker == e.identity.Name {
		return e.rng.Float64() < 0.2
	}
	if health.QuietBot == e.identity.Name {
		return e.rng.Float64() < 0.8
	}
	return e.rng.Float64() < 0.5
}

// shouldEscalate draws for a heat escalation using the personality's
// tendency, boosted when the conversation has gone properly cold.
func (e *Engine) shouldEscalate(health ThreadHealthState) bool {
	chance := e.identity.EscalationChance
	if health.HeatScore < 3 {
		chance *= 1.5
	}
	if chance > 1 {
		chance = 1
	}
	return e.rng.Float64() < chance
}

// baseProbability scales the personality baseline by conversation heat and
// caps it so no identity floods a channel.
func (e *Engine) baseProbability(health ThreadHealthState) float64 {
	prob := e.identity.BaseProbability
	if health.HeatScore > 7 {
		prob *= 1.2
	} else if health.HeatScore < 3 {
		prob *= 0.8
	}
	if prob > e.settings.BaselineCap {
		prob = e.settings.BaselineCap
	}
	return prob
}

package firepit

import (
	"math/rand"
	"strings"
	"time"
)

// TypeSelector picks the categorical style of the next contribution for
// one identity.
type TypeSelector struct {
	identity Personality
	settings Settings
	rng      *rand.Rand
}

// NewTypeSelector creates a selector for one identity.
func NewTypeSelector(identity Personality, settings Settings, rng *rand.Rand) *TypeSelector {
	return &TypeSelector{identity: identity, settings: settings, rng: rng}
}

// Select returns the reply type for the current window and health state.
func (s *TypeSelector) Select(health ThreadHealthState, window []Message, now time.Time) ReplyType {
	if s.roastStreak(window, health.LastRoastTarget) >= s.settings.RoastQuota {
		return s.selectNonRoast(health)
	}
	if s.shouldCallback(window, now) {
		return ReplyCallback
	}
	if s.needsToneReset(health, now) {
		return ReplyPivot
	}
	return s.selectWeighted(health)
}

// roastStreak counts this bot's consecutive recent roasts toward target,
// scanning newest to oldest. Other speakers' messages are skipped; the
// streak ends at this bot's first non-roast message.
func (s *TypeSelector) roastStreak(window []Message, target string) int {
	if target == "" {
		return 0
	}
	count := 0
	for i := len(window) - 1; i >= 0; i-- {
		m := window[i]
		if m.AuthorName != s.identity.Name {
			continue
		}
		if strings.Contains(strings.ToLower(m.Content), "roast") && strings.Contains(m.Content, target) {
			count++
		} else {
			break
		}
	}
	return count
}

// shouldCallback looks for a non-recent window message old enough to call
// back to, with a per-candidate chance so callbacks stay rare.
func (s *TypeSelector) shouldCallback(window []Message, now time.Time) bool {
	if len(window) <= 5 {
		return false
	}
	for _, m := range window[:len(window)-5] {
		if now.Sub(m.Timestamp) > s.settings.CallbackMinAge {
			if s.rng.Float64() < s.settings.CallbackChance {
				return true
			}
		}
	}
	return false
}

// needsToneReset is true once a topic has persisted long enough and the
// conversation is either roast-saturated, stone cold, or long overdue for
// a pivot.
func (s *TypeSelector) needsToneReset(health ThreadHealthState, now time.Time) bool {
	if health.TopicMessageCount < s.settings.TopicPersistence {
		return false
	}
	if health.MessageTypeRatios[ReplyRoast] > s.settings.RoastRatioReset {
		return true
	}
	if health.HeatScore < 2 {
		return true
	}
	if !health.LastPivotAt.IsZero() && now.Sub(health.LastPivotAt) > s.settings.PivotStaleness {
		return true
	}
	return false
}

// selectNonRoast picks a category when the roast quota is spent. Roast is
// never an option here.
func (s *TypeSelector) selectNonRoast(health ThreadHealthState) ReplyType {
	if health.HeatScore < 3 {
		return ReplyPivot
	}
	if health.MessageTypeRatios[ReplyStory] < 0.1 && !s.identity.NoStory {
		return ReplyStory
	}
	options := []ReplyType{ReplyRiff, ReplyStory, ReplyPivot, ReplyPraise}
	if s.identity.NoStory {
		options = []ReplyType{ReplyRiff, ReplyPivot, ReplyPraise}
	}
	return options[s.rng.Intn(len(options))]
}

// selectWeighted draws over the personality's type weights, nudged by what
// the conversation is short on.
func (s *TypeSelector) selectWeighted(health ThreadHealthState) ReplyType {
	weights := make(map[ReplyType]float64, len(s.identity.TypeWeights))
	for t, w := range s.identity.TypeWeights {
		weights[t] = w
	}
	if health.HeatScore < 5 {
		weights[ReplyRoast] *= 1.5
	}
	if health.MessageTypeRatios[ReplyStory] < 0.2 {
		weights[ReplyStory] *= 1.3
	}

	var total float64
	for _, t := range AllReplyTypes {
		total += weights[t]
	}
	if total <= 0 {
		return ReplyRiff
	}

	draw := s.rng.Float64()
	var cumulative float64
	for _, t := range AllReplyTypes {
		cumulative += weights[t] / total
		if draw < cumulative {
			return t
		}
	}
	return ReplyRiff // floating rounding left the draw unclaimed
}

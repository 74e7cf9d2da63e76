package firepit

import (
	"strings"
	"time"
)

// heatDecayRate is the per-minute linear decay applied to a message's heat
// contribution; a message stops contributing after ~10 minutes.
const heatDecayRate = 0.1

var (
	roastMarkers = []string{"roast", "trash", "weak", "ratio"}
	pivotPhrases = []string{"what if", "actually", "real talk", "anyway"}
)

// HealthCalculator derives a ThreadHealthState snapshot from a message
// window. Pure and deterministic given the window and "now".
type HealthCalculator struct {
	roster []string // known bot names; order breaks quiet-bot ties
}

// NewHealthCalculator creates a calculator over a fixed bot roster.
func NewHealthCalculator(roster []string) *HealthCalculator {
	return &HealthCalculator{roster: roster}
}

// Calculate computes health for a window ordered oldest to newest.
func (h *HealthCalculator) Calculate(window []Message, now time.Time) ThreadHealthState {
	state := ThreadHealthState{
		DeadAirSeconds:    emptyDeadAir,
		MessageTypeRatios: zeroRatios(),
	}
	if len(window) == 0 {
		return state
	}

	last := window[len(window)-1]
	dead := int(now.Sub(last.Timestamp).Seconds())
	if dead < 0 {
		dead = 0
	}
	state.DeadAirSeconds = dead
	state.HeatScore = heatScore(window, now)
	state.DominantSpeaker = dominantSpeaker(window)
	state.QuietBot = h.quietBot(window)
	state.LastRoastTarget = lastRoastTarget(window)
	state.MessageTypeRatios = typeRatios(window)
	state.LastPivotAt = lastPivotAt(window)
	state.CurrentTopic, state.TopicMessageCount = currentTopic(window)
	return state
}

// heatScore sums per-message energy with linear time decay, normalized to
// a 0..10 scale.
func heatScore(window []Message, now time.Time) float64 {
	var heat float64
	for _, m := range window {
		msgHeat := 1.0
		if strings.Contains(strings.ToLower(m.Content), "roast") {
			msgHeat += 2.0
		}
		if len(m.Mentions) > 0 {
			msgHeat += 1.0
		}
		msgHeat += float64(countEmoji(m.Content)) * 0.5

		ageMinutes := now.Sub(m.Timestamp).Minutes()
		decay := 1.0 - ageMinutes*heatDecayRate
		if decay < 0 {
			decay = 0
		}
		heat += msgHeat * decay
	}
	score := heat / 2
	if score > 10 {
		score = 10
	}
	if score < 0 {
		score = 0
	}
	return score
}

// countEmoji counts runes above the regional-indicator base, which catches
// the common emoji blocks without a full Unicode table.
func countEmoji(s string) int {
	n := 0
	for _, r := range s {
		if r > 0x1F1E6 {
			n++
		}
	}
	return n
}

// dominantSpeaker returns the author with the most window messages, ties
// broken by first appearance in the window.
func dominantSpeaker(window []Message) string {
	counts := make(map[string]int)
	var order []string
	for _, m := range window {
		if _, seen := counts[m.AuthorName]; !seen {
			order = append(order, m.AuthorName)
		}
		counts[m.AuthorName]++
	}
	var best string
	bestCount := -1
	for _, name := range order {
		if counts[name] > bestCount {
			best = name
			bestCount = counts[name]
		}
	}
	return best
}

// quietBot returns the roster bot with the fewest window messages; a bot
// that never spoke counts as zero. Roster order breaks ties.
func (h *HealthCalculator) quietBot(window []Message) string {
	if len(h.roster) == 0 {
		return ""
	}
	counts := make(map[string]int)
	for _, m := range window {
		if m.IsBot {
			counts[m.AuthorName]++
		}
	}
	quiet := ""
	min := -1
	for _, name := range h.roster {
		c := counts[name]
		if min < 0 || c < min {
			min = c
			quiet = name
		}
	}
	return quiet
}

// lastRoastTarget scans newest to oldest for a roast-flagged message that
// mentions someone and returns the first mention.
func lastRoastTarget(window []Message) string {
	for i := len(window) - 1; i >= 0; i-- {
		m := window[i]
		if strings.Contains(strings.ToLower(m.Content), "roast") && len(m.Mentions) > 0 {
			return m.Mentions[0]
		}
	}
	return ""
}

// classify buckets one message by cheap lexical heuristics.
func classify(m Message) ReplyType {
	content := strings.ToLower(m.Content)
	for _, marker := range roastMarkers {
		if strings.Contains(content, marker) {
			return ReplyRoast
		}
	}
	if len(content) > 200 {
		return ReplyStory
	}
	if strings.Contains(content, "?") || strings.Contains(content, "what if") {
		return ReplyPivot
	}
	return ReplyRiff
}

func typeRatios(window []Message) map[ReplyType]float64 {
	ratios := zeroRatios()
	if len(window) == 0 {
		return ratios
	}
	total := float64(len(window))
	for _, m := range window {
		ratios[classify(m)] += 1 / total
	}
	return ratios
}

func zeroRatios() map[ReplyType]float64 {
	return map[ReplyType]float64{
		ReplyRoast: 0,
		ReplyRiff:  0,
		ReplyStory: 0,
		ReplyPivot: 0,
	}
}

// lastPivotAt returns the timestamp of the newest message carrying a pivot
// phrase, zero time if none.
func lastPivotAt(window []Message) time.Time {
	for i := len(window) - 1; i >= 0; i-- {
		content := strings.ToLower(window[i].Content)
		for _, phrase := range pivotPhrases {
			if strings.Contains(content, phrase) {
				return window[i].Timestamp
			}
		}
	}
	return time.Time{}
}

// currentTopic finds the most frequent meaningful word over the last ten
// messages, ties broken by first occurrence.
func currentTopic(window []Message) (string, int) {
	start := len(window) - 10
	if start < 0 {
		start = 0
	}
	counts := make(map[string]int)
	var order []string
	for _, m := range window[start:] {
		for _, word := range strings.Fields(strings.ToLower(m.Content)) {
			if len(word) <= 4 || strings.HasPrefix(word, "http") {
				continue
			}
			if _, seen := counts[word]; !seen {
				order = append(order, word)
			}
			counts[word]++
		}
	}
	topic := ""
	best := 0
	for _, word := range order {
		if counts[word] > best {
			topic = word
			best = counts[word]
		}
	}
	return topic, best
}

package firepit

import (
	"strings"
	"unicode"
)

// RoastTarget picks who a roast should aim at: the loudest human in the
// last ten messages, else whoever was roasted last, else everyone.
func RoastTarget(window []Message, health ThreadHealthState) string {
	start := len(window) - 10
	if start < 0 {
		start = 0
	}
	counts := make(map[string]int)
	var order []string
	for _, m := range window[start:] {
		if m.IsBot {
			continue
		}
		if _, seen := counts[m.AuthorName]; !seen {
			order = append(order, m.AuthorName)
		}
		counts[m.AuthorName]++
	}
	best := ""
	bestCount := 0
	for _, name := range order {
		if counts[name] > bestCount {
			best = name
			bestCount = counts[name]
		}
	}
	if best != "" {
		return best
	}
	if health.LastRoastTarget != "" {
		return health.LastRoastTarget
	}
	return "y'all"
}

// TopicPhrase extracts a topic for generation context: the first
// capitalized word longer than four characters in the last five messages.
func TopicPhrase(window []Message) string {
	start := len(window) - 5
	if start < 0 {
		start = 0
	}
	for _, m := range window[start:] {
		for _, word := range strings.Fields(m.Content) {
			if len(word) > 4 && startsUpper(word) {
				return word
			}
		}
	}
	return "this whole situation"
}

func startsUpper(word string) bool {
	for _, r := range word {
		return unicode.IsUpper(r)
	}
	return false
}

// CallbackReference mines an older memorable moment: a message outside
// the trailing five with multiple mentions or an exclamation, shortened
// to its first four words.
func CallbackReference(window []Message) string {
	if len(window) > 5 {
		for _, m := range window[:len(window)-5] {
			if len(m.Mentions) > 1 || strings.Contains(m.Content, "!") {
				words := strings.Fields(m.Content)
				if len(words) > 3 {
					return strings.Join(words[:4], " ") + "..."
				}
			}
		}
	}
	return "that thing from before"
}

package firepit

import (
	"fmt"
	"time"
)

var msgSeq int

// testMsg builds a Message fact with an auto-assigned ID.
func testMsg(author, content string, ts time.Time, isBot bool, mentions ...string) Message {
	msgSeq++
	m := Message{
		ID:         fmt.Sprintf("m%04d", msgSeq),
		ChannelID:  "chan-1",
		AuthorID:   "id-" + author,
		AuthorName: author,
		Content:    content,
		Timestamp:  ts,
		IsBot:      isBot,
		Mentions:   mentions,
	}
	if isBot {
		m.BotName = author
	}
	return m
}

// testNow is mid-afternoon UTC, which is inside active hours for the
// fixed-offset quiet-hours arithmetic.
var testNow = time.Date(2024, 5, 1, 15, 0, 0, 0, time.UTC)

var testRoster = []string{"FordBot", "AprilBot", "AdamBot"}

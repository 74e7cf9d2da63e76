package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/keshon/datastore"
)

// replyLogLimit caps how many reply timestamps are kept per bot. The
// rolling-hour quota never needs more.
const replyLogLimit = 50

// Storage persists per-bot reply bookkeeping in a JSON-file datastore so
// cooldowns and quotas survive restarts.
type Storage struct {
	ds *datastore.DataStore
}

// BotRecord is one bot's persisted bookkeeping.
type BotRecord struct {
	LastReplies map[string]time.Time `json:"last_replies"` // channel ID -> last reply
	ReplyLog    []time.Time          `json:"reply_log"`    // recent reply times, oldest first
}

// New opens (or creates) the datastore file at filePath.
func New(filePath string) (*Storage, error) {
	ds, err := datastore.New(filePath)
	if err != nil {
		return nil, err
	}
	return &Storage{ds: ds}, nil
}

// Close flushes and closes the underlying datastore.
func (s *Storage) Close() error {
	return s.ds.Close()
}

func (s *Storage) getOrCreateBotRecord(bot string) (*BotRecord, error) {
	data, exists := s.ds.Get(bot)
	if !exists {
		rec := &BotRecord{LastReplies: map[string]time.Time{}}
		s.ds.Add(bot, rec)
		return rec, nil
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("marshal record for %s: %w", bot, err)
	}
	var rec BotRecord
	if err := json.Unmarshal(jsonData, &rec); err != nil {
		return nil, fmt.Errorf("unmarshal record for %s: %w", bot, err)
	}
	if rec.LastReplies == nil {
		rec.LastReplies = map[string]time.Time{}
	}
	return &rec, nil
}

// BotState returns the persisted last-reply map and reply log for a bot.
func (s *Storage) BotState(bot string) (map[string]time.Time, []time.Time, error) {
	rec, err := s.getOrCreateBotRecord(bot)
	if err != nil {
		return nil, nil, err
	}
	return rec.LastReplies, rec.ReplyLog, nil
}

// RecordReply appends one sent reply to the bot's bookkeeping.
func (s *Storage) RecordReply(bot, channelID string, at time.Time) error {
	rec, err := s.getOrCreateBotRecord(bot)
	if err != nil {
		return err
	}
	rec.LastReplies[channelID] = at
	rec.ReplyLog = append(rec.ReplyLog, at)
	if len(rec.ReplyLog) > replyLogLimit {
		rec.ReplyLog = rec.ReplyLog[len(rec.ReplyLog)-replyLogLimit:]
	}
	s.ds.Add(bot, rec)
	return nil
}

package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var at = time.Date(2024, 5, 1, 15, 0, 0, 0, time.UTC)

func openTestStorage(t *testing.T, path string) *Storage {
	t.Helper()
	s, err := New(path)
	require.NoError(t, err)
	return s
}

func TestFreshBotHasEmptyState(t *testing.T) {
	s := openTestStorage(t, filepath.Join(t.TempDir(), "store.json"))
	defer s.Close()

	last, log, err := s.BotState("FordBot")
	require.NoError(t, err)
	assert.Empty(t, last)
	assert.Empty(t, log)
}

func TestRecordReplyAccumulates(t *testing.T) {
	s := openTestStorage(t, filepath.Join(t.TempDir(), "store.json"))
	defer s.Close()

	require.NoError(t, s.RecordReply("FordBot", "chan-1", at))
	require.NoError(t, s.RecordReply("FordBot", "chan-2", at.Add(time.Minute)))
	require.NoError(t, s.RecordReply("AprilBot", "chan-1", at.Add(2*time.Minute)))

	last, log, err := s.BotState("FordBot")
	require.NoError(t, err)
	require.Len(t, log, 2)
	assert.True(t, last["chan-1"].Equal(at))
	assert.True(t, last["chan-2"].Equal(at.Add(time.Minute)))

	// Bots do not share bookkeeping.
	last, log, err = s.BotState("AprilBot")
	require.NoError(t, err)
	assert.Len(t, log, 1)
	assert.True(t, last["chan-1"].Equal(at.Add(2*time.Minute)))
}

func TestReplyLogIsCapped(t *testing.T) {
	s := openTestStorage(t, filepath.Join(t.TempDir(), "store.json"))
	defer s.Close()

	for i := 0; i < replyLogLimit+10; i++ {
		require.NoError(t, s.RecordReply("FordBot", "chan-1", at.Add(time.Duration(i)*time.Second)))
	}

	_, log, err := s.BotState("FordBot")
	require.NoError(t, err)
	require.Len(t, log, replyLogLimit)
	// The oldest entries fell off.
	assert.True(t, log[0].Equal(at.Add(10*time.Second)))
}

func TestStateSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")

	s := openTestStorage(t, path)
	require.NoError(t, s.RecordReply("FordBot", "chan-1", at))
	require.NoError(t, s.Close())

	reopened := openTestStorage(t, path)
	defer reopened.Close()

	last, log, err := reopened.BotState("FordBot")
	require.NoError(t, err)
	require.Len(t, log, 1)
	assert.True(t, last["chan-1"].Equal(at))
	assert.True(t, log[0].Equal(at))
}

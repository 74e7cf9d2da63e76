package firepit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLimiterEnforcesHourlyQuota(t *testing.T) {
	l := NewReplyLimiter(3)

	for i := 0; i < 3; i++ {
		assert.True(t, l.Allow(testNow))
		l.Record("chan-1", testNow.Add(time.Duration(i)*time.Minute))
	}
	assert.False(t, l.Allow(testNow.Add(5*time.Minute)))
}

func TestLimiterRollingWindowFreesQuota(t *testing.T) {
	l := NewReplyLimiter(2)
	l.Record("chan-1", testNow)
	l.Record("chan-1", testNow.Add(time.Minute))

	assert.False(t, l.Allow(testNow.Add(30*time.Minute)))
	assert.True(t, l.Allow(testNow.Add(61*time.Minute)))
}

func TestLimiterLastReplyPerChannel(t *testing.T) {
	l := NewReplyLimiter(10)

	assert.True(t, l.LastReply("chan-1").IsZero())

	l.Record("chan-1", testNow)
	l.Record("chan-2", testNow.Add(time.Minute))

	assert.Equal(t, testNow, l.LastReply("chan-1"))
	assert.Equal(t, testNow.Add(time.Minute), l.LastReply("chan-2"))
	assert.True(t, l.LastReply("chan-3").IsZero())
}

func TestLimiterRestoreDropsStaleHistory(t *testing.T) {
	l := NewReplyLimiter(2)
	l.Restore(
		map[string]time.Time{"chan-1": testNow.Add(-2 * time.Hour)},
		[]time.Time{
			testNow.Add(-2 * time.Hour), // past the rolling hour, dropped
			testNow.Add(-10 * time.Minute),
		},
		testNow,
	)

	assert.Equal(t, testNow.Add(-2*time.Hour), l.LastReply("chan-1"))
	assert.True(t, l.Allow(testNow), "only one restored entry should count")

	l.Record("chan-1", testNow)
	assert.False(t, l.Allow(testNow))
}

func TestLimiterSnapshotRoundTrip(t *testing.T) {
	l := NewReplyLimiter(5)
	l.Record("chan-1", testNow)
	l.Record("chan-2", testNow.Add(time.Minute))

	last, history := l.Snapshot()

	restored := NewReplyLimiter(5)
	restored.Restore(last, history, testNow.Add(2*time.Minute))

	assert.Equal(t, testNow, restored.LastReply("chan-1"))
	gotLast, gotHistory := restored.Snapshot()
	assert.Len(t, gotLast, 2)
	assert.Len(t, gotHistory, 2)
}

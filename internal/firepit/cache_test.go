package firepit

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheSyncMergesAndSorts(t *testing.T) {
	c := NewChannelCache(20)

	newer := testMsg("alice", "second", testNow.Add(-1*time.Second), false)
	older := testMsg("bob", "first", testNow.Add(-5*time.Second), false)
	c.Push(newer)

	window := c.Sync([]Message{older})
	require.Len(t, window, 2)
	assert.Equal(t, "first", window[0].Content)
	assert.Equal(t, "second", window[1].Content)
}

func TestCacheDedupesByID(t *testing.T) {
	c := NewChannelCache(20)

	m := testMsg("alice", "hello", testNow.Add(-1*time.Second), false)
	c.Push(m)
	window := c.Sync([]Message{m})
	assert.Len(t, window, 1)

	// A second sync with the same fetched history must not duplicate
	// what the window already holds.
	window = c.Sync([]Message{m})
	assert.Len(t, window, 1)
}

func TestCacheTrimsToCapacity(t *testing.T) {
	c := NewChannelCache(20)

	var fetched []Message
	for i := 0; i < 30; i++ {
		fetched = append(fetched, testMsg("alice", fmt.Sprintf("msg %d", i), testNow.Add(time.Duration(i-30)*time.Second), false))
	}
	window := c.Sync(fetched)
	require.Len(t, window, 20)

	// The oldest ten fell off; the newest survived.
	assert.Equal(t, "msg 10", window[0].Content)
	assert.Equal(t, "msg 29", window[19].Content)
}

func TestCacheWindowIsACopy(t *testing.T) {
	c := NewChannelCache(20)
	c.Sync([]Message{testMsg("alice", "original", testNow, false)})

	window := c.Window()
	require.Len(t, window, 1)
	window[0].Content = "mutated"

	again := c.Window()
	assert.Equal(t, "original", again[0].Content)
}

func TestCachePushIsSafeUnderConcurrency(t *testing.T) {
	c := NewChannelCache(200)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 20; i++ {
				c.Push(Message{
					ID:        fmt.Sprintf("g%d-m%d", g, i),
					Content:   "concurrent",
					Timestamp: testNow.Add(time.Duration(g*20+i) * time.Millisecond),
				})
			}
		}(g)
	}
	wg.Wait()

	window := c.Sync(nil)
	assert.Len(t, window, 160)
}

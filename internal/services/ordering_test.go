package services

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyedMutex_SerializesOneKeyOnly(t *testing.T) {
	k := newKeyedMutex()

	unlockA := k.Lock("a")

	// Another key is never held up by "a".
	unlockB := k.Lock("b")
	unlockB()

	acquired := make(chan struct{})
	go func() {
		unlock := k.Lock("a")
		close(acquired)
		unlock()
	}()

	select {
	case <-acquired:
		t.Fatal("second holder entered while the key was locked")
	case <-time.After(20 * time.Millisecond):
	}

	unlockA()
	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("waiter never acquired the released key")
	}

	require.Eventually(t, func() bool {
		k.mu.Lock()
		defer k.mu.Unlock()
		return len(k.locks) == 0
	}, time.Second, time.Millisecond)
}

func TestKeyedMutex_CountsUnderContention(t *testing.T) {
	k := newKeyedMutex()
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := k.Lock("shared")
			counter++
			unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, counter)
	assert.Empty(t, k.locks)
}

func TestIncreasingClock_NeverRepeats(t *testing.T) {
	fixed := time.Date(2026, 3, 1, 9, 0, 0, 999, time.UTC)
	c := newIncreasingClock(func() time.Time { return fixed })

	first := c.Now()
	second := c.Now()
	third := c.Now()

	assert.Equal(t, fixed.Truncate(time.Microsecond), first)
	assert.Equal(t, first.Add(time.Microsecond), second)
	assert.True(t, third.After(second))
}

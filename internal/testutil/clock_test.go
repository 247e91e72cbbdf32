package testutil

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var epoch = time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

func TestFixedClock_Stopped(t *testing.T) {
	clock := NewFixedClock(epoch)

	assert.Equal(t, epoch, clock.Now())
	assert.Equal(t, epoch, clock.Now(), "Now must not move the clock")
}

func TestFixedClock_Advance(t *testing.T) {
	clock := NewFixedClock(epoch)

	got := clock.Advance(36 * time.Hour)

	want := time.Date(2024, 1, 2, 21, 0, 0, 0, time.UTC)
	assert.Equal(t, want, got)
	assert.Equal(t, want, clock.Now())
}

func TestFixedClock_Set(t *testing.T) {
	clock := NewFixedClock(epoch)
	clock.Advance(time.Hour)

	later := time.Date(2030, 6, 1, 0, 0, 0, 0, time.UTC)
	clock.Set(later)

	assert.Equal(t, later, clock.Now())
}

func TestFixedClock_Concurrent(t *testing.T) {
	clock := NewFixedClock(epoch)

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			clock.Advance(time.Second)
		}()
	}
	wg.Wait()

	assert.Equal(t, epoch.Add(100*time.Second), clock.Now())
}

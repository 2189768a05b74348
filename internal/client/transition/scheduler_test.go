package transition

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchedule_RunsOnce(t *testing.T) {
	s := NewScheduler()
	done := make(chan struct{}, 2)

	s.Schedule(5*time.Millisecond, func() { done <- struct{}{} })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("callback did not run")
	}
	assert.Eventually(t, func() bool { return s.Pending() == 0 }, time.Second, time.Millisecond)
	assert.Len(t, done, 0)
}

func TestSchedule_CancelPreventsRun(t *testing.T) {
	s := NewScheduler()
	var ran atomic.Bool

	cancel := s.Schedule(20*time.Millisecond, func() { ran.Store(true) })
	require.Equal(t, 1, s.Pending())
	cancel()
	cancel()

	time.Sleep(50 * time.Millisecond)
	assert.False(t, ran.Load())
	assert.Equal(t, 0, s.Pending())
}

func TestStop_CancelsPendingAndRejectsNew(t *testing.T) {
	s := NewScheduler()
	var runs atomic.Int32

	s.Schedule(20*time.Millisecond, func() { runs.Add(1) })
	s.Schedule(30*time.Millisecond, func() { runs.Add(1) })
	s.Stop()

	cancel := s.Schedule(time.Millisecond, func() { runs.Add(1) })
	cancel()

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(0), runs.Load())
	assert.Equal(t, 0, s.Pending())
}

func TestSchedule_ZeroDelay(t *testing.T) {
	s := NewScheduler()
	done := make(chan struct{})

	s.Schedule(0, func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("callback did not run")
	}
}

package notifier

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/raulk/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebouncer_CoalescesBurst(t *testing.T) {
	mClock := clock.NewMock()
	mClock.Set(time.Now())
	var fired atomic.Int32
	d := NewDebouncer(mClock, 250*time.Millisecond, func() { fired.Add(1) })

	for i := 0; i < 10; i++ {
		d.Signal()
		mClock.Add(10 * time.Millisecond)
	}
	assert.Equal(t, int32(0), fired.Load(), "quiet window never elapsed")

	mClock.Add(250 * time.Millisecond)
	require.Eventually(t, func() bool { return fired.Load() == 1 },
		time.Second, time.Millisecond, "burst collapses to one callback")

	// A fresh signal after firing starts a new window.
	d.Signal()
	mClock.Add(250 * time.Millisecond)
	require.Eventually(t, func() bool { return fired.Load() == 2 },
		time.Second, time.Millisecond)
}

func TestDebouncer_SignalResetsWindow(t *testing.T) {
	mClock := clock.NewMock()
	mClock.Set(time.Now())
	var fired atomic.Int32
	d := NewDebouncer(mClock, 250*time.Millisecond, func() { fired.Add(1) })

	d.Signal()
	mClock.Add(200 * time.Millisecond)
	d.Signal()
	mClock.Add(200 * time.Millisecond)
	assert.Equal(t, int32(0), fired.Load(), "second signal pushed the deadline out")

	mClock.Add(50 * time.Millisecond)
	require.Eventually(t, func() bool { return fired.Load() == 1 },
		time.Second, time.Millisecond)
}

func TestDebouncer_StopCancelsPending(t *testing.T) {
	mClock := clock.NewMock()
	mClock.Set(time.Now())
	var fired atomic.Int32
	d := NewDebouncer(mClock, 250*time.Millisecond, func() { fired.Add(1) })

	d.Signal()
	d.Stop()
	mClock.Add(time.Second)
	assert.Equal(t, int32(0), fired.Load())

	// Signals after Stop are ignored.
	d.Signal()
	mClock.Add(time.Second)
	assert.Equal(t, int32(0), fired.Load())
}

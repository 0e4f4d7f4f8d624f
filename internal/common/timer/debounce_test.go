package timer_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rupiksha/go-ppob-transaction/internal/common/timer"
)

func TestDebouncer_CoalescesRapidTriggers(t *testing.T) {
	t.Parallel()

	d := timer.NewDebouncer(30 * time.Millisecond)

	var fired atomic.Int32
	for i := 0; i < 5; i++ {
		d.Trigger(func() { fired.Add(1) })
		time.Sleep(5 * time.Millisecond)
	}

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(1), fired.Load())
	assert.False(t, d.Pending())
}

func TestDebouncer_LastCallbackWins(t *testing.T) {
	t.Parallel()

	d := timer.NewDebouncer(30 * time.Millisecond)

	var got atomic.Value
	d.Trigger(func() { got.Store("first") })
	d.Trigger(func() { got.Store("second") })

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, "second", got.Load())
}

func TestDebouncer_Cancel(t *testing.T) {
	t.Parallel()

	d := timer.NewDebouncer(30 * time.Millisecond)

	var fired atomic.Int32
	d.Trigger(func() { fired.Add(1) })

	assert.True(t, d.Pending())
	assert.True(t, d.Cancel())
	assert.False(t, d.Pending())
	assert.False(t, d.Cancel())

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(0), fired.Load())
}

func TestDebouncer_TriggerAfterCancel(t *testing.T) {
	t.Parallel()

	d := timer.NewDebouncer(30 * time.Millisecond)

	var fired atomic.Int32
	d.Trigger(func() { fired.Add(1) })
	d.Cancel()
	d.Trigger(func() { fired.Add(1) })

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(1), fired.Load())
}

package debounce

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestDebouncer_SingleCall(t *testing.T) {
	var called atomic.Int32
	d := New(20 * time.Millisecond)

	d.Debounce(func() { called.Add(1) })
	require.True(t, d.Pending())

	require.Eventually(t, func() bool { return called.Load() == 1 }, time.Second, 5*time.Millisecond)
	require.False(t, d.Pending())
}

func TestDebouncer_RapidCallsRunLastOnce(t *testing.T) {
	var called, last atomic.Int32
	d := New(40 * time.Millisecond)

	for i := int32(1); i <= 10; i++ {
		value := i
		d.Debounce(func() {
			last.Store(value)
			called.Add(1)
		})
		time.Sleep(5 * time.Millisecond)
	}

	require.Eventually(t, func() bool { return called.Load() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(60 * time.Millisecond)
	require.Equal(t, int32(1), called.Load())
	require.Equal(t, int32(10), last.Load())
}

func TestDebouncer_Cancel(t *testing.T) {
	var called atomic.Int32
	d := New(20 * time.Millisecond)

	d.Debounce(func() { called.Add(1) })
	d.Cancel()
	require.False(t, d.Pending())

	time.Sleep(60 * time.Millisecond)
	require.Zero(t, called.Load())
}

func TestDebouncer_ImmediateCancelsPending(t *testing.T) {
	var debounced, immediate atomic.Int32
	d := New(20 * time.Millisecond)

	d.Debounce(func() { debounced.Add(1) })
	d.Immediate(func() { immediate.Add(1) })

	require.Equal(t, int32(1), immediate.Load())
	time.Sleep(60 * time.Millisecond)
	require.Zero(t, debounced.Load())
}

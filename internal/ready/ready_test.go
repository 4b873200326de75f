package ready

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignal_FiresInRegistrationOrder(t *testing.T) {
	s := New()
	var order []string
	s.Subscribe(func() { order = append(order, "first") })
	s.Subscribe(func() { order = append(order, "second") })
	require.Empty(t, order)
	require.Equal(t, 2, s.Pending())

	require.True(t, s.Fire())
	assert.Equal(t, []string{"first", "second"}, order)
	assert.True(t, s.Fired())
	assert.Zero(t, s.Pending())
}

func TestSignal_FiresOnlyOnce(t *testing.T) {
	s := New()
	calls := 0
	s.Subscribe(func() { calls++ })

	require.True(t, s.Fire())
	require.False(t, s.Fire(), "a second Fire must be a no-op")
	assert.Equal(t, 1, calls)
}

func TestSignal_LateSubscriberRunsImmediately(t *testing.T) {
	s := New()
	s.Fire()

	ran := false
	s.Subscribe(func() { ran = true })
	assert.True(t, ran)
	assert.Zero(t, s.Pending())
}

func TestSignal_SubscribeDuringFire(t *testing.T) {
	var s Signal
	var order []string
	s.Subscribe(func() {
		order = append(order, "outer")
		s.Subscribe(func() { order = append(order, "nested") })
	})
	s.Subscribe(func() { order = append(order, "after") })

	s.Fire()
	assert.Equal(t, []string{"outer", "nested", "after"}, order)
}

func TestSignal_NilContinuationIgnored(t *testing.T) {
	s := New()
	s.Subscribe(nil)
	assert.Zero(t, s.Pending())
	assert.NotPanics(t, func() { s.Fire() })
}

package ring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChannelSendOverwritesOldest(t *testing.T) {
	c := NewChannel[int](3)

	for i := 1; i <= 5; i++ {
		c.Send(i)
	}

	// Only the last three survive.
	var got []int
	for {
		v, ok := c.TryReceive()
		if !ok {
			break
		}
		got = append(got, v)
	}
	assert.Equal(t, []int{3, 4, 5}, got)

	m := c.GetMetrics()
	assert.Equal(t, int64(5), m.Written)
	assert.Equal(t, int64(2), m.Overwritten)
	assert.Equal(t, int64(3), m.Processed)
}

func TestChannelTrySend(t *testing.T) {
	c := NewChannel[string](1)

	assert.True(t, c.TrySend("a"))
	assert.False(t, c.TrySend("b"), "full buffer rejects TrySend")

	v, ok := c.Receive()
	require.True(t, ok)
	assert.Equal(t, "a", v)
}

func TestChannelForceSendReportsDrop(t *testing.T) {
	c := NewChannel[int](1)

	assert.False(t, c.ForceSend(1))
	assert.True(t, c.ForceSend(2), "ForceSend on a full buffer drops the oldest")

	v, ok := c.TryReceive()
	require.True(t, ok)
	assert.Equal(t, 2, v)
}

func TestChannelCloseSignalsEOF(t *testing.T) {
	c := NewChannel[int](2)
	c.Send(7)
	c.Close()

	v, ok := c.Receive()
	require.True(t, ok)
	assert.Equal(t, 7, v)

	_, ok = c.Receive()
	assert.False(t, ok)
}

func TestChannelZeroCapacityPanics(t *testing.T) {
	assert.Panics(t, func() { NewChannel[int](0) })
}

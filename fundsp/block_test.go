package fundsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferFrameRoundTrip(t *testing.T) {
	b := NewBuffer(2)
	b.Channel(0)[5] = 1.5
	b.Channel(1)[5] = -2.5

	var f Frame
	f = b.FrameAt(5, f)
	require.Len(t, f, 2)
	assert.Equal(t, float32(1.5), f[0])
	assert.Equal(t, float32(-2.5), f[1])

	f[0], f[1] = 9, 9
	b.SetFrameAt(6, f)
	assert.Equal(t, float32(9), b.Channel(0)[6])
	assert.Equal(t, float32(9), b.Channel(1)[6])
}

func TestBufferCopyFrom(t *testing.T) {
	src := NewBuffer(1)
	dst := NewBuffer(1)
	for i := 0; i < 10; i++ {
		src.Channel(0)[i] = float32(i)
	}
	dst.CopyFrom(src, 10)
	for i := 0; i < 10; i++ {
		assert.Equal(t, float32(i), dst.Channel(0)[i])
	}
}

func TestBufferChannelArithmeticHelpers(t *testing.T) {
	a := NewBuffer(1)
	b := NewBuffer(1)
	for i := 0; i < 4; i++ {
		a.Channel(0)[i] = 2
		b.Channel(0)[i] = 3
	}
	a.AddChannelFrom(0, b, 0, 4)
	assert.Equal(t, float32(5), a.Channel(0)[0])

	a.SubChannelFrom(0, b, 0, 4)
	assert.Equal(t, float32(2), a.Channel(0)[0])

	a.MulChannelFrom(0, b, 0, 4)
	assert.Equal(t, float32(6), a.Channel(0)[0])

	a.NegateChannel(0, 4)
	assert.Equal(t, float32(-6), a.Channel(0)[0])

	a.ScaleChannel(0, 2, 4)
	assert.Equal(t, float32(-12), a.Channel(0)[0])

	a.OffsetChannel(0, 1, 4)
	assert.Equal(t, float32(-11), a.Channel(0)[0])
}

func TestBufferClear(t *testing.T) {
	b := NewBuffer(2)
	b.Channel(0)[0] = 5
	b.Clear(1)
	assert.Equal(t, float32(0), b.Channel(0)[0])
}

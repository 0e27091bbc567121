// Package fundsp implements the static audio graph core: the node
// contract, the signal-flow analysis engine, and the ten combinators
// that assemble nodes into statically-verified processing trees.
package fundsp

import "fmt"

// BlockSize is the number of frames in one block-process call. It is
// fixed at build time for SIMD-friendly planar layout.
const BlockSize = 64

// DefaultSampleRate is the sample rate a freshly constructed node
// assumes until SetSampleRate is called.
const DefaultSampleRate = 44100.0

// Frame is one time-instant slice across a node's channels. Its
// length is the node's arity for the input or output side it came
// from; callers are responsible for that invariant, same as slices
// passed to encoding/binary.
type Frame []float32

// Buffer is a contiguous, channel-major (planar) block of up to
// BlockSize frames. It is heap-owned: channel count is fixed at
// construction and never changes afterward.
type Buffer struct {
	data [][BlockSize]float32
}

// NewBuffer allocates a Buffer with the given channel count. Channels
// start zeroed.
func NewBuffer(channels int) *Buffer {
	if channels < 0 {
		panic(fmt.Sprintf("fundsp: negative channel count %d", channels))
	}
	return &Buffer{data: make([][BlockSize]float32, channels)}
}

// Channels reports the number of channels the buffer was constructed
// with.
func (b *Buffer) Channels() int { return len(b.data) }

// Channel returns a mutable view of samples 0..BlockSize-1 for
// channel i. Callers processing n < BlockSize frames must only read
// or write the first n elements.
func (b *Buffer) Channel(i int) []float32 { return b.data[i][:] }

// Clear zeroes the first n frames of every channel.
func (b *Buffer) Clear(n int) {
	for c := range b.data {
		ch := b.data[c][:n]
		for i := range ch {
			ch[i] = 0
		}
	}
}

// FrameAt reads frame index i (i < BlockSize) across all channels
// into dst, reusing dst's backing array when it has enough capacity.
func (b *Buffer) FrameAt(i int, dst Frame) Frame {
	if cap(dst) < len(b.data) {
		dst = make(Frame, len(b.data))
	}
	dst = dst[:len(b.data)]
	for c := range b.data {
		dst[c] = b.data[c][i]
	}
	return dst
}

// SetFrameAt writes frame f into frame index i across all channels.
// len(f) must equal b.Channels().
func (b *Buffer) SetFrameAt(i int, f Frame) {
	for c := range f {
		b.data[c][i] = f[c]
	}
}

// CopyFrom copies the first n frames of every channel of src into b.
// src and b must have the same channel count.
func (b *Buffer) CopyFrom(src *Buffer, n int) {
	for c := range b.data {
		copy(b.data[c][:n], src.data[c][:n])
	}
}

// Mono returns a single-channel view, suitable for GetMono/FilterMono
// convenience helpers.
func Mono() *Buffer { return NewBuffer(1) }

// Stereo returns a two-channel view, suitable for
// GetStereo/FilterStereo convenience helpers.
func Stereo() *Buffer { return NewBuffer(2) }

// The helpers below are the combinators' only way to move samples
// between scratch buffers. Every one of them is a plain copy or
// arithmetic loop over pre-existing backing arrays: no allocation, so
// combinators built from them stay allocation-free after Allocate().

// CopyChannelFrom copies n samples of src's srcCh into this buffer's
// dstCh.
func (b *Buffer) CopyChannelFrom(dstCh int, src *Buffer, srcCh, n int) {
	copy(b.data[dstCh][:n], src.data[srcCh][:n])
}

// AddChannelFrom accumulates n samples of src's srcCh into this
// buffer's dstCh.
func (b *Buffer) AddChannelFrom(dstCh int, src *Buffer, srcCh, n int) {
	d := b.data[dstCh][:n]
	s := src.data[srcCh][:n]
	for i := range d {
		d[i] += s[i]
	}
}

// SubChannelFrom subtracts n samples of src's srcCh from this
// buffer's dstCh (dst -= src).
func (b *Buffer) SubChannelFrom(dstCh int, src *Buffer, srcCh, n int) {
	d := b.data[dstCh][:n]
	s := src.data[srcCh][:n]
	for i := range d {
		d[i] -= s[i]
	}
}

// MulChannelFrom multiplies this buffer's dstCh by n samples of
// src's srcCh, elementwise in place.
func (b *Buffer) MulChannelFrom(dstCh int, src *Buffer, srcCh, n int) {
	d := b.data[dstCh][:n]
	s := src.data[srcCh][:n]
	for i := range d {
		d[i] *= s[i]
	}
}

// NegateChannel negates n samples of channel ch in place.
func (b *Buffer) NegateChannel(ch, n int) {
	d := b.data[ch][:n]
	for i := range d {
		d[i] = -d[i]
	}
}

// ScaleChannel multiplies n samples of channel ch by g in place.
func (b *Buffer) ScaleChannel(ch int, g float32, n int) {
	d := b.data[ch][:n]
	for i := range d {
		d[i] *= g
	}
}

// OffsetChannel adds c to n samples of channel ch in place.
func (b *Buffer) OffsetChannel(ch int, c float32, n int) {
	d := b.data[ch][:n]
	for i := range d {
		d[i] += c
	}
}

// Package control provides the cross-goroutine plumbing settings
// travel through once they leave the single-threaded render path: a
// lock-free shared scalar cell, and a bounded-channel listener that
// lets any number of producer goroutines queue Setting updates for a
// node that is only ever touched from the render thread.
package control

import (
	"math"
	"sync/atomic"
)

// Shared is a lock-free float64 cell safe to write from any goroutine
// and read from the render thread every block, for control-rate
// values that do not need the full addressed-Setting machinery (a
// shared LFO target, a UI fader value).
type Shared struct {
	bits atomic.Uint64
}

// NewShared returns a Shared initialized to v.
func NewShared(v float64) *Shared {
	s := &Shared{}
	s.Store(v)
	return s
}

// Store writes v. Safe to call concurrently with Load and with other
// Store calls.
func (s *Shared) Store(v float64) { s.bits.Store(math.Float64bits(v)) }

// Load reads the current value. Safe to call concurrently with Store.
func (s *Shared) Load() float64 { return math.Float64frombits(s.bits.Load()) }

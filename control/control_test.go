package control

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SamiPerttu/fundsp/fundsp"
	"github.com/SamiPerttu/fundsp/units"
)

func TestSharedStoreLoadRoundTrips(t *testing.T) {
	s := NewShared(440)
	assert.Equal(t, 440.0, s.Load())
	s.Store(880)
	assert.Equal(t, 880.0, s.Load())
}

func TestSharedIsSafeForConcurrentWriters(t *testing.T) {
	s := NewShared(0)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(v float64) {
			defer wg.Done()
			s.Store(v)
		}(float64(i))
	}
	wg.Wait()
	// No assertion on which write won, only that Load never panics or
	// observes a torn bit pattern (atomic.Uint64 guarantees the latter).
	_ = s.Load()
}

func TestListenerAppliesQueuedSettingsInOrder(t *testing.T) {
	n := units.Constant(0)
	n.Allocate()
	l := NewListener(n, 4)

	l.Send(fundsp.ValueSetting(1), nil)
	l.Send(fundsp.ValueSetting(2), nil)
	l.Send(fundsp.ValueSetting(3), nil)
	l.Apply()

	out := n.Tick(nil)
	assert.Equal(t, float32(3), out[0], "the last queued setting should win")
	assert.Equal(t, uint64(0), l.Dropped())
}

func TestListenerDropsUpdatesPastCapacity(t *testing.T) {
	n := units.Constant(0)
	l := NewListener(n, 2)

	l.Send(fundsp.ValueSetting(1), nil)
	l.Send(fundsp.ValueSetting(2), nil)
	l.Send(fundsp.ValueSetting(3), nil)

	require.Equal(t, uint64(1), l.Dropped())
}

func TestListenerNodeReturnsWrappedNode(t *testing.T) {
	n := units.Constant(5)
	l := NewListener(n, 1)
	assert.Same(t, n, l.Node())
}

func TestListenDrainsSettingsBeforeRendering(t *testing.T) {
	sender, node := Listen(units.Constant(0), 4)
	node.Allocate()

	sender.Send(fundsp.ValueSetting(7), nil)
	out := node.Tick(nil)
	assert.Equal(t, float32(7), out[0], "a queued setting should land before the tick renders")
}

func TestListenNodeMirrorsWrappedArityAndRoute(t *testing.T) {
	_, node := Listen(units.Constant(3), 1)
	assert.Equal(t, 0, node.Inputs())
	assert.Equal(t, 1, node.Outputs())
	tags := node.Route(nil)
	require.Len(t, tags, 1)
	assert.Equal(t, fundsp.KindValue, tags[0].Kind)
}

func TestNewListenerRejectsZeroCapacity(t *testing.T) {
	n := units.Constant(0)
	l := NewListener(n, 0)
	l.Send(fundsp.ValueSetting(1), nil)
	assert.Equal(t, uint64(0), l.Dropped(), "capacity 0 should be promoted to 1, holding the first update")
}

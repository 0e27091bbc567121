package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SamiPerttu/fundsp/fundsp"
)

func TestDelayDelaysBySampleCount(t *testing.T) {
	d := Delay(3)
	d.Allocate()
	var out []float32
	for i := 1; i <= 6; i++ {
		out = append(out, d.Tick(fundsp.Frame{float32(i)})[0])
	}
	assert.Equal(t, []float32{0, 0, 0, 1, 2, 3}, out)
}

func TestDelayZeroIsIdentity(t *testing.T) {
	d := Delay(0)
	d.Allocate()
	out := d.Tick(fundsp.Frame{5})
	assert.Equal(t, float32(5), out[0])
}

func TestDelayRouteReportsLatency(t *testing.T) {
	d := Delay(10)
	lat := fundsp.Latency(d)
	require.Equal(t, 10.0, lat)
}

package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"
)

func TestNoiseIsDeterministicPerInstance(t *testing.T) {
	a := Noise()
	a.Allocate()
	var seqA []float64
	for i := 0; i < 50; i++ {
		seqA = append(seqA, float64(a.Tick(nil)[0]))
	}

	b := Noise()
	b.Allocate()
	var seqB []float64
	for i := 0; i < 50; i++ {
		seqB = append(seqB, float64(b.Tick(nil)[0]))
	}
	assert.Equal(t, seqA, seqB, "two freshly constructed Noise nodes with no Ping commit follow the same default seed")
}

func TestNoiseDecorrelatesAfterPingCommit(t *testing.T) {
	a := Noise().(*noiseNode)
	b := Noise().(*noiseNode)
	a.Allocate()
	b.Allocate()
	a.Ping(true, 0x1)
	b.Ping(true, 0x2)

	n := 2000
	seqA := make([]float64, n)
	seqB := make([]float64, n)
	for i := 0; i < n; i++ {
		seqA[i] = float64(a.Tick(nil)[0])
		seqB[i] = float64(b.Tick(nil)[0])
	}
	corr := stat.Correlation(seqA, seqB, nil)
	require.Less(t, corr, 0.2, "noise streams seeded from different hashes should not correlate")
}

package units

import "math"

// hammingWindow is the Hamming window shape, adapted from the
// windowed-sinc filter generator this package's FIR designer is
// grounded on.
func hammingWindow(size, j int) float64 {
	n := float64(size)
	k := float64(j)
	return 0.53836 - 0.46164*math.Cos((k*2*math.Pi)/(n-1))
}

// DesignLowpassFIR returns the taps of a windowed-sinc lowpass filter
// with cutoff fc expressed as a fraction of the sample rate (0, 0.5),
// normalized for unity gain at DC. taps must be odd and at least 3.
func DesignLowpassFIR(fc float64, taps int) []float64 {
	if taps < 3 {
		panic("units: DesignLowpassFIR requires at least 3 taps")
	}
	kernel := make([]float64, taps)
	center := 0.5 * float64(taps-1)
	for j := 0; j < taps; j++ {
		var sinc float64
		d := float64(j) - center
		if d == 0 {
			sinc = 2 * fc
		} else {
			sinc = math.Sin(2*math.Pi*fc*d) / (math.Pi * d)
		}
		kernel[j] = sinc * hammingWindow(taps, j)
	}
	var gain float64
	for _, v := range kernel {
		gain += v
	}
	for j := range kernel {
		kernel[j] /= gain
	}
	return kernel
}

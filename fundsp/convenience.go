package fundsp

// GetMono renders frames samples from a zero-input, single-output
// node in BlockSize-sized chunks and returns them as a flat slice
// as a convenience layer over loading and rendering whole waves.
func GetMono(n Node, frames int) []float32 {
	n.Reset()
	n.Allocate()
	in := NewBuffer(n.Inputs())
	out := NewBuffer(n.Outputs())
	result := make([]float32, frames)
	pos := 0
	for pos < frames {
		chunk := BlockSize
		if frames-pos < chunk {
			chunk = frames - pos
		}
		n.Process(in, out, chunk)
		copy(result[pos:pos+chunk], out.Channel(0)[:chunk])
		pos += chunk
	}
	return result
}

// GetStereo is GetMono for a two-output node, returning left and right
// channels separately.
func GetStereo(n Node, frames int) (left, right []float32) {
	n.Reset()
	n.Allocate()
	in := NewBuffer(n.Inputs())
	out := NewBuffer(n.Outputs())
	left = make([]float32, frames)
	right = make([]float32, frames)
	pos := 0
	for pos < frames {
		chunk := BlockSize
		if frames-pos < chunk {
			chunk = frames - pos
		}
		n.Process(in, out, chunk)
		copy(left[pos:pos+chunk], out.Channel(0)[:chunk])
		copy(right[pos:pos+chunk], out.Channel(1)[:chunk])
		pos += chunk
	}
	return left, right
}

// FilterMono runs input through a single-input, single-output node in
// BlockSize-sized chunks and returns the result.
func FilterMono(n Node, input []float32) []float32 {
	n.Reset()
	n.Allocate()
	in := NewBuffer(1)
	out := NewBuffer(n.Outputs())
	result := make([]float32, len(input))
	pos := 0
	for pos < len(input) {
		chunk := BlockSize
		if len(input)-pos < chunk {
			chunk = len(input) - pos
		}
		copy(in.Channel(0)[:chunk], input[pos:pos+chunk])
		n.Process(in, out, chunk)
		copy(result[pos:pos+chunk], out.Channel(0)[:chunk])
		pos += chunk
	}
	return result
}

// FilterStereo runs left/right through a two-input, two-output node in
// BlockSize-sized chunks and returns the result.
func FilterStereo(n Node, left, right []float32) (outLeft, outRight []float32) {
	n.Reset()
	n.Allocate()
	in := NewBuffer(2)
	out := NewBuffer(n.Outputs())
	frames := len(left)
	outLeft = make([]float32, frames)
	outRight = make([]float32, frames)
	pos := 0
	for pos < frames {
		chunk := BlockSize
		if frames-pos < chunk {
			chunk = frames - pos
		}
		copy(in.Channel(0)[:chunk], left[pos:pos+chunk])
		copy(in.Channel(1)[:chunk], right[pos:pos+chunk])
		n.Process(in, out, chunk)
		copy(outLeft[pos:pos+chunk], out.Channel(0)[:chunk])
		copy(outRight[pos:pos+chunk], out.Channel(1)[:chunk])
		pos += chunk
	}
	return outLeft, outRight
}

package dynamic

import "github.com/SamiPerttu/fundsp/fundsp"

// Renderer is the backend half of the dynamic graph: the real-time
// render thread's only handle on a Network. It pulls committed
// backend snapshots off the commit ring at block boundaries and
// crossfades into each new one over a fixed number of frames so a
// Replace/Connect/Commit never produces an audible click.
// Renderer.Process is the only method meant to run on the audio
// thread; it never allocates once constructed.
type Renderer struct {
	ring       *commitRing
	nOut       int
	current    *backend
	fadingFrom *backend
	fadeTotal  int
	fadeDone   int
	scratchOld *fundsp.Buffer
	scratchNew *fundsp.Buffer
}

// defaultFadeFrames is the crossfade length used when NewRenderer is
// given a non-positive fade length: about 12ms at 44.1kHz, short
// enough to feel instantaneous and long enough to mask a discontinuity.
const defaultFadeFrames = 512

// NewRenderer builds a Renderer reading commits from net. fadeFrames
// is the crossfade duration in samples; non-positive values fall back
// to defaultFadeFrames.
func NewRenderer(net *Network, fadeFrames int) *Renderer {
	if fadeFrames <= 0 {
		fadeFrames = defaultFadeFrames
	}
	return &Renderer{
		ring:       net.ring,
		nOut:       net.nOut,
		fadeTotal:  fadeFrames,
		scratchOld: fundsp.NewBuffer(net.nOut),
		scratchNew: fundsp.NewBuffer(net.nOut),
	}
}

// Process renders n frames (n <= fundsp.BlockSize) of the network's
// current committed state into output, crossfading across any commit
// that arrived since the previous call.
func (r *Renderer) Process(input, output *fundsp.Buffer, n int) {
	for {
		next := r.ring.pop()
		if next == nil {
			break
		}
		if r.current != nil {
			r.fadingFrom = r.current
			r.fadeDone = 0
		}
		r.current = next
	}

	if r.current == nil {
		output.Clear(n)
		return
	}
	if r.fadingFrom == nil {
		r.current.process(input, output, n)
		return
	}

	r.fadingFrom.process(input, r.scratchOld, n)
	r.current.process(input, r.scratchNew, n)

	for ch := 0; ch < r.nOut; ch++ {
		oldC := r.scratchOld.Channel(ch)
		newC := r.scratchNew.Channel(ch)
		outC := output.Channel(ch)
		for i := 0; i < n; i++ {
			pos := r.fadeDone + i + 1
			var w float32
			if pos >= r.fadeTotal {
				w = 1
			} else {
				w = float32(pos) / float32(r.fadeTotal)
			}
			outC[i] = (1-w)*oldC[i] + w*newC[i]
		}
	}

	r.fadeDone += n
	if r.fadeDone >= r.fadeTotal {
		r.fadingFrom = nil
		r.fadeDone = 0
	}
}

package sequencer

import (
	"github.com/SamiPerttu/fundsp/control"
	"github.com/SamiPerttu/fundsp/fundsp"
)

// Player is the backend half: it owns a sample clock and the set of
// currently-playing and not-yet-started events, and renders them
// summed into the sequencer's output channels. Process is the only
// method meant to run on the render thread. Applying a freshly
// arrived schedule may allocate (a newly started voice needs its own
// scratch buffer, the same way Allocate does on first use elsewhere),
// and so does a block in which a pending event reaches its start time;
// a block in which no schedule arrives and no event starts does not.
type Player struct {
	nOut      int
	ring      *scheduleRing
	clock     int64
	shared    *control.Shared
	pending   []Event
	active    []*active
	zeroInput *fundsp.Buffer
}

// NewPlayer builds a Player reading schedule commits from s. It
// publishes its sample clock into s's shared cell every Process call
// so PushRelative on the frontend sees an up-to-date "current stream
// time" even when called from a different goroutine than the one
// driving Process.
func NewPlayer(s *Sequencer) *Player {
	return &Player{
		nOut:      s.nOut,
		ring:      s.ring,
		shared:    s.clock,
		zeroInput: fundsp.NewBuffer(0),
	}
}

// applySchedule replaces the pending/active sets with snap's events,
// carrying over render state (the scratch buffer, any samples already
// produced) for events whose ID was already active.
func (p *Player) applySchedule(snap *schedule) {
	oldActive := make(map[EventID]*active, len(p.active))
	for _, a := range p.active {
		oldActive[a.ID] = a
	}
	p.active = p.active[:0]
	p.pending = p.pending[:0]
	for _, e := range snap.events {
		if e.Start > p.clock {
			p.pending = append(p.pending, e)
			continue
		}
		if old, ok := oldActive[e.ID]; ok {
			old.Event = e
			p.active = append(p.active, old)
			continue
		}
		e.Node.Allocate()
		p.active = append(p.active, &active{Event: e, out: fundsp.NewBuffer(e.Node.Outputs())})
	}
	insertionSortEventsByStart(p.pending)
}

func insertionSortEventsByStart(events []Event) {
	for i := 1; i < len(events); i++ {
		v := events[i]
		j := i - 1
		for j >= 0 && events[j].Start > v.Start {
			events[j+1] = events[j]
			j--
		}
		events[j+1] = v
	}
}

// Process advances the sequencer clock by n samples and sums every
// active event's output, faded in/out per its envelope, into output.
func (p *Player) Process(output *fundsp.Buffer, n int) {
	for {
		snap := p.ring.pop()
		if snap == nil {
			break
		}
		p.applySchedule(snap)
	}

	output.Clear(n)

	horizon := p.clock + int64(n)
	for len(p.pending) > 0 && p.pending[0].Start < horizon {
		e := p.pending[0]
		p.pending = p.pending[1:]
		e.Node.Allocate()
		p.active = append(p.active, &active{Event: e, out: fundsp.NewBuffer(e.Node.Outputs())})
	}

	remaining := p.active[:0]
	for _, a := range p.active {
		if p.renderEvent(a, output, n) {
			remaining = append(remaining, a)
		}
	}
	p.active = remaining
	p.clock += int64(n)
	p.shared.Store(float64(p.clock))
}

// renderEvent mixes one event's contribution into output and reports
// whether the event is still alive afterward.
func (p *Player) renderEvent(a *active, output *fundsp.Buffer, n int) bool {
	a.Node.Process(p.zeroInput, a.out, n)

	channels := a.Node.Outputs()
	if channels > p.nOut {
		channels = p.nOut
	}
	for i := 0; i < n; i++ {
		sample := p.clock + int64(i)
		local := sample - a.Start
		if local < 0 {
			continue
		}
		w := float32(1)
		if a.FadeIn > 0 && local < int64(a.FadeIn) {
			w = float32(local) / float32(a.FadeIn)
		}
		if a.End >= 0 {
			toEnd := a.End - sample
			if toEnd <= 0 {
				w = 0
			} else if a.FadeOut > 0 && toEnd < int64(a.FadeOut) {
				progress := 1 - float64(toEnd)/float64(a.FadeOut)
				fw := float32(1 - a.FadeCurve.Apply(progress))
				if fw < w {
					w = fw
				}
			}
		}
		for ch := 0; ch < channels; ch++ {
			output.Channel(ch)[i] += a.out.Channel(ch)[i] * w
		}
	}
	if a.End >= 0 && p.clock+int64(n) >= a.End+int64(a.FadeOut) {
		return false
	}
	return true
}

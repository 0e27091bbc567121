package sequencer

import (
	"github.com/SamiPerttu/fundsp/control"
	"github.com/SamiPerttu/fundsp/fundsp"
	"github.com/SamiPerttu/fundsp/internal/logutil"
)

// schedule is the immutable snapshot a Commit hands to the render
// thread: every event known at commit time, in start order.
type schedule struct {
	nOut   int
	events []Event
}

// Sequencer is the frontend half: editing methods run on whatever
// goroutine owns the timeline (a script, a UI), never the render
// thread. Pair it with a Player via NewPlayer.
type Sequencer struct {
	nOut   int
	nextID EventID
	events map[EventID]*Event
	order  []EventID
	ring   *scheduleRing
	log    logutil.Logger
	clock  *control.Shared
}

// New builds an empty sequencer producing nOut channels. clock is the
// shared cell Sequencer reads "current stream time" from for
// PushRelative and Player writes it to every Process call; it is a
// plain control.Shared rather than
// bespoke plumbing, so any other goroutine can also observe playback
// position.
func New(nOut int, log logutil.Logger) *Sequencer {
	return &Sequencer{
		nOut:   nOut,
		events: make(map[EventID]*Event),
		ring:   newScheduleRing(4),
		log:    logutil.Or(log),
		clock:  control.NewShared(0),
	}
}

// Push schedules node to play from start to end (end < 0 for
// indefinite), faded in over fadeIn frames and out over fadeOut
// frames shaped by curve (nil means control.Linear), and returns its
// EventID. node must have zero inputs and nOut outputs.
func (s *Sequencer) Push(node fundsp.Node, start, end int64, fadeIn, fadeOut int, curve control.Curve) EventID {
	id := s.nextID
	s.nextID++
	e := &Event{ID: id, Node: node, Start: start, End: end, FadeIn: fadeIn, FadeOut: fadeOut, FadeCurve: curve}
	s.events[id] = e
	s.order = append(s.order, id)
	s.log.Debug("scheduled event", "id", id, "start", start, "end", end)
	return id
}

// PushRelative schedules node to start delay samples after the
// sequencer's current stream time, ending duration samples
// later (duration < 0 for indefinite). Current stream time is read
// from clock, the same atomic cell the paired Player advances every
// Process call (see NewPlayer), so PushRelative is meaningful even
// when called from a goroutine that never calls Process itself.
func (s *Sequencer) PushRelative(node fundsp.Node, delay, duration int64, fadeIn, fadeOut int, curve control.Curve) EventID {
	start := int64(s.clock.Load()) + delay
	end := int64(-1)
	if duration >= 0 {
		end = start + duration
	}
	return s.Push(node, start, end, fadeIn, fadeOut, curve)
}

// Edit updates an already-scheduled event's end time and fade-out, for
// example to cut a note short. Returns false if id is unknown.
func (s *Sequencer) Edit(id EventID, end int64, fadeOut int) bool {
	e, ok := s.events[id]
	if !ok {
		return false
	}
	e.End = end
	e.FadeOut = fadeOut
	s.log.Debug("edited event", "id", id, "end", end)
	return true
}

// Remove drops an event before it is committed, or stops it from ever
// being included in a future commit again after removal.
func (s *Sequencer) Remove(id EventID) {
	delete(s.events, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Commit freezes the current schedule and hands it to the render
// thread. Allocates; frontend-only.
func (s *Sequencer) Commit() {
	snap := &schedule{nOut: s.nOut, events: make([]Event, 0, len(s.order))}
	for _, id := range s.order {
		snap.events = append(snap.events, *s.events[id])
	}
	for _, e := range snap.events {
		e.Node.Allocate()
	}
	s.log.Info("committed schedule", "events", len(snap.events))
	s.ring.push(snap)
}

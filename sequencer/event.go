// Package sequencer schedules generator nodes onto a shared timeline:
// each Event owns a node that starts and stops at specific sample
// times, faded in and out so starts and stops never click. Like
// dynamic, it is split into a frontend that edits the schedule and a
// backend Player that renders it, connected by a commit handoff so the
// render thread never blocks; it allocates only when a new schedule
// arrives or an event starts.
package sequencer

import (
	"github.com/SamiPerttu/fundsp/control"
	"github.com/SamiPerttu/fundsp/fundsp"
)

// EventID identifies a scheduled event returned by Push/PushRelative.
type EventID uint64

// Event is one scheduled voice: a zero-input generator node active
// from Start to End (in samples on the sequencer's own clock), faded
// in linearly over FadeIn frames and out over FadeOut frames shaped
// by FadeCurve (nil means control.Linear, same as before FadeCurve
// existed).
type Event struct {
	ID        EventID
	Node      fundsp.Node
	Start     int64
	End       int64 // < 0 means the event never ends on its own
	FadeIn    int
	FadeOut   int
	FadeCurve control.Curve
}

// active is the backend's per-event render state: the event (sharing
// the node instance that was pushed) plus a scratch output buffer
// sized to the node's outputs.
type active struct {
	Event
	out *fundsp.Buffer
}

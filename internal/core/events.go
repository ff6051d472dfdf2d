package core

import "fmt"

// EventKind classifies an outbound notification produced during a tick.
type EventKind int

const (
	EventCue       EventKind = iota // One-shot sound effect
	EventPlayTrack                  // Start a music track
	EventStopTrack                  // Stop the current music track
)

// Sound cue names.
const (
	CueBounce     = "bounce"
	CueBrickBreak = "brick_break"
	CueBallLost   = "ball_lost"
	CueGameOver   = "game_over"
	CueWin        = "win"
)

// Music track names.
const (
	TrackPlay = "play"
	TrackEnd  = "end"
)

// Event is a fire-and-forget request for an external collaborator (audio, mostly).
// Consumers may ignore any event; nothing flows back into the simulation.
type Event struct {
	Kind EventKind
	Name string // Cue or track name; empty for EventStopTrack
	Loop bool   // Only meaningful for EventPlayTrack
}

// String returns a compact description, e.g. "cue:bounce" or "play:end".
func (e Event) String() string {
	switch e.Kind {
	case EventCue:
		return "cue:" + e.Name
	case EventPlayTrack:
		if e.Loop {
			return fmt.Sprintf("play:%s(loop)", e.Name)
		}
		return "play:" + e.Name
	case EventStopTrack:
		return "stop"
	default:
		return "unknown"
	}
}

// Events is the outbound queue filled during one tick and drained by the caller.
type Events struct {
	items []Event
}

// Cue queues a sound cue.
func (q *Events) Cue(name string) {
	q.items = append(q.items, Event{Kind: EventCue, Name: name})
}

// PlayTrack queues a music start request.
func (q *Events) PlayTrack(name string, loop bool) {
	q.items = append(q.items, Event{Kind: EventPlayTrack, Name: name, Loop: loop})
}

// StopTrack queues a music stop request.
func (q *Events) StopTrack() {
	q.items = append(q.items, Event{Kind: EventStopTrack})
}

// Len returns the number of queued events.
func (q *Events) Len() int {
	return len(q.items)
}

// Drain returns the queued events and empties the queue.
// The returned slice is owned by the caller.
func (q *Events) Drain() []Event {
	if len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// CountCues counts cue events with the given name.
func CountCues(events []Event, name string) int {
	n := 0
	for _, e := range events {
		if e.Kind == EventCue && e.Name == name {
			n++
		}
	}
	return n
}

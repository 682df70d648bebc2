package events

import (
	"sync"

	"github.com/spritzen-labs/simply-staking/internal/types"
)

// Sink receives committed events. Emit is called while the emitting
// component holds its lock, so implementations must not block or call back.
type Sink interface {
	Emit(ev types.Event)
}

type SinkFunc func(ev types.Event)

func (f SinkFunc) Emit(ev types.Event) {
	f(ev)
}

// Discard drops every event.
var Discard Sink = SinkFunc(func(types.Event) {})

type fanout []Sink

// Fanout forwards every event to all sinks in order.
func Fanout(sinks ...Sink) Sink {
	return fanout(sinks)
}

func (f fanout) Emit(ev types.Event) {
	for _, s := range f {
		s.Emit(ev)
	}
}

// Recorder keeps events in memory until they are drained.
type Recorder struct {
	mu     sync.Mutex
	events []types.Event
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Emit(ev types.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

// Events returns a copy of everything recorded so far.
func (r *Recorder) Events() []types.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]types.Event, len(r.events))
	copy(out, r.events)
	return out
}

// Drain returns the recorded events and forgets them.
func (r *Recorder) Drain() []types.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.events
	r.events = nil
	return out
}

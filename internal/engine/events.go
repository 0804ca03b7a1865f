package engine

type EventKind string

const (
	EventLevelUp   EventKind = "level-up"
	EventLevelDown EventKind = "level-down"
	EventPenalty   EventKind = "discipline-penalty"
)

// Event is a fire-and-forget notification for UI/voice collaborators.
// Events are not part of persisted state.
type Event struct {
	Kind    EventKind
	Level   int    // new level for level-up / level-down
	CheckID string // failing check for discipline-penalty
}

// Sink receives engine events. Implementations must not call back into the
// Store; they run synchronously inside the emitting mutation.
type Sink interface {
	Notify(Event)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(Event)

func (f SinkFunc) Notify(e Event) { f(e) }

// MultiSink fans an event out to several sinks.
type MultiSink []Sink

func (m MultiSink) Notify(e Event) {
	for _, s := range m {
		s.Notify(e)
	}
}

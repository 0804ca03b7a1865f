package engine

import (
	"testing"
	"time"
)

// fakeClock is a frozen clock the tests advance by hand.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) advanceDays(n int) { c.now = c.now.AddDate(0, 0, n) }

func testClock() *fakeClock {
	// A fixed instant keeps archive dates and date keys deterministic.
	return &fakeClock{now: time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)}
}

// eventRecorder captures emitted events in order.
type eventRecorder struct {
	events []Event
}

func (r *eventRecorder) Notify(e Event) { r.events = append(r.events, e) }

func (r *eventRecorder) ofKind(kind EventKind) []Event {
	var out []Event
	for _, e := range r.events {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

// newTestStore builds a store over a fresh default state with a frozen clock.
func newTestStore(t *testing.T) (*Store, *fakeClock, *eventRecorder) {
	t.Helper()
	clock := testClock()
	rec := &eventRecorder{}
	store := NewStore(DefaultState(clock), WithClock(clock), WithSink(rec))
	return store, clock, rec
}

// newSeededStore builds a store over an explicit aggregate.
func newSeededStore(t *testing.T, st State, clock *fakeClock) (*Store, *eventRecorder) {
	t.Helper()
	if st.History == nil {
		st.History = map[string]DayProgress{}
	}
	rec := &eventRecorder{}
	return NewStore(st, WithClock(clock), WithSink(rec)), rec
}

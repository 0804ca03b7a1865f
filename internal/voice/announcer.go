package voice

import (
	"fmt"
	"io"

	"soloquest/internal/engine"
)

// Announcer renders engine events as spoken-style announcements. The core
// only knows the Sink interface; how the message is actually voiced is a
// platform concern, so this implementation writes lines to out (a terminal,
// a pipe to a TTS tool, ...).
type Announcer struct {
	out     io.Writer
	enabled func() bool
}

// NewAnnouncer builds an announcer. enabled is consulted per event so the
// aggregate's voiceEnabled flag takes effect immediately.
func NewAnnouncer(out io.Writer, enabled func() bool) *Announcer {
	return &Announcer{out: out, enabled: enabled}
}

func (a *Announcer) Notify(e engine.Event) {
	if a.enabled != nil && !a.enabled() {
		return
	}

	switch e.Kind {
	case engine.EventLevelUp:
		fmt.Fprintf(a.out, "🔊 Level up! You are now level %d, rank %s.\n", e.Level, engine.Rank(e.Level))
	case engine.EventLevelDown:
		fmt.Fprintf(a.out, "🔊 Level down. You dropped to level %d.\n", e.Level)
	case engine.EventPenalty:
		fmt.Fprintf(a.out, "🔊 Discipline penalty applied.\n")
	}
}

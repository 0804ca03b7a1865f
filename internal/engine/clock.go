package engine

import "time"

const (
	// DateKeyFormat keys history entries and reset bookkeeping by the
	// device-local calendar date. No timezone normalization: this is a
	// single-user, device-local tracker.
	DateKeyFormat = "2006-01-02"

	// ArchiveDateFormat is the human-readable completion date frozen into
	// the temporary-quest archive.
	ArchiveDateFormat = "2 Jan 2006"
)

// Clock supplies the current time. Injected so day-rollover logic is
// testable.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns the real local-time clock.
func SystemClock() Clock { return systemClock{} }

// DateKey formats t as a local calendar date key.
func DateKey(t time.Time) string { return t.Format(DateKeyFormat) }

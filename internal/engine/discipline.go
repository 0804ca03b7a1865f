package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ParsePenaltyKind parses user input into a penalty kind.
func ParsePenaltyKind(input string) (PenaltyKind, error) {
	p := PenaltyKind(strings.TrimSpace(strings.ToLower(input)))
	if !p.IsValid() {
		return "", fmt.Errorf("invalid penalty kind: %q", input)
	}
	return p, nil
}

// AddCheck creates a discipline check. New checks start with streak 0 and no
// failure date.
func (s *Store) AddCheck(title string, kind PenaltyKind, value int) (DisciplineCheck, error) {
	t, err := normalizeTitle(title)
	if err != nil {
		return DisciplineCheck{}, err
	}
	if !kind.IsValid() {
		return DisciplineCheck{}, errors.New("invalid penalty kind: " + string(kind))
	}
	if value < 0 {
		return DisciplineCheck{}, errors.New("penalty value must be >= 0")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c := DisciplineCheck{
		ID:           uuid.NewString(),
		Title:        t,
		PenaltyKind:  kind,
		PenaltyValue: value,
	}
	s.state.DisciplineChecks = append(s.state.DisciplineChecks, c)
	s.touch()
	s.changed()
	return c, nil
}

// UpdateCheck rewrites a check's prompt and penalty. Streak and failure date
// are untouched.
func (s *Store) UpdateCheck(id, title string, kind PenaltyKind, value int) error {
	t, err := normalizeTitle(title)
	if err != nil {
		return err
	}
	if !kind.IsValid() {
		return errors.New("invalid penalty kind: " + string(kind))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.DisciplineChecks {
		if s.state.DisciplineChecks[i].ID == id {
			s.state.DisciplineChecks[i].Title = t
			s.state.DisciplineChecks[i].PenaltyKind = kind
			s.state.DisciplineChecks[i].PenaltyValue = value
			s.touch()
			s.changed()
			return nil
		}
	}
	return NotFoundError{Kind: "discipline check", ID: id}
}

func (s *Store) RemoveCheck(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := s.state.DisciplineChecks[:0]
	found := false
	for _, c := range s.state.DisciplineChecks {
		if c.ID == id {
			found = true
			continue
		}
		out = append(out, c)
	}
	if !found {
		return NotFoundError{Kind: "discipline check", ID: id}
	}
	s.state.DisciplineChecks = out
	s.touch()
	s.changed()
	return nil
}

// TriggerFailure records a failure on the given check and applies its
// penalty. A second trigger on the same calendar day is a no-op: the
// once-per-day guard is the defense against double penalties from repeated
// taps or duplicate events.
func (s *Store) TriggerFailure(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	today := DateKey(s.clock.Now())

	idx := -1
	for i := range s.state.DisciplineChecks {
		if s.state.DisciplineChecks[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return NotFoundError{Kind: "discipline check", ID: id}
	}

	check := &s.state.DisciplineChecks[idx]
	if check.LastFailedDate == today {
		return nil
	}

	check.CurrentStreak = 0
	check.LastFailedDate = today
	s.state.DisciplineBroken = true

	// Both penalty kinds zero the XP; level_reduction also drops levels,
	// floored at 1.
	switch check.PenaltyKind {
	case PenaltyLevelReduction:
		s.state.Level -= check.PenaltyValue
		if s.state.Level < 1 {
			s.state.Level = 1
		}
		s.state.XP = 0
	default:
		s.state.XP = 0
	}

	dp, ok := s.state.History[today]
	if !ok {
		dp = DayProgress{Level: 1}
	}
	dp.Level = s.state.Level
	dp.Streak = 0
	s.state.History[today] = dp

	s.emit(Event{Kind: EventPenalty, CheckID: id})
	s.touch()
	s.changed()
	return nil
}

// BreakDiscipline triggers the first configured check. Convenience for the
// single "I broke discipline" button.
func (s *Store) BreakDiscipline() error {
	s.mu.Lock()
	var first string
	if len(s.state.DisciplineChecks) > 0 {
		first = s.state.DisciplineChecks[0].ID
	}
	s.mu.Unlock()

	if first == "" {
		return errors.New("no discipline checks configured")
	}
	return s.TriggerFailure(first)
}

package engine

import "errors"

// CheckDailyReset performs the day-rollover transition if the local calendar
// date has moved past the last reset. It is safe to call opportunistically:
// same-day calls are no-ops, and missed days catch up on the next call.
// Reports whether a reset ran.
func (s *Store) CheckDailyReset() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.LastResetDate == DateKey(s.clock.Now()) {
		return false
	}
	s.resetTasksOnlyLocked()
	s.touch()
	s.changed()
	return true
}

// ResetDayTasksOnly closes out the current day: rolls the streak forward or
// back, rewards checks that survived the day, clears completions, and drops
// temporary quests (completed ones were archived at toggle time).
func (s *Store) ResetDayTasksOnly() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetTasksOnlyLocked()
	s.touch()
	s.changed()
}

func (s *Store) resetTasksOnlyLocked() {
	now := s.clock.Now()
	today := DateKey(now)
	yesterday := DateKey(now.AddDate(0, 0, -1))
	closingDate := s.state.LastResetDate

	allDone := len(s.state.PermanentQuests) > 0
	for _, q := range s.state.PermanentQuests {
		if !q.Completed {
			allDone = false
			break
		}
	}
	chained := s.state.Streak.LastCompletedDate == yesterday

	priorStreak := s.state.Streak.Current
	updated := s.state.Streak
	if allDone && !s.state.DisciplineBroken && s.state.Streak.LastCompletedDate != today {
		if chained {
			updated.Current++
		} else {
			updated.Current = 1
		}
		if updated.Current > updated.Longest {
			updated.Longest = updated.Current
		}
		updated.LastCompletedDate = today
	} else {
		// A day that earns no credit breaks the chain. Longest stands.
		updated.Current = 0
	}
	s.state.Streak = updated

	// Checks that went the closed day without failing earn a streak day.
	for i := range s.state.DisciplineChecks {
		if s.state.DisciplineChecks[i].LastFailedDate != closingDate {
			s.state.DisciplineChecks[i].CurrentStreak++
		}
	}

	s.state.DisciplineBroken = false

	for i := range s.state.PermanentQuests {
		s.state.PermanentQuests[i].Completed = false
	}
	s.state.TemporaryQuests = []Quest{}

	// Freeze the closed day's final level/streak, then seed today.
	yd, ok := s.state.History[yesterday]
	if !ok {
		yd = DayProgress{Level: 1}
	}
	yd.Level = s.state.Level
	yd.Streak = priorStreak
	s.state.History[yesterday] = yd

	s.state.History[today] = DayProgress{
		Level:  s.state.Level,
		Streak: updated.Current,
	}

	s.state.LastResetDate = today
}

// ResetDayWithXP is the stricter manual variant: it performs the tasks-only
// reset and additionally takes back the XP gained during the day being
// closed, walking levels down as far as needed.
func (s *Store) ResetDayWithXP() {
	s.mu.Lock()
	defer s.mu.Unlock()

	today := DateKey(s.clock.Now())
	giveBack := s.state.History[today].XPGained

	s.resetTasksOnlyLocked()

	if giveBack > 0 {
		s.applyXP(-giveBack)
	}

	dp := s.state.History[today]
	dp.XPGained = 0
	dp.Level = s.state.Level
	s.state.History[today] = dp

	s.touch()
	s.changed()
}

// SetStreak manually overrides the current streak. Longest only ever grows.
func (s *Store) SetStreak(n int) error {
	if n < 0 {
		return errors.New("streak must be >= 0")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Streak.Current = n
	if n > s.state.Streak.Longest {
		s.state.Streak.Longest = n
	}
	s.touch()
	s.changed()
	return nil
}

// ResetProgressAll wipes progression back to a fresh profile while keeping
// the permanent quest list (uncompleted) and the user's identity.
func (s *Store) ResetProgressAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.XP = 0
	s.state.Level = 1
	s.state.Streak = Streak{}
	s.state.History = map[string]DayProgress{}
	s.state.CompletedHistory = []CompletedQuest{}
	s.state.DisciplineChecks = defaultChecks()
	s.state.DisciplineBroken = false
	for i := range s.state.PermanentQuests {
		s.state.PermanentQuests[i].Completed = false
	}
	s.state.TemporaryQuests = []Quest{}
	s.touch()
	s.changed()
}

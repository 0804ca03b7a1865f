package engine

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

// ToggleResult reports the outcome of flipping a quest's completion state.
type ToggleResult struct {
	Quest       Quest
	XPDelta     int
	LevelBefore int
	LevelAfter  int
	Archived    bool // a completed temporary quest was written to history
}

func normalizeTitle(title string) (string, error) {
	t := strings.TrimSpace(title)
	if t == "" {
		return "", errors.New("title is required")
	}
	return t, nil
}

// AddQuest creates a quest of the given kind and appends it to the matching
// list.
func (s *Store) AddQuest(title string, kind QuestKind) (Quest, error) {
	t, err := normalizeTitle(title)
	if err != nil {
		return Quest{}, err
	}
	if !kind.IsValid() {
		return Quest{}, errors.New("invalid quest kind: " + string(kind))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	q := Quest{
		ID:        uuid.NewString(),
		Title:     t,
		Kind:      kind,
		CreatedAt: s.clock.Now(),
	}
	if kind == QuestPermanent {
		s.state.PermanentQuests = append(s.state.PermanentQuests, q)
	} else {
		s.state.TemporaryQuests = append(s.state.TemporaryQuests, q)
	}
	s.touch()
	s.changed()
	return q, nil
}

// RemoveQuest deletes the quest from whichever list holds it. Ids are unique
// across kinds, so both lists are filtered unconditionally.
func (s *Store) RemoveQuest(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	found := false
	s.state.PermanentQuests = filterQuests(s.state.PermanentQuests, id, &found)
	s.state.TemporaryQuests = filterQuests(s.state.TemporaryQuests, id, &found)
	if !found {
		return NotFoundError{Kind: "quest", ID: id}
	}
	s.touch()
	s.changed()
	return nil
}

func filterQuests(list []Quest, id string, found *bool) []Quest {
	out := list[:0]
	for _, q := range list {
		if q.ID == id {
			*found = true
			continue
		}
		out = append(out, q)
	}
	return out
}

// EditQuest retitles a permanent quest. Temporary quests are ephemeral and
// not editable.
func (s *Store) EditQuest(id, newTitle string) error {
	t, err := normalizeTitle(newTitle)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.PermanentQuests {
		if s.state.PermanentQuests[i].ID == id {
			s.state.PermanentQuests[i].Title = t
			s.touch()
			s.changed()
			return nil
		}
	}
	return NotFoundError{Kind: "permanent quest", ID: id}
}

// ToggleQuest flips a quest's completion state, applies the XP delta, and
// for temporary quests transitioning to completed appends an archive entry.
// Toggling on then off restores XP and level exactly.
func (s *Store) ToggleQuest(id string, kind QuestKind) (*ToggleResult, error) {
	if !kind.IsValid() {
		return nil, errors.New("invalid quest kind: " + string(kind))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	list := &s.state.PermanentQuests
	award := PermanentQuestXP
	if kind == QuestTemporary {
		list = &s.state.TemporaryQuests
		award = TemporaryQuestXP
	}

	idx := -1
	for i := range *list {
		if (*list)[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, NotFoundError{Kind: string(kind) + " quest", ID: id}
	}

	q := &(*list)[idx]
	q.Completed = !q.Completed
	delta := award
	if !q.Completed {
		delta = -award
	}

	res := &ToggleResult{Quest: *q, XPDelta: delta, LevelBefore: s.state.Level}

	if kind == QuestTemporary && q.Completed {
		entry := CompletedQuest{
			ID:          uuid.NewString(),
			Title:       q.Title,
			CompletedAt: s.clock.Now().Format(ArchiveDateFormat),
		}
		// Newest first.
		s.state.CompletedHistory = append([]CompletedQuest{entry}, s.state.CompletedHistory...)
		res.Archived = true
	}

	s.applyXP(delta)
	res.LevelAfter = s.state.Level

	s.bumpDayProgress(delta)
	s.touch()
	s.changed()
	return res, nil
}

// bumpDayProgress folds a toggle's XP delta into today's history entry.
// Counts are clamped at zero so un-completing can never drive them negative.
func (s *Store) bumpDayProgress(delta int) {
	today := DateKey(s.clock.Now())
	dp, ok := s.state.History[today]
	if !ok {
		dp = DayProgress{Level: 1}
	}

	if delta > 0 {
		dp.CompletedCount++
	} else {
		dp.CompletedCount--
	}
	if dp.CompletedCount < 0 {
		dp.CompletedCount = 0
	}
	dp.XPGained += delta
	if dp.XPGained < 0 {
		dp.XPGained = 0
	}
	dp.Level = s.state.Level
	dp.Streak = s.state.Streak.Current
	s.state.History[today] = dp
}

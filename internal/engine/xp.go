package engine

const (
	// BaseXP and XPIncrement define the level curve:
	// RequiredXP(L) = BaseXP + (L-1)*XPIncrement.
	BaseXP      = 100
	XPIncrement = 30

	// XP awarded for completing a quest, by kind. Un-completing reverses
	// the same amount.
	PermanentQuestXP = 10
	TemporaryQuestXP = 5

	// RankTierWidth is the number of levels per rank tier.
	RankTierWidth = 15
)

var rankTiers = []string{"E", "D", "C", "B", "A", "S", "SS", "SSS"}

// RequiredXP returns the XP needed to advance from the given level to the
// next. Strictly increasing in level. Levels below 1 clamp to level 1.
func RequiredXP(level int) int {
	if level < 1 {
		level = 1
	}
	return BaseXP + (level-1)*XPIncrement
}

// Rank maps a level onto one of the ordered rank tiers. Total: out-of-range
// levels clamp to the first or last tier.
func Rank(level int) string {
	if level < 1 {
		level = 1
	}
	idx := (level - 1) / RankTierWidth
	if idx >= len(rankTiers) {
		idx = len(rankTiers) - 1
	}
	return rankTiers[idx]
}

// XPResult describes a level/XP transition. LevelsUp and LevelsDown hold
// every level crossed, in order, so observers can announce each one.
type XPResult struct {
	Level      int
	XP         int
	LevelsUp   []int
	LevelsDown []int
}

// ApplyXP applies an XP delta to a (level, xp) pair, looping level-ups while
// the new XP meets the threshold and level-downs while it is negative.
// At level 1 negative XP clamps to 0 instead of dropping further.
func ApplyXP(level, xp, delta int) XPResult {
	res := XPResult{Level: level, XP: xp + delta}

	for res.XP >= RequiredXP(res.Level) {
		res.XP -= RequiredXP(res.Level)
		res.Level++
		res.LevelsUp = append(res.LevelsUp, res.Level)
	}
	for res.XP < 0 {
		if res.Level <= 1 {
			res.XP = 0
			break
		}
		res.Level--
		res.XP += RequiredXP(res.Level)
		res.LevelsDown = append(res.LevelsDown, res.Level)
	}
	return res
}

// applyXP mutates the store's level/XP and emits one event per level crossed.
func (s *Store) applyXP(delta int) XPResult {
	res := ApplyXP(s.state.Level, s.state.XP, delta)
	s.state.Level = res.Level
	s.state.XP = res.XP
	for _, lvl := range res.LevelsUp {
		s.emit(Event{Kind: EventLevelUp, Level: lvl})
	}
	for _, lvl := range res.LevelsDown {
		s.emit(Event{Kind: EventLevelDown, Level: lvl})
	}
	return res
}

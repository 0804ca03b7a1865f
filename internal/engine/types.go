package engine

import "time"

type QuestKind string

const (
	QuestPermanent QuestKind = "permanent"
	QuestTemporary QuestKind = "temporary"
)

func (k QuestKind) IsValid() bool {
	switch k {
	case QuestPermanent, QuestTemporary:
		return true
	default:
		return false
	}
}

// Quest is a single trackable task. Permanent quests persist and reset to
// incomplete every day; temporary quests live for one day only.
type Quest struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Completed bool      `json:"completed"`
	Kind      QuestKind `json:"type"`
	CreatedAt time.Time `json:"createdAt"`
}

// CompletedQuest is an append-only archive entry for a temporary quest that
// was completed before its day rolled over. CompletedAt is a display string,
// frozen at toggle time.
type CompletedQuest struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	CompletedAt string `json:"completedAt"`
}

type PenaltyKind string

const (
	PenaltyXPReset        PenaltyKind = "xp_reset"
	PenaltyLevelReduction PenaltyKind = "level_reduction"
)

func (p PenaltyKind) IsValid() bool {
	switch p {
	case PenaltyXPReset, PenaltyLevelReduction:
		return true
	default:
		return false
	}
}

// DisciplineCheck is a yes/no failure prompt with an attached penalty.
// CurrentStreak counts consecutive days without a failure. A check can fail
// at most once per calendar day.
type DisciplineCheck struct {
	ID             string      `json:"id"`
	Title          string      `json:"title"`
	PenaltyKind    PenaltyKind `json:"penaltyType"`
	PenaltyValue   int         `json:"penaltyValue"`
	CurrentStreak  int         `json:"currentStreak"`
	LastFailedDate string      `json:"lastFailedDate,omitempty"`
}

// Streak tracks the all-permanent-quests-done day chain.
// Invariant: Longest >= Current.
type Streak struct {
	Current           int    `json:"current"`
	Longest           int    `json:"longest"`
	LastCompletedDate string `json:"lastCompletedDate,omitempty"`
}

// DayProgress is the per-day history snapshot, keyed by local date string.
type DayProgress struct {
	CompletedCount int `json:"completedCount"`
	XPGained       int `json:"xpGained"`
	Level          int `json:"level"`
	Streak         int `json:"streak"`
}

// State is the whole persisted aggregate. It is serialized, stored and
// synced as one document, never field-by-field.
//
// Syncing and LastSyncAt are session-transient and excluded from both local
// persistence and the wire.
type State struct {
	Authenticated    bool                   `json:"isAuthenticated"`
	UserCode         string                 `json:"userCode,omitempty"`
	PermanentQuests  []Quest                `json:"permanentQuests"`
	TemporaryQuests  []Quest                `json:"temporaryQuests"`
	CompletedHistory []CompletedQuest       `json:"completedTemporaryHistory"`
	DisciplineChecks []DisciplineCheck      `json:"disciplineChecks"`
	Streak           Streak                 `json:"streak"`
	XP               int                    `json:"xp"`
	Level            int                    `json:"level"`
	DisciplineBroken bool                   `json:"disciplineBroken"`
	VoiceEnabled     bool                   `json:"voiceEnabled"`
	LastResetDate    string                 `json:"lastResetDate"`
	History          map[string]DayProgress `json:"history"`
	// LastUpdate is the monotonic marker used for last-write-wins conflict
	// resolution across devices.
	LastUpdate int64 `json:"lastUpdateTimestamp"`

	Syncing    bool      `json:"-"`
	LastSyncAt time.Time `json:"-"`
}

// Clone returns a deep copy of the aggregate.
func (s State) Clone() State {
	out := s
	out.PermanentQuests = append([]Quest(nil), s.PermanentQuests...)
	out.TemporaryQuests = append([]Quest(nil), s.TemporaryQuests...)
	out.CompletedHistory = append([]CompletedQuest(nil), s.CompletedHistory...)
	out.DisciplineChecks = append([]DisciplineCheck(nil), s.DisciplineChecks...)
	out.History = make(map[string]DayProgress, len(s.History))
	for k, v := range s.History {
		out.History[k] = v
	}
	return out
}

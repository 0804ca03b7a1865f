package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completeAllPermanents(t *testing.T, store *Store) {
	t.Helper()
	for _, q := range store.Snapshot().PermanentQuests {
		if !q.Completed {
			_, err := store.ToggleQuest(q.ID, QuestPermanent)
			require.NoError(t, err)
		}
	}
}

func TestCheckDailyResetIsIdempotentPerDay(t *testing.T) {
	store, clock, _ := newTestStore(t)

	assert.False(t, store.CheckDailyReset())

	clock.advanceDays(1)
	assert.True(t, store.CheckDailyReset())
	assert.False(t, store.CheckDailyReset())
}

func TestCheckDailyResetCatchesUpAfterMissedDays(t *testing.T) {
	store, clock, _ := newTestStore(t)

	clock.advanceDays(5)
	assert.True(t, store.CheckDailyReset())
	assert.Equal(t, DateKey(clock.Now()), store.Snapshot().LastResetDate)
}

func TestStreakStartsAtOne(t *testing.T) {
	store, clock, _ := newTestStore(t)

	completeAllPermanents(t, store)
	clock.advanceDays(1)
	require.True(t, store.CheckDailyReset())

	snap := store.Snapshot()
	assert.Equal(t, 1, snap.Streak.Current)
	assert.Equal(t, 1, snap.Streak.Longest)
	assert.Equal(t, DateKey(clock.Now()), snap.Streak.LastCompletedDate)
}

func TestStreakChainsFromYesterday(t *testing.T) {
	clock := testClock()
	st := DefaultState(clock)
	st.Streak = Streak{Current: 3, Longest: 5, LastCompletedDate: DateKey(clock.Now())}
	store, _ := newSeededStore(t, st, clock)

	completeAllPermanents(t, store)
	clock.advanceDays(1)
	require.True(t, store.CheckDailyReset())

	snap := store.Snapshot()
	assert.Equal(t, 4, snap.Streak.Current)
	assert.Equal(t, 5, snap.Streak.Longest)
}

func TestStreakRestartsWhenChainBroken(t *testing.T) {
	clock := testClock()
	st := DefaultState(clock)
	// Last credit was two days before the upcoming reset.
	st.Streak = Streak{Current: 6, Longest: 6, LastCompletedDate: DateKey(clock.Now().AddDate(0, 0, -1))}
	store, _ := newSeededStore(t, st, clock)

	completeAllPermanents(t, store)
	clock.advanceDays(1)
	require.True(t, store.CheckDailyReset())

	snap := store.Snapshot()
	assert.Equal(t, 1, snap.Streak.Current)
	assert.Equal(t, 6, snap.Streak.Longest)
}

func TestStreakResetsWhenQuestsIncomplete(t *testing.T) {
	clock := testClock()
	st := DefaultState(clock)
	st.Streak = Streak{Current: 3, Longest: 5, LastCompletedDate: DateKey(clock.Now())}
	store, _ := newSeededStore(t, st, clock)

	// Complete all but one.
	quests := store.Snapshot().PermanentQuests
	for _, q := range quests[1:] {
		_, err := store.ToggleQuest(q.ID, QuestPermanent)
		require.NoError(t, err)
	}

	clock.advanceDays(1)
	require.True(t, store.CheckDailyReset())

	snap := store.Snapshot()
	assert.Equal(t, 0, snap.Streak.Current)
	assert.Equal(t, 5, snap.Streak.Longest)
}

func TestStreakResetsWhenDisciplineBroken(t *testing.T) {
	store, clock, _ := newTestStore(t)

	completeAllPermanents(t, store)
	require.NoError(t, store.TriggerFailure("junk-food"))

	clock.advanceDays(1)
	require.True(t, store.CheckDailyReset())

	snap := store.Snapshot()
	assert.Equal(t, 0, snap.Streak.Current)
	assert.False(t, snap.DisciplineBroken) // cleared by the reset
}

func TestPermanentsUncheckedAndTemporariesDropped(t *testing.T) {
	store, clock, _ := newTestStore(t)

	completeAllPermanents(t, store)
	archived, err := store.AddQuest("done one-off", QuestTemporary)
	require.NoError(t, err)
	_, err = store.ToggleQuest(archived.ID, QuestTemporary)
	require.NoError(t, err)
	_, err = store.AddQuest("abandoned one-off", QuestTemporary)
	require.NoError(t, err)

	clock.advanceDays(1)
	require.True(t, store.CheckDailyReset())

	snap := store.Snapshot()
	for _, q := range snap.PermanentQuests {
		assert.False(t, q.Completed)
	}
	assert.Empty(t, snap.TemporaryQuests)

	// Completed one-off survives only in the archive; the abandoned one
	// is gone entirely.
	require.Len(t, snap.CompletedHistory, 1)
	assert.Equal(t, "done one-off", snap.CompletedHistory[0].Title)
}

func TestPerCheckStreaksRewardSurvivors(t *testing.T) {
	store, clock, _ := newTestStore(t)

	// junk-food fails on the day being closed; broken-discipline survives.
	require.NoError(t, store.TriggerFailure("junk-food"))

	clock.advanceDays(1)
	require.True(t, store.CheckDailyReset())

	snap := store.Snapshot()
	assert.Equal(t, 0, snap.DisciplineChecks[0].CurrentStreak)
	assert.Equal(t, 1, snap.DisciplineChecks[1].CurrentStreak)
}

func TestResetSnapshotsHistory(t *testing.T) {
	clock := testClock()
	st := DefaultState(clock)
	st.Level = 7
	st.Streak = Streak{Current: 2, Longest: 4, LastCompletedDate: DateKey(clock.Now())}
	store, _ := newSeededStore(t, st, clock)

	completeAllPermanents(t, store)
	closedDay := DateKey(clock.Now())

	clock.advanceDays(1)
	require.True(t, store.CheckDailyReset())
	today := DateKey(clock.Now())

	snap := store.Snapshot()
	closed := snap.History[closedDay]
	assert.Equal(t, 7, closed.Level)
	assert.Equal(t, 2, closed.Streak) // streak value before the roll

	seeded := snap.History[today]
	assert.Equal(t, DayProgress{Level: 7, Streak: 3}, seeded)
}

func TestResetDayWithXPTakesBackGains(t *testing.T) {
	clock := testClock()
	st := DefaultState(clock)
	st.Level = 2
	st.XP = 5
	st.History = map[string]DayProgress{
		DateKey(clock.Now()): {CompletedCount: 4, XPGained: 40, Level: 2, Streak: 0},
	}
	store, rec := newSeededStore(t, st, clock)

	store.ResetDayWithXP()

	// 5 - 40 = -35; level 1 refunds 100, leaving 65.
	snap := store.Snapshot()
	assert.Equal(t, 1, snap.Level)
	assert.Equal(t, 65, snap.XP)
	require.Len(t, rec.ofKind(EventLevelDown), 1)

	today := snap.History[DateKey(clock.Now())]
	assert.Equal(t, 0, today.XPGained)
	assert.Equal(t, 1, today.Level)
}

func TestResetDayWithXPNoGainsIsPlainReset(t *testing.T) {
	clock := testClock()
	st := DefaultState(clock)
	st.Level = 3
	st.XP = 12
	store, rec := newSeededStore(t, st, clock)

	store.ResetDayWithXP()

	snap := store.Snapshot()
	assert.Equal(t, 3, snap.Level)
	assert.Equal(t, 12, snap.XP)
	assert.Empty(t, rec.ofKind(EventLevelDown))
}

func TestSetStreakGrowsLongestOnly(t *testing.T) {
	store, _, _ := newTestStore(t)

	require.NoError(t, store.SetStreak(9))
	snap := store.Snapshot()
	assert.Equal(t, 9, snap.Streak.Current)
	assert.Equal(t, 9, snap.Streak.Longest)

	require.NoError(t, store.SetStreak(2))
	snap = store.Snapshot()
	assert.Equal(t, 2, snap.Streak.Current)
	assert.Equal(t, 9, snap.Streak.Longest)

	assert.Error(t, store.SetStreak(-1))
}

func TestLongestNeverDecreases(t *testing.T) {
	store, clock, _ := newTestStore(t)

	longest := 0
	observe := func() {
		l := store.Snapshot().Streak.Longest
		assert.GreaterOrEqual(t, l, longest)
		longest = l
	}

	for day := 0; day < 4; day++ {
		completeAllPermanents(t, store)
		clock.advanceDays(1)
		store.CheckDailyReset()
		observe()
	}
	require.NoError(t, store.TriggerFailure("junk-food"))
	observe()
	clock.advanceDays(1)
	store.CheckDailyReset()
	observe()

	assert.Equal(t, 4, longest)
}

func TestResetProgressAllKeepsQuestList(t *testing.T) {
	store, _, _ := newTestStore(t)

	completeAllPermanents(t, store)
	_, err := store.AddQuest("temp", QuestTemporary)
	require.NoError(t, err)
	require.NoError(t, store.SetStreak(5))

	before := len(store.Snapshot().PermanentQuests)
	store.ResetProgressAll()

	snap := store.Snapshot()
	assert.Equal(t, 0, snap.XP)
	assert.Equal(t, 1, snap.Level)
	assert.Equal(t, Streak{}, snap.Streak)
	assert.Empty(t, snap.History)
	assert.Empty(t, snap.TemporaryQuests)
	assert.Len(t, snap.PermanentQuests, before)
	for _, q := range snap.PermanentQuests {
		assert.False(t, q.Completed)
	}
}

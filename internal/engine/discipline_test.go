package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTriggerFailureXPReset(t *testing.T) {
	clock := testClock()
	st := DefaultState(clock)
	st.Level = 3
	st.XP = 55
	store, rec := newSeededStore(t, st, clock)

	require.NoError(t, store.TriggerFailure("junk-food"))

	snap := store.Snapshot()
	assert.Equal(t, 0, snap.XP)
	assert.Equal(t, 3, snap.Level) // xp_reset keeps the level
	assert.True(t, snap.DisciplineBroken)

	check := snap.DisciplineChecks[0]
	assert.Equal(t, 0, check.CurrentStreak)
	assert.Equal(t, DateKey(clock.Now()), check.LastFailedDate)

	dp := snap.History[DateKey(clock.Now())]
	assert.Equal(t, 3, dp.Level)
	assert.Equal(t, 0, dp.Streak)

	require.Len(t, rec.ofKind(EventPenalty), 1)
	assert.Equal(t, "junk-food", rec.ofKind(EventPenalty)[0].CheckID)
}

func TestTriggerFailureLevelReductionFloorsAtOne(t *testing.T) {
	clock := testClock()
	st := DefaultState(clock)
	st.Level = 2
	st.XP = 80
	store, _ := newSeededStore(t, st, clock)

	// broken-discipline subtracts 3 levels; from level 2 that floors at 1.
	require.NoError(t, store.TriggerFailure("broken-discipline"))

	snap := store.Snapshot()
	assert.Equal(t, 1, snap.Level)
	assert.Equal(t, 0, snap.XP)
}

func TestTriggerFailureOncePerDay(t *testing.T) {
	store, _, rec := newTestStore(t)

	require.NoError(t, store.TriggerFailure("junk-food"))

	// Earn some XP back, then re-trigger the same day: must be a no-op.
	id := store.Snapshot().PermanentQuests[0].ID
	_, err := store.ToggleQuest(id, QuestPermanent)
	require.NoError(t, err)

	require.NoError(t, store.TriggerFailure("junk-food"))

	snap := store.Snapshot()
	assert.Equal(t, PermanentQuestXP, snap.XP)
	require.Len(t, rec.ofKind(EventPenalty), 1)
}

func TestTriggerFailureNextDayApplies(t *testing.T) {
	store, clock, rec := newTestStore(t)

	require.NoError(t, store.TriggerFailure("junk-food"))
	clock.advanceDays(1)
	require.NoError(t, store.TriggerFailure("junk-food"))

	assert.Len(t, rec.ofKind(EventPenalty), 2)
	assert.Equal(t, DateKey(clock.Now()), store.Snapshot().DisciplineChecks[0].LastFailedDate)
}

func TestBreakDisciplineUsesFirstCheck(t *testing.T) {
	store, _, rec := newTestStore(t)

	require.NoError(t, store.BreakDiscipline())

	pens := rec.ofKind(EventPenalty)
	require.Len(t, pens, 1)
	assert.Equal(t, store.Snapshot().DisciplineChecks[0].ID, pens[0].CheckID)
}

func TestCheckCRUD(t *testing.T) {
	store, _, _ := newTestStore(t)

	c, err := store.AddCheck("Skipped the gym?", PenaltyLevelReduction, 2)
	require.NoError(t, err)
	assert.Equal(t, 0, c.CurrentStreak)
	assert.Empty(t, c.LastFailedDate)

	_, err = store.AddCheck("bad", "half_xp", 0)
	assert.Error(t, err)

	require.NoError(t, store.UpdateCheck(c.ID, "Skipped training?", PenaltyXPReset, 0))
	snap := store.Snapshot()
	updated := snap.DisciplineChecks[len(snap.DisciplineChecks)-1]
	assert.Equal(t, "Skipped training?", updated.Title)
	assert.Equal(t, PenaltyXPReset, updated.PenaltyKind)

	require.NoError(t, store.RemoveCheck(c.ID))
	assert.ErrorAs(t, store.RemoveCheck(c.ID), &NotFoundError{})
	assert.ErrorAs(t, store.TriggerFailure(c.ID), &NotFoundError{})
}

func TestParsePenaltyKind(t *testing.T) {
	kind, err := ParsePenaltyKind(" Level_Reduction ")
	require.NoError(t, err)
	assert.Equal(t, PenaltyLevelReduction, kind)

	_, err = ParsePenaltyKind("nuke")
	assert.Error(t, err)
}

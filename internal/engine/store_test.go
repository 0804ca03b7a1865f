package engine

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTouchIsStrictlyMonotonic(t *testing.T) {
	store, _, _ := newTestStore(t)

	// The clock is frozen, so every mutation lands on the same
	// millisecond; the marker must still advance.
	prev := store.Snapshot().LastUpdate
	for i := 0; i < 5; i++ {
		_, err := store.AddQuest("q", QuestTemporary)
		require.NoError(t, err)
		cur := store.Snapshot().LastUpdate
		assert.Greater(t, cur, prev)
		prev = cur
	}
}

func TestApplyRemoteLastWriteWins(t *testing.T) {
	store, _, _ := newTestStore(t)
	store.Login("alpha")
	local := store.Snapshot()

	older := local.Clone()
	older.Level = 99
	older.LastUpdate = local.LastUpdate - 1
	assert.False(t, store.ApplyRemote(older))
	assert.Equal(t, local.Level, store.Snapshot().Level)

	equal := local.Clone()
	equal.Level = 99
	equal.LastUpdate = local.LastUpdate
	assert.False(t, store.ApplyRemote(equal))
	assert.Equal(t, local.Level, store.Snapshot().Level)

	newer := local.Clone()
	newer.Level = 42
	newer.LastUpdate = local.LastUpdate + 1
	assert.True(t, store.ApplyRemote(newer))
	assert.Equal(t, 42, store.Snapshot().Level)
}

func TestApplyRemoteKeepsLocalIdentity(t *testing.T) {
	store, _, _ := newTestStore(t)
	store.Login("alpha")

	remote := store.Snapshot().Clone()
	remote.Level = 10
	remote.UserCode = "someone-else"
	remote.Authenticated = false
	remote.LastUpdate = remote.LastUpdate + 100

	require.True(t, store.ApplyRemote(remote))

	snap := store.Snapshot()
	assert.Equal(t, 10, snap.Level)
	assert.Equal(t, "alpha", snap.UserCode)
	assert.True(t, snap.Authenticated)
}

func TestAdoptRemoteWinsRegardlessOfMarker(t *testing.T) {
	store, _, _ := newTestStore(t)
	store.Login("alpha")
	local := store.Snapshot()

	stale := local.Clone()
	stale.Level = 7
	stale.LastUpdate = local.LastUpdate - 1000

	store.AdoptRemote(stale)
	assert.Equal(t, 7, store.Snapshot().Level)
}

func TestLoginLogout(t *testing.T) {
	store, _, _ := newTestStore(t)

	store.Login("my-code")
	snap := store.Snapshot()
	assert.True(t, snap.Authenticated)
	assert.Equal(t, "my-code", snap.UserCode)

	_, err := store.AddQuest("temp", QuestTemporary)
	require.NoError(t, err)

	store.Logout()
	snap = store.Snapshot()
	assert.False(t, snap.Authenticated)
	assert.Empty(t, snap.UserCode)
	assert.Empty(t, snap.TemporaryQuests)
	assert.Equal(t, 1, snap.Level)
}

func TestToggleVoice(t *testing.T) {
	store, _, _ := newTestStore(t)

	assert.True(t, store.Snapshot().VoiceEnabled)
	assert.False(t, store.ToggleVoice())
	assert.True(t, store.ToggleVoice())
}

func TestOnChangeReceivesSnapshots(t *testing.T) {
	store, _, _ := newTestStore(t)

	var got []State
	store.OnChange(func(st State) { got = append(got, st) })

	_, err := store.AddQuest("a", QuestTemporary)
	require.NoError(t, err)
	require.Len(t, got, 1)

	// The listener got a copy: mutating it must not touch the store.
	got[0].TemporaryQuests[0].Title = "hacked"
	assert.Equal(t, "a", store.Snapshot().TemporaryQuests[0].Title)
}

func TestAggregateJSONRoundTrip(t *testing.T) {
	store, clock, _ := newTestStore(t)
	store.Login("round-trip")

	temp, err := store.AddQuest("one-off", QuestTemporary)
	require.NoError(t, err)
	_, err = store.ToggleQuest(temp.ID, QuestTemporary)
	require.NoError(t, err)
	require.NoError(t, store.TriggerFailure("junk-food"))
	clock.advanceDays(1)
	store.CheckDailyReset()

	before := store.Snapshot()
	data, err := json.Marshal(before)
	require.NoError(t, err)

	var after State
	require.NoError(t, json.Unmarshal(data, &after))

	// Transient sync fields are excluded from serialization and zero on
	// both sides; everything else must survive exactly.
	assert.Equal(t, before, after)
}

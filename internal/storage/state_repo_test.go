package storage

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"soloquest/internal/engine"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "test.db")
	db, err := Open(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestStateRepoLoadEmpty(t *testing.T) {
	repo := NewStateRepo(newTestDB(t))

	st, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, st)
}

func TestStateRepoRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewStateRepo(newTestDB(t))

	created := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	st := engine.State{
		Authenticated: true,
		UserCode:      "my-code",
		PermanentQuests: []engine.Quest{
			{ID: "q1", Title: "Pushups", Kind: engine.QuestPermanent, CreatedAt: created},
		},
		DisciplineChecks: []engine.DisciplineCheck{
			{ID: "c1", Title: "Slept in?", PenaltyKind: engine.PenaltyXPReset},
		},
		Streak:        engine.Streak{Current: 3, Longest: 8, LastCompletedDate: "2025-03-09"},
		XP:            45,
		Level:         4,
		VoiceEnabled:  true,
		LastResetDate: "2025-03-10",
		History: map[string]engine.DayProgress{
			"2025-03-10": {CompletedCount: 2, XPGained: 20, Level: 4, Streak: 3},
		},
		LastUpdate: 1741593600000,
	}

	require.NoError(t, repo.Save(ctx, st))

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, st, *loaded)
}

func TestStateRepoSaveOverwrites(t *testing.T) {
	ctx := context.Background()
	repo := NewStateRepo(newTestDB(t))

	st := engine.State{Level: 1, History: map[string]engine.DayProgress{}}
	require.NoError(t, repo.Save(ctx, st))

	st.Level = 2
	require.NoError(t, repo.Save(ctx, st))

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, loaded.Level)
}

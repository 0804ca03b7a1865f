package root

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"

	"soloquest/internal/config"
	"soloquest/internal/engine"
	"soloquest/internal/storage"
	syncpkg "soloquest/internal/sync"
	"soloquest/internal/voice"
)

// app holds the wired-up client: config, local persistence, the state store,
// and (when a sync URL is configured) the sync coordinator.
type app struct {
	cfg   *config.Config
	store *engine.Store
	coord *syncpkg.Coordinator
}

// openApp loads config and local state, wires persistence + sync listeners,
// and runs the daily-reset check ahead of whatever operation the command is
// about to perform. The returned cleanup flushes any pending sync push and
// closes the database.
func openApp(ctx context.Context) (*app, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	dbPath := cfg.DBPath
	if dbPath == "" {
		dbPath, err = storage.ResolveDBPath()
		if err != nil {
			return nil, nil, err
		}
	}

	db, err := storage.Open(ctx, dbPath)
	if err != nil {
		return nil, nil, err
	}

	repo := storage.NewStateRepo(db)
	st, err := repo.Load(ctx)
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	if st == nil {
		def := engine.DefaultState(engine.SystemClock())
		st = &def
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	// The announcer reads the voice flag through an atomic so it never
	// re-enters the store from inside a mutation.
	var voiceOn atomic.Bool
	voiceOn.Store(st.VoiceEnabled)
	announcer := voice.NewAnnouncer(os.Stdout, voiceOn.Load)

	store := engine.NewStore(*st, engine.WithSink(announcer))
	store.OnChange(func(snap engine.State) {
		voiceOn.Store(snap.VoiceEnabled)
		if err := repo.Save(context.Background(), snap); err != nil {
			logger.Warn("local save failed", "err", err)
		}
	})

	a := &app{cfg: cfg, store: store}

	if cfg.SyncURL != "" {
		remote := syncpkg.NewHTTPRemote(cfg.SyncURL, logger)
		a.coord = syncpkg.NewCoordinator(store, remote,
			syncpkg.WithDebounce(cfg.Debounce()),
			syncpkg.WithLogger(logger),
		)
		store.OnChange(func(engine.State) { a.coord.Notify() })
		if snap := store.Snapshot(); snap.Authenticated && snap.UserCode != "" {
			a.coord.StartWatch(snap.UserCode)
		}
	}

	// Day rollover runs ahead of every other operation.
	store.CheckDailyReset()

	cleanup := func() {
		if a.coord != nil {
			a.coord.Flush()
			a.coord.Close()
		}
		_ = db.Close()
	}
	return a, cleanup, nil
}

// resolveQuest expands an id prefix (as shown by `sq list`) to a full quest.
func (a *app) resolveQuest(prefix string) (engine.Quest, error) {
	snap := a.store.Snapshot()

	var matches []engine.Quest
	for _, q := range append(snap.PermanentQuests, snap.TemporaryQuests...) {
		if strings.HasPrefix(q.ID, prefix) {
			matches = append(matches, q)
		}
	}
	switch len(matches) {
	case 0:
		return engine.Quest{}, fmt.Errorf("no quest matches %q", prefix)
	case 1:
		return matches[0], nil
	default:
		return engine.Quest{}, fmt.Errorf("quest id %q is ambiguous (%d matches)", prefix, len(matches))
	}
}

// resolveCheck expands an id prefix to a full discipline check.
func (a *app) resolveCheck(prefix string) (engine.DisciplineCheck, error) {
	snap := a.store.Snapshot()

	var matches []engine.DisciplineCheck
	for _, c := range snap.DisciplineChecks {
		if strings.HasPrefix(c.ID, prefix) {
			matches = append(matches, c)
		}
	}
	switch len(matches) {
	case 0:
		return engine.DisciplineCheck{}, fmt.Errorf("no discipline check matches %q", prefix)
	case 1:
		return matches[0], nil
	default:
		return engine.DisciplineCheck{}, fmt.Errorf("check id %q is ambiguous (%d matches)", prefix, len(matches))
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

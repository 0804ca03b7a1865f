package engine

import (
	"sync"

	"github.com/google/uuid"
)

// defaultQuests seeds a fresh profile so it is usable immediately.
var defaultQuests = []string{
	"Wake up at 5 AM",
	"40+ Min Editing",
	"Squats",
	"90+ Min Coding",
	"Pushups",
	"1 LeetCode Problem",
	"Situps",
	"Language Practice",
	"6–7 AM Walking",
}

func defaultChecks() []DisciplineCheck {
	return []DisciplineCheck{
		{
			ID:          "junk-food",
			Title:       "Did you spend money today on junk food?",
			PenaltyKind: PenaltyXPReset,
		},
		{
			ID:           "broken-discipline",
			Title:        "Did you break your discipline today?",
			PenaltyKind:  PenaltyLevelReduction,
			PenaltyValue: 3,
		},
	}
}

// DefaultState builds the initial aggregate for a fresh profile.
func DefaultState(clock Clock) State {
	now := clock.Now()
	st := State{
		PermanentQuests:  make([]Quest, 0, len(defaultQuests)),
		TemporaryQuests:  []Quest{},
		CompletedHistory: []CompletedQuest{},
		DisciplineChecks: defaultChecks(),
		Level:            1,
		VoiceEnabled:     true,
		LastResetDate:    DateKey(now),
		History:          map[string]DayProgress{},
		LastUpdate:       now.UnixMilli(),
	}
	for _, title := range defaultQuests {
		st.PermanentQuests = append(st.PermanentQuests, Quest{
			ID:        uuid.NewString(),
			Title:     title,
			Kind:      QuestPermanent,
			CreatedAt: now,
		})
	}
	return st
}

// Store owns the one State aggregate and serializes every mutation behind a
// single mutex. Handlers (CLI commands, TUI keypresses, the sync
// subscription callback, the debounce timer) never run business logic
// concurrently, which is what the day-rollover and once-per-day guards
// assume.
type Store struct {
	mu       sync.Mutex
	state    State
	clock    Clock
	sink     Sink
	onChange []func(State)
}

type Option func(*Store)

func WithClock(c Clock) Option { return func(s *Store) { s.clock = c } }

func WithSink(sink Sink) Option { return func(s *Store) { s.sink = sink } }

func NewStore(initial State, opts ...Option) *Store {
	s := &Store{state: initial, clock: SystemClock()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// OnChange registers a listener invoked with a snapshot after every
// mutation. Listeners run synchronously inside the mutation and must not
// call back into the Store.
func (s *Store) OnChange(fn func(State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = append(s.onChange, fn)
}

// Snapshot returns a deep copy of the current aggregate.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

func (s *Store) emit(e Event) {
	if s.sink != nil {
		s.sink.Notify(e)
	}
}

// touch advances the last-write-wins marker. Strictly monotonic even when
// the wall clock stalls or steps backwards.
func (s *Store) touch() {
	ms := s.clock.Now().UnixMilli()
	if ms <= s.state.LastUpdate {
		ms = s.state.LastUpdate + 1
	}
	s.state.LastUpdate = ms
}

func (s *Store) changed() {
	snap := s.state.Clone()
	for _, fn := range s.onChange {
		fn(snap)
	}
}

// Login marks the session authenticated under the given code. The code is an
// opaque lookup key, not a credential.
func (s *Store) Login(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Authenticated = true
	s.state.UserCode = code
	s.touch()
	s.changed()
}

// Logout restores the initial state and drops identity.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = DefaultState(s.clock)
	s.changed()
}

func (s *Store) ToggleVoice() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.VoiceEnabled = !s.state.VoiceEnabled
	s.touch()
	s.changed()
	return s.state.VoiceEnabled
}

// SetSyncStatus updates the transient sync markers without bumping the
// update counter or notifying listeners.
func (s *Store) SetSyncStatus(syncing bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Syncing = syncing
	if !syncing {
		s.state.LastSyncAt = s.clock.Now()
	}
}

// ApplyRemote merges a remote aggregate using strict last-write-wins: the
// remote state is adopted only if its update marker is strictly newer than
// the local one. This makes the device's own just-pushed echo a no-op and
// keeps older remote copies from clobbering newer local edits. Identity and
// transient sync fields stay local. Reports whether the remote state was
// applied.
func (s *Store) ApplyRemote(remote State) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if remote.LastUpdate <= s.state.LastUpdate {
		return false
	}
	s.adoptLocked(remote)
	s.changed()
	return true
}

// AdoptRemote unconditionally replaces local state with the remote copy.
// Used at login, where the remote profile wins.
func (s *Store) AdoptRemote(remote State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.adoptLocked(remote)
	s.changed()
}

func (s *Store) adoptLocked(remote State) {
	auth, code := s.state.Authenticated, s.state.UserCode
	syncing, lastSync := s.state.Syncing, s.state.LastSyncAt
	s.state = remote.Clone()
	s.state.Authenticated = auth
	s.state.UserCode = code
	s.state.Syncing = syncing
	s.state.LastSyncAt = lastSync
	if s.state.History == nil {
		s.state.History = map[string]DayProgress{}
	}
}

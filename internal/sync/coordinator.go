package sync

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"soloquest/internal/engine"
)

// RemoteStore is the cloud document contract: write-whole-document,
// read-whole-document, and a standing change subscription.
type RemoteStore interface {
	// Push writes the whole aggregate under the user code.
	Push(ctx context.Context, code string, st engine.State) error
	// Fetch reads the aggregate stored under the user code. Returns
	// (nil, nil) when no profile exists yet.
	Fetch(ctx context.Context, code string) (*engine.State, error)
	// Watch invokes fn for every remote change until ctx is cancelled.
	Watch(ctx context.Context, code string, fn func(engine.State)) error
}

const (
	DefaultDebounce    = time.Second
	defaultPushTimeout = 10 * time.Second
)

// Coordinator owns the asynchronous boundary between the local store and the
// remote document. Rapid local edits coalesce into one debounced push
// (latest timer wins); inbound remote changes are filtered through the
// store's last-write-wins comparison.
type Coordinator struct {
	store    *engine.Store
	remote   RemoteStore
	debounce time.Duration
	logger   *slog.Logger

	mu          sync.Mutex
	timer       *time.Timer
	watchCancel context.CancelFunc
	wg          sync.WaitGroup
}

type Option func(*Coordinator)

func WithDebounce(d time.Duration) Option {
	return func(c *Coordinator) { c.debounce = d }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Coordinator) { c.logger = l }
}

func NewCoordinator(store *engine.Store, remote RemoteStore, opts ...Option) *Coordinator {
	c := &Coordinator{
		store:    store,
		remote:   remote,
		debounce: DefaultDebounce,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Notify (re)schedules a debounced push. A mutation landing inside the
// debounce window cancels the pending push and starts the window over.
func (c *Coordinator) Notify() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.debounce, c.push)
}

// Flush cancels any pending debounced push and pushes immediately. Used on
// CLI exit so short-lived invocations still sync.
func (c *Coordinator) Flush() {
	c.mu.Lock()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.mu.Unlock()
	c.push()
}

func (c *Coordinator) push() {
	snap := c.store.Snapshot()
	if !snap.Authenticated || snap.UserCode == "" {
		return
	}

	c.store.SetSyncStatus(true)
	defer c.store.SetSyncStatus(false)

	ctx, cancel := context.WithTimeout(context.Background(), defaultPushTimeout)
	defer cancel()

	if err := c.remote.Push(ctx, snap.UserCode, snap); err != nil {
		// Degrade to a stale cloud copy; the next mutation's debounce
		// cycle retries implicitly.
		c.logger.Warn("sync push failed", "err", err)
		return
	}
	c.logger.Debug("sync push ok", "marker", snap.LastUpdate)
}

// Login authenticates under code, pulls the remote profile (remote wins at
// login), and starts the live subscription. Fetch failures and absent
// profiles both fall back to local state.
func (c *Coordinator) Login(ctx context.Context, code string) {
	c.store.Login(code)

	remote, err := c.remote.Fetch(ctx, code)
	if err != nil {
		c.logger.Warn("sync fetch failed, keeping local state", "err", err)
	} else if remote != nil {
		c.store.AdoptRemote(*remote)
	}

	c.StartWatch(code)
}

// StartWatch begins the standing remote subscription. Remote states are
// applied only when strictly newer than local.
func (c *Coordinator) StartWatch(code string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.watchCancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	c.watchCancel = cancel

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		err := c.remote.Watch(ctx, code, func(st engine.State) {
			if c.store.ApplyRemote(st) {
				c.logger.Info("applied remote state", "marker", st.LastUpdate)
			}
		})
		if err != nil && ctx.Err() == nil {
			c.logger.Warn("remote watch ended", "err", err)
		}
	}()
}

// Logout tears down the subscription, discards any pending push, and resets
// the store.
func (c *Coordinator) Logout() {
	c.Close()
	c.store.Logout()
}

// Close stops the debounce timer and the live subscription.
func (c *Coordinator) Close() {
	c.mu.Lock()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	cancel := c.watchCancel
	c.watchCancel = nil
	c.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	c.wg.Wait()
}

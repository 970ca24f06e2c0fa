// ABOUTME: In-process wallet discovery feed with registration change notifications.
// ABOUTME: Implements the wallet.Feed contract consumed by the Kit.

package registry

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/2389/coven-wallet/internal/wallet"
)

// ErrAlreadyRegistered indicates a wallet with the same name is already
// registered.
var ErrAlreadyRegistered = errors.New("wallet already registered")

type watcher struct {
	registered   func(wallet.Wallet)
	unregistered func(wallet.Wallet)
}

// Registry tracks the currently discoverable wallets in registration order
// and notifies watchers of changes. It is the injected alternative to an
// ambient global discovery mechanism, so orchestration and selection stay
// testable with fake feeds.
type Registry struct {
	mu       sync.RWMutex
	wallets  []wallet.Wallet
	names    map[string]bool
	watchers map[string]watcher
	logger   *slog.Logger
}

// New creates an empty Registry. Pass nil logger for default.
func New(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		names:    make(map[string]bool),
		watchers: make(map[string]watcher),
		logger:   logger.With("component", "wallet-registry"),
	}
}

// Register adds a wallet to the feed and notifies watchers. Names are
// unique; a second wallet with the same name returns ErrAlreadyRegistered.
func (r *Registry) Register(w wallet.Wallet) error {
	r.mu.Lock()
	if r.names[w.Name()] {
		r.mu.Unlock()
		return ErrAlreadyRegistered
	}
	r.names[w.Name()] = true
	r.wallets = append(r.wallets, w)
	total := len(r.wallets)
	r.mu.Unlock()

	r.logger.Info("wallet registered",
		"name", w.Name(),
		"capabilities", w.Capabilities(),
		"total_wallets", total,
	)
	r.notify(func(wt watcher) func(wallet.Wallet) { return wt.registered }, w)
	return nil
}

// Unregister removes the named wallet and notifies watchers. Unknown names
// are ignored.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	var removed wallet.Wallet
	for i, w := range r.wallets {
		if w.Name() == name {
			removed = w
			r.wallets = append(r.wallets[:i], r.wallets[i+1:]...)
			delete(r.names, name)
			break
		}
	}
	total := len(r.wallets)
	r.mu.Unlock()

	if removed == nil {
		return
	}
	r.logger.Info("wallet unregistered", "name", name, "total_wallets", total)
	r.notify(func(wt watcher) func(wallet.Wallet) { return wt.unregistered }, removed)
}

// List returns the registered wallets in registration (discovery) order.
func (r *Registry) List() []wallet.Wallet {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]wallet.Wallet(nil), r.wallets...)
}

// Watch registers callbacks for registration changes and returns a cancel
// function. Callbacks run synchronously on the goroutine performing the
// change, after the registry's own lock is released.
func (r *Registry) Watch(registered, unregistered func(wallet.Wallet)) (cancel func()) {
	id := uuid.New().String()

	r.mu.Lock()
	r.watchers[id] = watcher{registered: registered, unregistered: unregistered}
	r.mu.Unlock()

	return func() {
		r.mu.Lock()
		delete(r.watchers, id)
		r.mu.Unlock()
	}
}

// notify invokes the selected callback of every watcher outside the lock.
func (r *Registry) notify(pick func(watcher) func(wallet.Wallet), w wallet.Wallet) {
	r.mu.RLock()
	callbacks := make([]func(wallet.Wallet), 0, len(r.watchers))
	for _, wt := range r.watchers {
		if cb := pick(wt); cb != nil {
			callbacks = append(callbacks, cb)
		}
	}
	r.mu.RUnlock()

	for _, cb := range callbacks {
		cb(w)
	}
}

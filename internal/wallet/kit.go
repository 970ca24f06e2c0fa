// ABOUTME: Kit orchestrates the wallet connection lifecycle end-to-end.
// ABOUTME: Serializes reducer dispatch, drives connect/disconnect, and fans out state.

package wallet

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/2389/coven-wallet/internal/store"
)

// subscriberBufferSize is the channel buffer for each state subscriber.
const subscriberBufferSize = 64

// Options configures a Kit. Feed is required; everything else has a usable
// zero value (no persistence, no metrics, default logger).
type Options struct {
	// Feed is the wallet discovery source.
	Feed Feed

	// Storage persists the recent-connection record. Nil disables persistence.
	Storage store.Storage

	// StorageKey overrides DefaultStorageKey.
	StorageKey string

	// PreferredWallets orders the selector output; names listed here sort
	// before the rest of the discovered wallets.
	PreferredWallets []string

	// RequiredCapabilities narrows selection beyond the baseline
	// connect/disconnect/accounts capabilities.
	RequiredCapabilities []string

	// AutoConnect enables the silent session restore performed by Start.
	AutoConnect bool

	Metrics *Metrics
	Logger  *slog.Logger
}

// ConnectRequest names the wallet to connect and optionally the account to
// activate. Silent asks the wallet to avoid interactive prompts.
type ConnectRequest struct {
	WalletName string
	Address    string
	Silent     bool
}

// Kit owns the ConnectionState and is the only dispatcher of reducer
// actions. A single mutex serializes every dispatch and the connect
// precondition check: StatusConnecting is entered under that mutex before
// the first blocking call, so back-to-back Connect calls cannot interleave.
type Kit struct {
	mu    sync.Mutex
	state ConnectionState

	feed        Feed
	records     *recordStore
	preferred   []string
	required    []string
	autoConnect bool
	metrics     *Metrics
	logger      *slog.Logger
	unwatch     func()

	subMu sync.RWMutex
	subs  map[string]chan ConnectionState
}

// New creates a Kit, seeds the wallet list from the feed, and begins
// watching for registration changes.
func New(opts Options) *Kit {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "wallet-kit")

	key := opts.StorageKey
	if key == "" {
		key = DefaultStorageKey
	}

	k := &Kit{
		feed:        opts.Feed,
		preferred:   append([]string(nil), opts.PreferredWallets...),
		required:    append([]string(nil), opts.RequiredCapabilities...),
		autoConnect: opts.AutoConnect,
		metrics:     opts.Metrics,
		logger:      logger,
		subs:        make(map[string]chan ConnectionState),
		records: &recordStore{
			storage: opts.Storage,
			key:     key,
			logger:  logger,
		},
	}

	k.mu.Lock()
	k.state.Wallets = Select(k.feed.List(), k.preferred, k.required)
	k.metrics.setDiscovered(len(k.state.Wallets))
	k.mu.Unlock()

	k.unwatch = k.feed.Watch(k.walletRegistered, k.walletUnregistered)
	return k
}

// State returns a snapshot of the current connection state.
func (k *Kit) State() ConnectionState {
	k.mu.Lock()
	defer k.mu.Unlock()
	return snapshotState(k.state)
}

// CurrentWallet returns the connected wallet, or ErrNotConnected. Hosts
// invoke wallet capabilities beyond connect/disconnect directly on the
// returned value.
func (k *Kit) CurrentWallet() (Wallet, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.state.Status != StatusConnected || k.state.CurrentWallet == nil {
		return nil, ErrNotConnected
	}
	return k.state.CurrentWallet, nil
}

// Connect drives a connect attempt end-to-end: precondition checks, the
// wallet's connect capability, deterministic account selection, the
// connected transition, and a best-effort write of the recent-connection
// record. On capability failure the status rolls back to disconnected and
// the wallet's error is returned wrapped in a WalletError.
//
// Fails with ErrAlreadyConnected while a connection is active or another
// attempt is in flight, and with ErrWalletNotFound when the requested name
// is not currently discovered.
func (k *Kit) Connect(ctx context.Context, req ConnectRequest) (*ConnectResult, error) {
	k.mu.Lock()
	if k.state.Status != StatusDisconnected {
		k.mu.Unlock()
		return nil, ErrAlreadyConnected
	}
	target := k.findWalletLocked(req.WalletName)
	if target == nil {
		k.mu.Unlock()
		return nil, fmt.Errorf("%w: %q", ErrWalletNotFound, req.WalletName)
	}
	// Enter connecting before releasing the lock so a racing Connect call
	// observes the in-flight attempt and is rejected.
	k.dispatch(statusChangedAction{status: StatusConnecting})
	k.mu.Unlock()

	attemptID := uuid.New().String()
	k.logger.Info("connecting to wallet",
		"wallet", target.Name(),
		"attempt_id", attemptID,
		"silent", req.Silent,
	)

	result, err := target.Connect(ctx, ConnectOptions{Silent: req.Silent})
	if err != nil {
		k.mu.Lock()
		k.dispatch(statusChangedAction{status: StatusDisconnected})
		k.mu.Unlock()
		k.metrics.connectOutcome(outcomeFailure)
		k.logger.Warn("wallet connect failed",
			"wallet", target.Name(),
			"attempt_id", attemptID,
			"error", err,
		)
		return nil, &WalletError{WalletName: target.Name(), Op: "connect", Err: err}
	}

	var accounts []Account
	if result != nil {
		accounts = result.Accounts
	}
	if len(accounts) == 0 {
		accounts = target.Accounts()
	}

	rec, hasRec := k.records.load(ctx)
	selected := selectAccount(accounts, req.Address, rec, hasRec, target.Name())

	k.mu.Lock()
	k.dispatch(connectedAction{wallet: target, accounts: accounts, account: selected})
	k.mu.Unlock()

	// Post-commit persistence: a storage failure can never roll back the
	// connection above.
	newRec := record{WalletName: target.Name()}
	if selected != nil {
		newRec.Address = selected.Address
	}
	k.records.save(ctx, newRec)

	k.metrics.connectOutcome(outcomeSuccess)
	selectedAddr := ""
	if selected != nil {
		selectedAddr = selected.Address
	}
	k.logger.Info("wallet connected",
		"wallet", target.Name(),
		"attempt_id", attemptID,
		"accounts", len(accounts),
		"account", selectedAddr,
	)
	return result, nil
}

// Disconnect invokes the wallet's disconnect capability and resets the
// connection state. State is reset even when the capability fails; the
// wallet's error is still reported, wrapped in a WalletError. Returns
// ErrNotConnected when no connection is active. The persisted record is
// left in place for a future session.
func (k *Kit) Disconnect(ctx context.Context) error {
	k.mu.Lock()
	if k.state.Status != StatusConnected || k.state.CurrentWallet == nil {
		k.mu.Unlock()
		return ErrNotConnected
	}
	target := k.state.CurrentWallet
	k.mu.Unlock()

	err := target.Disconnect(ctx)

	k.mu.Lock()
	k.dispatch(disconnectedAction{})
	k.mu.Unlock()

	if err != nil {
		k.logger.Warn("wallet disconnect capability failed", "wallet", target.Name(), "error", err)
		return &WalletError{WalletName: target.Name(), Op: "disconnect", Err: err}
	}
	k.logger.Info("wallet disconnected", "wallet", target.Name())
	return nil
}

// SetPreferredWallets replaces the preference order and recomputes the
// selector output.
func (k *Kit) SetPreferredWallets(names []string) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.preferred = append([]string(nil), names...)
	k.refreshWalletsLocked(nil)
}

// SetRequiredCapabilities replaces the capability filter and recomputes the
// selector output.
func (k *Kit) SetRequiredCapabilities(caps []string) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.required = append([]string(nil), caps...)
	k.refreshWalletsLocked(nil)
}

// Subscribe registers a subscriber for state snapshots published after every
// transition. Returns the channel and a subscription ID for Unsubscribe.
// The subscription is cleaned up automatically when ctx is cancelled.
// Non-blocking: snapshots are dropped for subscribers whose channels are full.
func (k *Kit) Subscribe(ctx context.Context) (<-chan ConnectionState, string) {
	subID := uuid.New().String()
	ch := make(chan ConnectionState, subscriberBufferSize)

	k.subMu.Lock()
	k.subs[subID] = ch
	k.subMu.Unlock()

	k.logger.Debug("state subscriber added", "sub_id", subID)

	go func() {
		<-ctx.Done()
		k.Unsubscribe(subID)
	}()

	return ch, subID
}

// Unsubscribe removes a subscriber and closes its channel.
func (k *Kit) Unsubscribe(subID string) {
	k.subMu.Lock()
	defer k.subMu.Unlock()
	if ch, ok := k.subs[subID]; ok {
		delete(k.subs, subID)
		close(ch)
	}
}

// Close stops watching the feed and closes all subscriber channels. The Kit
// must not be used afterwards.
func (k *Kit) Close() {
	if k.unwatch != nil {
		k.unwatch()
	}
	k.subMu.Lock()
	defer k.subMu.Unlock()
	for id, ch := range k.subs {
		delete(k.subs, id)
		close(ch)
	}
}

// dispatch applies an action and publishes the resulting state. Callers must
// hold k.mu.
func (k *Kit) dispatch(act action) {
	k.state = reduce(k.state, act)
	k.publish(snapshotState(k.state))
}

// publish sends a snapshot to all subscribers without blocking. Channels are
// closed under the write lock, so sends must stay under the read lock.
func (k *Kit) publish(state ConnectionState) {
	k.subMu.RLock()
	defer k.subMu.RUnlock()

	for _, ch := range k.subs {
		select {
		case ch <- state:
		default:
		}
	}
}

// findWalletLocked resolves a name against the current selector output.
// Callers must hold k.mu.
func (k *Kit) findWalletLocked(name string) Wallet {
	for _, w := range k.state.Wallets {
		if w.Name() == name {
			return w
		}
	}
	return nil
}

// refreshWalletsLocked recomputes the selector output and dispatches the
// wallets-changed transition. Callers must hold k.mu.
func (k *Kit) refreshWalletsLocked(removed []string) {
	wallets := Select(k.feed.List(), k.preferred, k.required)
	k.dispatch(walletsChangedAction{wallets: wallets, removed: removed})
	k.metrics.setDiscovered(len(wallets))
}

func (k *Kit) walletRegistered(w Wallet) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.refreshWalletsLocked(nil)
	k.logger.Debug("wallet discovered", "wallet", w.Name(), "total_wallets", len(k.state.Wallets))
}

func (k *Kit) walletUnregistered(w Wallet) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.refreshWalletsLocked([]string{w.Name()})
	k.logger.Debug("wallet withdrawn", "wallet", w.Name(), "total_wallets", len(k.state.Wallets))
}

// selectAccount applies the deterministic account selection policy: an
// explicitly requested address wins, then a persisted hint for the same
// wallet, then the first account in the wallet's reported order. A wallet
// reporting zero accounts selects nothing.
func selectAccount(accounts []Account, requested string, rec record, hasRec bool, walletName string) *Account {
	if len(accounts) == 0 {
		return nil
	}
	if requested != "" {
		if a := findAccount(accounts, requested); a != nil {
			return a
		}
	}
	if hasRec && rec.WalletName == walletName && rec.Address != "" {
		if a := findAccount(accounts, rec.Address); a != nil {
			return a
		}
	}
	first := accounts[0]
	return &first
}

func findAccount(accounts []Account, address string) *Account {
	for _, a := range accounts {
		if a.Address == address {
			acct := a
			return &acct
		}
	}
	return nil
}

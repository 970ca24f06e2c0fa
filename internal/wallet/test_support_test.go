// ABOUTME: Shared fakes for wallet package tests.
// ABOUTME: Provides a scriptable fake wallet and an in-memory discovery feed.

package wallet

import (
	"context"
	"sync"
)

// fakeWallet is a scriptable Wallet implementation.
type fakeWallet struct {
	name          string
	caps          []string
	accounts      []Account
	connectErr    error
	disconnectErr error

	mu              sync.Mutex
	connectCalls    []ConnectOptions
	disconnectCalls int
}

func newFakeWallet(name string, accounts ...Account) *fakeWallet {
	return &fakeWallet{
		name:     name,
		caps:     []string{CapConnect, CapDisconnect, CapAccounts},
		accounts: accounts,
	}
}

func (f *fakeWallet) Name() string { return f.name }

func (f *fakeWallet) Capabilities() []string { return f.caps }

func (f *fakeWallet) Accounts() []Account {
	return append([]Account(nil), f.accounts...)
}

func (f *fakeWallet) Connect(_ context.Context, opts ConnectOptions) (*ConnectResult, error) {
	f.mu.Lock()
	f.connectCalls = append(f.connectCalls, opts)
	f.mu.Unlock()
	if f.connectErr != nil {
		return nil, f.connectErr
	}
	return &ConnectResult{Accounts: f.Accounts()}, nil
}

func (f *fakeWallet) Disconnect(_ context.Context) error {
	f.mu.Lock()
	f.disconnectCalls++
	f.mu.Unlock()
	return f.disconnectErr
}

func (f *fakeWallet) lastConnect() (ConnectOptions, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.connectCalls) == 0 {
		return ConnectOptions{}, false
	}
	return f.connectCalls[len(f.connectCalls)-1], true
}

func (f *fakeWallet) connectCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.connectCalls)
}

// fakeFeed is an in-memory Feed whose contents tests mutate directly.
type fakeFeed struct {
	mu       sync.Mutex
	wallets  []Wallet
	watchers map[int]struct {
		registered   func(Wallet)
		unregistered func(Wallet)
	}
	nextID int
}

func newFakeFeed(wallets ...Wallet) *fakeFeed {
	return &fakeFeed{
		wallets: wallets,
		watchers: make(map[int]struct {
			registered   func(Wallet)
			unregistered func(Wallet)
		}),
	}
}

func (f *fakeFeed) List() []Wallet {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Wallet(nil), f.wallets...)
}

func (f *fakeFeed) Watch(registered, unregistered func(Wallet)) func() {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.nextID
	f.nextID++
	f.watchers[id] = struct {
		registered   func(Wallet)
		unregistered func(Wallet)
	}{registered, unregistered}
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		delete(f.watchers, id)
	}
}

func (f *fakeFeed) add(w Wallet) {
	f.mu.Lock()
	f.wallets = append(f.wallets, w)
	callbacks := f.registeredCallbacksLocked()
	f.mu.Unlock()
	for _, cb := range callbacks {
		cb(w)
	}
}

func (f *fakeFeed) remove(name string) {
	f.mu.Lock()
	var removed Wallet
	for i, w := range f.wallets {
		if w.Name() == name {
			removed = w
			f.wallets = append(f.wallets[:i], f.wallets[i+1:]...)
			break
		}
	}
	var callbacks []func(Wallet)
	for _, wt := range f.watchers {
		if wt.unregistered != nil {
			callbacks = append(callbacks, wt.unregistered)
		}
	}
	f.mu.Unlock()
	if removed == nil {
		return
	}
	for _, cb := range callbacks {
		cb(removed)
	}
}

func (f *fakeFeed) registeredCallbacksLocked() []func(Wallet) {
	var callbacks []func(Wallet)
	for _, wt := range f.watchers {
		if wt.registered != nil {
			callbacks = append(callbacks, wt.registered)
		}
	}
	return callbacks
}

// ABOUTME: Tests for the session bootstrapper (silent auto-connect).
// ABOUTME: Covers restore, the silent flag, missing wallets, and disabled auto-connect.

package wallet

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2389/coven-wallet/internal/store"
)

func newRestoreKit(t *testing.T, feed Feed, st store.Storage, autoConnect bool) *Kit {
	t.Helper()
	k := New(Options{Feed: feed, Storage: st, AutoConnect: autoConnect})
	t.Cleanup(k.Close)
	return k
}

func TestStartRestoresRecentConnection(t *testing.T) {
	ctx := context.Background()
	w := newFakeWallet("Agent", Account{Address: "0x1"}, Account{Address: "0x2"})
	mock := store.NewMockStore()
	require.NoError(t, mock.Set(ctx, DefaultStorageKey, "Agent-0x2"))
	kit := newRestoreKit(t, newFakeFeed(w), mock, true)

	kit.Start(ctx)

	state := kit.State()
	assert.Equal(t, StatusConnected, state.Status)
	require.NotNil(t, state.CurrentAccount)
	assert.Equal(t, "0x2", state.CurrentAccount.Address, "persisted account hint honored")

	opts, called := w.lastConnect()
	require.True(t, called)
	assert.True(t, opts.Silent, "restore connects silently")
}

func TestStartDisabled(t *testing.T) {
	ctx := context.Background()
	w := newFakeWallet("Agent", Account{Address: "0x1"})
	mock := store.NewMockStore()
	require.NoError(t, mock.Set(ctx, DefaultStorageKey, "Agent-0x1"))
	kit := newRestoreKit(t, newFakeFeed(w), mock, false)

	kit.Start(ctx)

	assert.Equal(t, StatusDisconnected, kit.State().Status)
	assert.Equal(t, 0, w.connectCount())
}

func TestStartWalletNotDiscovered(t *testing.T) {
	ctx := context.Background()
	mock := store.NewMockStore()
	require.NoError(t, mock.Set(ctx, DefaultStorageKey, "Ghost-0x1"))
	kit := newRestoreKit(t, newFakeFeed(newFakeWallet("Agent")), mock, true)

	kit.Start(ctx)

	assert.Equal(t, StatusDisconnected, kit.State().Status)

	// The record is left for a future session when the wallet shows up.
	raw, ok := mock.Value(DefaultStorageKey)
	require.True(t, ok)
	assert.Equal(t, "Ghost-0x1", raw)
}

func TestStartNoRecord(t *testing.T) {
	ctx := context.Background()
	w := newFakeWallet("Agent", Account{Address: "0x1"})
	kit := newRestoreKit(t, newFakeFeed(w), store.NewMockStore(), true)

	kit.Start(ctx)

	assert.Equal(t, StatusDisconnected, kit.State().Status)
	assert.Equal(t, 0, w.connectCount())
}

func TestStartConnectFailureStaysDisconnected(t *testing.T) {
	ctx := context.Background()
	w := newFakeWallet("Agent", Account{Address: "0x1"})
	w.connectErr = errors.New("wallet ignored silent mode and prompted")
	mock := store.NewMockStore()
	require.NoError(t, mock.Set(ctx, DefaultStorageKey, "Agent-0x1"))
	kit := newRestoreKit(t, newFakeFeed(w), mock, true)

	// No error escapes the bootstrapper.
	kit.Start(ctx)

	state := kit.State()
	assert.Equal(t, StatusDisconnected, state.Status)
	assert.Nil(t, state.CurrentWallet)
}

func TestStartSkipsWhenAlreadyConnected(t *testing.T) {
	ctx := context.Background()
	w := newFakeWallet("Agent", Account{Address: "0x1"})
	mock := store.NewMockStore()
	require.NoError(t, mock.Set(ctx, DefaultStorageKey, "Agent-0x1"))
	kit := newRestoreKit(t, newFakeFeed(w), mock, true)

	_, err := kit.Connect(ctx, ConnectRequest{WalletName: "Agent"})
	require.NoError(t, err)

	kit.Start(ctx)
	assert.Equal(t, 1, w.connectCount(), "no second connect attempt")
}

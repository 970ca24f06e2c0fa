// ABOUTME: Session bootstrapper: silent restore of the most recent connection.
// ABOUTME: Best-effort; no error escapes to the caller of Start.

package wallet

import "context"

// Start runs the session bootstrapper. When auto-connect is enabled and no
// connection is active, it resolves the persisted recent-connection record
// against the currently discovered wallets and, on a match, performs a
// silent connect with the persisted account address as a hint.
//
// Every failure path is absorbed: a missing or malformed record, a wallet
// not currently discovered (the record is left in storage for a future
// session), or a failed silent connect (state returns to disconnected via
// the normal Connect rollback) only produce log lines.
func (k *Kit) Start(ctx context.Context) {
	if !k.autoConnect {
		return
	}

	k.mu.Lock()
	active := k.state.Status != StatusDisconnected
	k.mu.Unlock()
	if active {
		return
	}

	rec, ok := k.records.load(ctx)
	if !ok {
		return
	}

	k.mu.Lock()
	known := k.findWalletLocked(rec.WalletName) != nil
	k.mu.Unlock()
	if !known {
		k.metrics.restoreOutcome(outcomeSkipped)
		k.logger.Debug("recent wallet not discovered, keeping record for a future session",
			"wallet", rec.WalletName)
		return
	}

	_, err := k.Connect(ctx, ConnectRequest{
		WalletName: rec.WalletName,
		Address:    rec.Address,
		Silent:     true,
	})
	if err != nil {
		k.metrics.restoreOutcome(outcomeFailure)
		k.logger.Info("session restore failed", "wallet", rec.WalletName, "error", err)
		return
	}
	k.metrics.restoreOutcome(outcomeSuccess)
	k.logger.Info("session restored", "wallet", rec.WalletName)
}

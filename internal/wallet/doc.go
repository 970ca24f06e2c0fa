// Package wallet manages the lifecycle of a session's connection to exactly
// one external signing wallet chosen from a dynamically changing set of
// discoverable wallets.
//
// # Kit
//
// The Kit is the orchestrator and the owner of the ConnectionState:
//
//	kit := wallet.New(wallet.Options{
//	    Feed:             reg,
//	    Storage:          st,
//	    PreferredWallets: []string{"Coven Wallet"},
//	    AutoConnect:      true,
//	})
//	kit.Start(ctx) // silent session restore, best-effort
//
// Key operations:
//
//   - Connect(ctx, req): Drive a connect attempt end-to-end
//   - Disconnect(ctx): Tear down the active connection
//   - State(): Snapshot of the current ConnectionState
//   - CurrentWallet(): The connected wallet, for capability invocation
//   - Subscribe(ctx): Fan-out channel of state snapshots
//
// # State machine
//
// All state lives in a ConnectionState reduced over a closed set of tagged
// actions: wallets-changed, status-changed, connected, disconnected. The
// reducer is pure and total; precondition enforcement (already connected,
// wallet unknown) is the Kit's job. Dispatch is serialized by a single
// mutex, and StatusConnecting is entered under that mutex before the first
// blocking call, so concurrent Connect calls observe a consistent
// precondition check and at most one attempt is ever in flight.
//
// # Selection
//
// Select filters discovered wallets to those advertising the baseline
// standard:connect / standard:disconnect / standard:accounts capabilities
// (plus any configured extras) and orders preferred names first, the rest
// in discovery order.
//
// # Persistence
//
// The most recent connection is stored as a single "<wallet>-<address>"
// string under one storage key, with the sentinel "none" when no account
// was selected. Storage is best-effort: adapter failures are logged and
// treated as "no record" on read and "write skipped" on write, and a
// persistence failure can never roll back a committed connection.
//
// # Account selection
//
// On a successful connect the active account is chosen deterministically:
// the explicitly requested address if present, else the persisted hint for
// the same wallet, else the first account in the wallet's reported order;
// nil when the wallet reports zero accounts.
package wallet

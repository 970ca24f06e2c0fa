// ABOUTME: Core types for the wallet connection state machine.
// ABOUTME: Defines Wallet, Account, ConnectionStatus, and ConnectionState.

package wallet

import "context"

// Baseline capability identifiers every connectable wallet must advertise.
// Wallets missing any of these are excluded from selection regardless of
// the configured required capabilities.
const (
	CapConnect    = "standard:connect"
	CapDisconnect = "standard:disconnect"
	CapAccounts   = "standard:accounts"
)

// ConnectionStatus describes where the session sits in the connect lifecycle.
type ConnectionStatus int

const (
	StatusDisconnected ConnectionStatus = iota
	StatusConnecting
	StatusConnected
)

// String returns the lowercase name of the status.
func (s ConnectionStatus) String() string {
	switch s {
	case StatusDisconnected:
		return "disconnected"
	case StatusConnecting:
		return "connecting"
	case StatusConnected:
		return "connected"
	default:
		return "unknown"
	}
}

// Account is an address-bearing identity authorized by a wallet for signing.
type Account struct {
	Address   string
	PublicKey []byte
	Label     string
}

// ConnectOptions is the payload passed to a wallet's connect capability.
// Silent asks the wallet to avoid interactive prompts; wallets that do not
// support silent mode may ignore it and prompt (or fail) anyway.
type ConnectOptions struct {
	Silent bool
}

// ConnectResult is the raw result of a wallet's connect capability: the
// account list the wallet authorized for this session.
type ConnectResult struct {
	Accounts []Account
}

// Wallet is an external signing agent discoverable through a Feed.
//
// Capabilities returns the identifiers of the named operations the wallet
// advertises (see CapConnect and friends). Hosts invoke capabilities beyond
// the baseline by type-asserting the concrete wallet returned from
// Kit.CurrentWallet.
type Wallet interface {
	Name() string
	Capabilities() []string
	Accounts() []Account
	Connect(ctx context.Context, opts ConnectOptions) (*ConnectResult, error)
	Disconnect(ctx context.Context) error
}

// Feed is the wallet discovery side: a snapshot of the currently known
// wallets plus push notifications when that set changes. Implementations
// must tolerate callbacks that take locks of their own; callbacks may be
// invoked from any goroutine.
type Feed interface {
	List() []Wallet
	Watch(registered, unregistered func(Wallet)) (cancel func())
}

// ConnectionState is the authoritative in-memory model of the session's
// connection. It is owned by the Kit's reducer; callers receive snapshots.
//
// Invariants maintained by the reducer:
//   - CurrentAccount is nil or a member of Accounts.
//   - Accounts is non-empty only when CurrentWallet is non-nil.
//   - Status == StatusConnected iff CurrentWallet is non-nil.
type ConnectionState struct {
	// Wallets is the selector output: discovered wallets that pass the
	// capability filter, preferred names first.
	Wallets []Wallet

	CurrentWallet  Wallet
	Accounts       []Account
	CurrentAccount *Account
	Status         ConnectionStatus
}

// snapshotState returns a copy safe to hand outside the Kit's mutex.
func snapshotState(s ConnectionState) ConnectionState {
	out := s
	out.Wallets = append([]Wallet(nil), s.Wallets...)
	out.Accounts = append([]Account(nil), s.Accounts...)
	if s.CurrentAccount != nil {
		acct := *s.CurrentAccount
		out.CurrentAccount = &acct
	}
	return out
}

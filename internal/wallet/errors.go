// ABOUTME: Error taxonomy for wallet connection operations.
// ABOUTME: Sentinel errors for precondition failures plus WalletError for external causes.

package wallet

import (
	"errors"
	"fmt"
)

// ErrAlreadyConnected indicates a connect was requested while a connection
// is active or another connect attempt is in flight. Only one connection is
// ever permitted; callers must disconnect first, even for the same wallet.
var ErrAlreadyConnected = errors.New("wallet already connected")

// ErrWalletNotFound indicates the requested wallet name does not resolve to
// a currently discovered wallet.
var ErrWalletNotFound = errors.New("wallet not found")

// ErrNotConnected indicates an operation requiring an active connection was
// invoked while disconnected.
var ErrNotConnected = errors.New("no wallet connected")

// WalletError wraps a failure raised by the external wallet's own capability
// invocation (for example the user rejecting the connect prompt). The cause
// passes through verbatim via Unwrap.
type WalletError struct {
	WalletName string
	Op         string
	Err        error
}

func (e *WalletError) Error() string {
	return fmt.Sprintf("wallet %q: %s: %v", e.WalletName, e.Op, e.Err)
}

func (e *WalletError) Unwrap() error {
	return e.Err
}

// ABOUTME: Pure state-transition function for the connection state machine.
// ABOUTME: Maps (ConnectionState, action) to a new state with no side effects.

package wallet

import "fmt"

// action is the closed set of state transitions. The Kit is the only
// dispatcher; precondition enforcement (already connected, wallet unknown)
// lives there so the reducer stays total.
type action interface {
	isAction()
}

// walletsChangedAction replaces the discovered wallet list. removed carries
// the names of wallets that just left the feed; if one of them is the
// currently connected wallet the whole connection is torn down in the same
// transition.
type walletsChangedAction struct {
	wallets []Wallet
	removed []string
}

// statusChangedAction sets the connection status. Issued by the Kit only for
// the connecting/disconnected transitions around a connect attempt.
type statusChangedAction struct {
	status ConnectionStatus
}

// connectedAction commits an established connection. Unconditional: the Kit
// guarantees no other connect attempt is in flight.
type connectedAction struct {
	wallet   Wallet
	accounts []Account
	account  *Account
}

// disconnectedAction resets to the fully disconnected state.
type disconnectedAction struct{}

func (walletsChangedAction) isAction() {}
func (statusChangedAction) isAction()  {}
func (connectedAction) isAction()      {}
func (disconnectedAction) isAction()   {}

// reduce applies act to state and returns the next state. No action is
// rejected; an unknown action type is a programming error and panics.
func reduce(state ConnectionState, act action) ConnectionState {
	switch act := act.(type) {
	case walletsChangedAction:
		next := state
		next.Wallets = act.wallets
		if state.CurrentWallet != nil {
			for _, name := range act.removed {
				if name == state.CurrentWallet.Name() {
					return clearConnection(next)
				}
			}
		}
		return next

	case statusChangedAction:
		next := state
		next.Status = act.status
		return next

	case connectedAction:
		next := state
		next.CurrentWallet = act.wallet
		next.Accounts = act.accounts
		next.CurrentAccount = act.account
		next.Status = StatusConnected
		return next

	case disconnectedAction:
		return clearConnection(state)

	default:
		panic(fmt.Sprintf("wallet: unknown action type %T", act))
	}
}

// clearConnection drops every connection field while keeping the wallet list.
func clearConnection(state ConnectionState) ConnectionState {
	state.CurrentWallet = nil
	state.Accounts = nil
	state.CurrentAccount = nil
	state.Status = StatusDisconnected
	return state
}

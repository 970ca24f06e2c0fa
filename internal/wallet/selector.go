// ABOUTME: Wallet selector: capability filtering and preference ordering.
// ABOUTME: Pure function producing the ordered wallet list shown to the host.

package wallet

// baselineCapabilities must be present on every selectable wallet.
var baselineCapabilities = []string{CapConnect, CapDisconnect, CapAccounts}

// Select filters all down to wallets exposing the baseline capabilities plus
// every identifier in required, then orders them: wallets named in preferred
// first (in preferred order, discovery order breaking ties between duplicate
// names), then everything else in discovery order.
func Select(all []Wallet, preferred, required []string) []Wallet {
	eligible := make([]Wallet, 0, len(all))
	for _, w := range all {
		if hasCapabilities(w, baselineCapabilities) && hasCapabilities(w, required) {
			eligible = append(eligible, w)
		}
	}

	ordered := make([]Wallet, 0, len(eligible))
	taken := make([]bool, len(eligible))
	for _, name := range preferred {
		for i, w := range eligible {
			if !taken[i] && w.Name() == name {
				ordered = append(ordered, w)
				taken[i] = true
			}
		}
	}
	for i, w := range eligible {
		if !taken[i] {
			ordered = append(ordered, w)
		}
	}
	return ordered
}

func hasCapabilities(w Wallet, required []string) bool {
	if len(required) == 0 {
		return true
	}
	caps := make(map[string]bool, len(required))
	for _, c := range w.Capabilities() {
		caps[c] = true
	}
	for _, c := range required {
		if !caps[c] {
			return false
		}
	}
	return true
}

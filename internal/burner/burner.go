// ABOUTME: In-process debug wallet with mnemonic-derived ed25519 accounts.
// ABOUTME: Development only; keys live in memory with no protection.

package burner

import (
	"context"
	"crypto/ed25519"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"

	"github.com/tyler-smith/go-bip39"
	"golang.org/x/crypto/blake2b"

	"github.com/2389/coven-wallet/internal/wallet"
)

// WalletName is the name the burner registers under.
const WalletName = "Coven Burner"

// CapSignPersonalMessage identifies the burner's signing capability.
const CapSignPersonalMessage = "sui:signPersonalMessage"

// ed25519SchemeFlag prefixes the public key before address hashing.
const ed25519SchemeFlag = 0x00

var (
	ErrInvalidMnemonic = errors.New("invalid mnemonic")
	ErrNotConnected    = errors.New("burner wallet not connected")
	ErrUnknownAccount  = errors.New("unknown account address")
)

type keyedAccount struct {
	account wallet.Account
	priv    ed25519.PrivateKey
}

// Wallet is an in-process, non-networked wallet for development and tests.
// It connects unconditionally (silent or not), so it never exercises the
// interactive rejection path.
type Wallet struct {
	mu        sync.Mutex
	accounts  []keyedAccount
	connected bool
}

// New generates a fresh mnemonic and derives count accounts from it.
func New(count int) (*Wallet, error) {
	entropy, err := bip39.NewEntropy(256)
	if err != nil {
		return nil, fmt.Errorf("generating entropy: %w", err)
	}
	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return nil, fmt.Errorf("generating mnemonic: %w", err)
	}
	return NewFromMnemonic(mnemonic, count)
}

// NewFromMnemonic derives count deterministic accounts from a BIP-39
// mnemonic. The same mnemonic always yields the same addresses.
func NewFromMnemonic(mnemonic string, count int) (*Wallet, error) {
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, ErrInvalidMnemonic
	}
	if count < 1 {
		count = 1
	}
	seed := bip39.NewSeed(mnemonic, "")

	w := &Wallet{}
	for i := 0; i < count; i++ {
		material := blake2b.Sum256(append(seed, byte(i)))
		priv := ed25519.NewKeyFromSeed(material[:])
		pub := priv.Public().(ed25519.PublicKey)
		w.accounts = append(w.accounts, keyedAccount{
			priv: priv,
			account: wallet.Account{
				Address:   addressFromPublicKey(pub),
				PublicKey: append([]byte(nil), pub...),
				Label:     fmt.Sprintf("Burner %d", i+1),
			},
		})
	}
	return w, nil
}

// addressFromPublicKey derives the account address: 0x-prefixed hex of
// BLAKE2b-256 over the scheme flag byte followed by the public key.
func addressFromPublicKey(pub ed25519.PublicKey) string {
	payload := make([]byte, 0, 1+len(pub))
	payload = append(payload, ed25519SchemeFlag)
	payload = append(payload, pub...)
	sum := blake2b.Sum256(payload)
	return "0x" + hex.EncodeToString(sum[:])
}

// Name implements wallet.Wallet.
func (w *Wallet) Name() string { return WalletName }

// Capabilities implements wallet.Wallet.
func (w *Wallet) Capabilities() []string {
	return []string{
		wallet.CapConnect,
		wallet.CapDisconnect,
		wallet.CapAccounts,
		CapSignPersonalMessage,
	}
}

// Accounts implements wallet.Wallet.
func (w *Wallet) Accounts() []wallet.Account {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]wallet.Account, len(w.accounts))
	for i, ka := range w.accounts {
		out[i] = ka.account
	}
	return out
}

// Connect implements wallet.Wallet. The burner has no UI, so silent and
// interactive connects behave identically.
func (w *Wallet) Connect(ctx context.Context, opts wallet.ConnectOptions) (*wallet.ConnectResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	w.mu.Lock()
	w.connected = true
	w.mu.Unlock()
	return &wallet.ConnectResult{Accounts: w.Accounts()}, nil
}

// Disconnect implements wallet.Wallet.
func (w *Wallet) Disconnect(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	w.mu.Lock()
	w.connected = false
	w.mu.Unlock()
	return nil
}

// SignPersonalMessage signs message with the account holding address.
// Fails when the wallet is not connected or the address is unknown.
func (w *Wallet) SignPersonalMessage(address string, message []byte) ([]byte, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.connected {
		return nil, ErrNotConnected
	}
	for _, ka := range w.accounts {
		if ka.account.Address == address {
			return ed25519.Sign(ka.priv, message), nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownAccount, address)
}

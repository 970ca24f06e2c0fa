// ABOUTME: Codec for the persisted "most recent connection" record.
// ABOUTME: Wraps the storage adapter so persistence failures are logged, never surfaced.

package wallet

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/2389/coven-wallet/internal/store"
)

// DefaultStorageKey is the storage key for the recent-connection record when
// the host configures none.
const DefaultStorageKey = "coven-wallet:recent-connection"

const (
	recordDelimiter = "-"

	// noAccountSentinel marks a record whose connection selected no account.
	// Valid addresses are 0x-prefixed hex, so the token cannot collide.
	noAccountSentinel = "none"
)

// record is the persisted tuple of last-used wallet name and account address.
// An empty Address means the connection had no selected account.
type record struct {
	WalletName string
	Address    string
}

// encodeRecord renders a record as the single stored string value.
//
// decodeRecord splits on the first delimiter, so a wallet name containing "-"
// does not round-trip: "My-Wallet" decodes as name "My" with the rest folded
// into the address. The record is an auto-connect hint only, so a mangled
// name costs at most a skipped restore.
func encodeRecord(r record) string {
	addr := r.Address
	if addr == "" {
		addr = noAccountSentinel
	}
	return r.WalletName + recordDelimiter + addr
}

// decodeRecord parses a stored value. Malformed input (no delimiter, empty
// wallet name) reports ok=false rather than failing loudly: a broken record
// only costs the session its auto-connect.
func decodeRecord(raw string) (record, bool) {
	name, addr, found := strings.Cut(raw, recordDelimiter)
	if !found || name == "" {
		return record{}, false
	}
	if addr == noAccountSentinel {
		addr = ""
	}
	return record{WalletName: name, Address: addr}, true
}

// recordStore reads and writes the recent-connection record through the
// host-supplied storage adapter. Every adapter failure is absorbed here and
// logged; persistence is best-effort and never load-bearing for connection
// correctness.
type recordStore struct {
	storage store.Storage
	key     string
	logger  *slog.Logger
}

// load returns the persisted record, or ok=false when there is none, the
// stored value is malformed, or the adapter failed.
func (rs *recordStore) load(ctx context.Context) (record, bool) {
	if rs.storage == nil {
		return record{}, false
	}
	raw, err := rs.storage.Get(ctx, rs.key)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			rs.logger.Warn("reading recent connection failed", "key", rs.key, "error", err)
		}
		return record{}, false
	}
	rec, ok := decodeRecord(raw)
	if !ok {
		rs.logger.Warn("ignoring malformed recent connection record", "key", rs.key, "value", raw)
	}
	return rec, ok
}

// save writes the record, logging and swallowing any adapter failure.
func (rs *recordStore) save(ctx context.Context, rec record) {
	if rs.storage == nil {
		return
	}
	if err := rs.storage.Set(ctx, rs.key, encodeRecord(rec)); err != nil {
		rs.logger.Warn("persisting recent connection failed", "key", rs.key, "error", err)
	}
}

// Package store defines the Storage adapter interface for coven-wallet
// persistence and provides two implementations: SQLiteStore, a durable
// file-backed store using modernc.org/sqlite, and MockStore, an in-memory
// store for tests with injectable adapter failures.
//
// The wallet kit only ever reads and writes a single key (the
// recent-connection record), but the interface is a general key-value
// surface so hosts can plug in whatever medium they already use.
package store

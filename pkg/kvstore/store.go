// Package kvstore defines the boundary contract between the pairing/session
// core and the vault's opaque encrypted key-value store. The core never
// implements this store — only the interface in this file, so the rest of
// the module can be built and tested against it. A real vault-backed
// implementation lives outside this module; see Memory for an in-memory
// Store used by tests and demo wiring. The locked-vault fallback itself is
// the memory cache inside pkg/identity and pkg/pairing, not this package.
package kvstore

import "context"

// Status reports whether the backing store has been initialized.
type Status struct {
	Initialized bool
}

// Store is the KV contract consumed by the core: kvStatus/kvInit/kvGet/
// kvPut from the spec, normalized to Go types. Get returns (value, ok,
// err) instead of the source's string|{data:string}|null union — ok is
// false iff the key is absent, matching "normalize to string | null".
type Store interface {
	// Status reports whether Init has previously completed successfully.
	Status(ctx context.Context) (Status, error)

	// Init prepares the store for use. It is idempotent: calling Init on
	// an already-initialized store must not be treated as an error by the
	// caller (the core ignores "already initialized" itself).
	Init(ctx context.Context) error

	// Get returns the value stored under key, or ok=false if absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Put stores value under key, overwriting any existing value.
	Put(ctx context.Context, key, value string) error
}

// Known keys written and read by pkg/identity and pkg/pairing.
const (
	KeyIdentityEd25519    = "id.ed25519"
	KeyIdentityX25519     = "id.x25519"
	KeyIdentityCreatedAt  = "id.createdAt"
	KeyIdentityPairingSec = "id.pairingSecret"
	KeyPeerData           = "peer.data"
)

package identity

import "errors"

// Identity store errors.
var (
	// ErrKeysUnavailable is returned when the signing key is neither
	// persisted (KV locked or absent) nor held in the memory cache. The
	// caller should prompt the user to unlock the vault and retry.
	ErrKeysUnavailable = errors.New("identity: signing key unavailable")
)

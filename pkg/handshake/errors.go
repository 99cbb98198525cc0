package handshake

import "errors"

// Handshake and data-phase errors.
var (
	// ErrNotPaired is returned by BeginHandshake when no peer is pinned.
	ErrNotPaired = errors.New("handshake: no peer pinned")

	// ErrIdentityKeysUnavailable is returned when the host's signing key
	// is unavailable from both the KV store and the memory cache.
	ErrIdentityKeysUnavailable = errors.New("handshake: identity keys unavailable")

	// ErrInvalidPeerPublicKey is returned when a supplied public key (the
	// extension's ephemeral key, in this package) does not decode to
	// exactly 32 bytes.
	ErrInvalidPeerPublicKey = errors.New("handshake: invalid public key encoding")

	// ErrPeerNotPaired is returned by FinishHandshake if the pinned peer
	// was unpinned between BeginHandshake and FinishHandshake.
	ErrPeerNotPaired = errors.New("handshake: peer not paired")

	// ErrInvalidClientSignature is returned when the client signature does
	// not decode to exactly 64 bytes.
	ErrInvalidClientSignature = errors.New("handshake: invalid client signature encoding")

	// ErrInvalidTranscript is returned if a session's stored transcript is
	// empty, which should never happen for a session created by
	// BeginHandshake.
	ErrInvalidTranscript = errors.New("handshake: invalid transcript")

	// ErrPeerSignatureInvalid is returned when the client's transcript
	// signature fails verification. The offending session is closed.
	ErrPeerSignatureInvalid = errors.New("handshake: peer signature invalid")

	// ErrDecryptFailed is returned by Open on secretbox authentication
	// failure, or on a malformed nonce/ciphertext. The offending session
	// is closed.
	ErrDecryptFailed = errors.New("handshake: decryption failed")
)

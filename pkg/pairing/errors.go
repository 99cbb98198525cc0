package pairing

import "errors"

// Pairing manager errors.
var (
	// ErrPeerAlreadyPaired is returned by PinPeer when a different peer key
	// is already pinned.
	ErrPeerAlreadyPaired = errors.New("pairing: a different peer is already pinned")

	// ErrNoPendingPairing is returned by ConfirmPeer when no PeerRecord
	// exists to confirm.
	ErrNoPendingPairing = errors.New("pairing: no pending pairing to confirm")

	// ErrPeerKeyMismatch is returned by ConfirmPeer when the supplied key
	// does not match the pinned PeerRecord.
	ErrPeerKeyMismatch = errors.New("pairing: peer key does not match pinned record")

	// ErrInvalidPeerPublicKey is returned when a supplied peer public key
	// does not base64-decode to 32 bytes.
	ErrInvalidPeerPublicKey = errors.New("pairing: invalid peer public key")
)

package crypto

import "errors"

// Primitive wrapper errors.
var (
	// ErrInvalidKeyLength is returned when a key does not match the fixed
	// size the primitive requires.
	ErrInvalidKeyLength = errors.New("crypto: invalid key length")

	// ErrInvalidSignatureLength names a signature that is not exactly
	// ed25519.SignatureSize bytes. No function in this package returns it:
	// EdVerify reports a wrong-length signature (or public key) as false.
	ErrInvalidSignatureLength = errors.New("crypto: invalid signature length")

	// ErrInvalidNonceLength is returned when a secretbox nonce is not
	// exactly 24 bytes.
	ErrInvalidNonceLength = errors.New("crypto: invalid nonce length")

	// ErrZeroSharedSecret is returned by XECDH when the computed shared
	// secret is all-zero, a low-order point / contributory-behavior guard.
	ErrZeroSharedSecret = errors.New("crypto: ecdh produced an all-zero shared secret")

	// ErrOpenFailed is returned when secretbox authentication fails.
	ErrOpenFailed = errors.New("crypto: secretbox authentication failed")
)

package crypto

import (
	"crypto/rand"

	"golang.org/x/crypto/curve25519"
)

// X25519KeySize is the size, in bytes, of an X25519 public or secret key.
const X25519KeySize = 32

// XKeyPair holds a generated X25519 ECDH key pair.
type XKeyPair struct {
	Public [X25519KeySize]byte
	Secret [X25519KeySize]byte
}

// XKeypair generates a fresh X25519 key pair from the OS CSPRNG.
func XKeypair() (XKeyPair, error) {
	var kp XKeyPair
	if _, err := rand.Read(kp.Secret[:]); err != nil {
		return XKeyPair{}, err
	}
	pub, err := curve25519.X25519(kp.Secret[:], curve25519.Basepoint)
	if err != nil {
		return XKeyPair{}, err
	}
	copy(kp.Public[:], pub)
	return kp, nil
}

// XECDH computes the X25519 shared secret between sk and peerPk.
//
// Both sk and peerPk must be exactly X25519KeySize bytes. The all-zero
// shared secret that results from a low-order peer public key is rejected
// as a contributory-behavior guard (ErrZeroSharedSecret) rather than
// silently handed to the caller as key material.
func XECDH(sk, peerPk []byte) ([32]byte, error) {
	var shared [32]byte
	if len(sk) != X25519KeySize {
		return shared, ErrInvalidKeyLength
	}
	if len(peerPk) != X25519KeySize {
		return shared, ErrInvalidKeyLength
	}

	// curve25519.X25519 itself rejects an all-zero result (a low-order
	// point) with an error and returns no bytes on that path. Its error is
	// ignored: shared then stays all-zero, and our own constant-time check
	// below turns that into ErrZeroSharedSecret for the caller.
	out, _ := curve25519.X25519(sk, peerPk)
	copy(shared[:], out)

	var zero [32]byte
	if CtEq(shared[:], zero[:]) {
		return shared, ErrZeroSharedSecret
	}
	return shared, nil
}

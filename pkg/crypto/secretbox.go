package crypto

import (
	"golang.org/x/crypto/nacl/secretbox"
)

// Secretbox sizes. NonceSize and Overhead match XSalsa20-Poly1305:
// a 24-byte random nonce and a 16-byte Poly1305 tag.
const (
	SecretboxKeySize   = 32
	SecretboxNonceSize = 24
	SecretboxOverhead  = secretbox.Overhead
)

// SecretboxSeal authenticated-encrypts pt under key, appending the 24-byte
// nonce's ciphertext+tag per the secretbox convention (tag is embedded in
// the returned ciphertext, not the nonce).
//
// key must be SecretboxKeySize bytes and nonce SecretboxNonceSize bytes.
func SecretboxSeal(key []byte, nonce []byte, pt []byte) ([]byte, error) {
	if len(key) != SecretboxKeySize {
		return nil, ErrInvalidKeyLength
	}
	if len(nonce) != SecretboxNonceSize {
		return nil, ErrInvalidNonceLength
	}
	var k [32]byte
	var n [24]byte
	copy(k[:], key)
	copy(n[:], nonce)
	return secretbox.Seal(nil, pt, &n, &k), nil
}

// SecretboxOpen authenticates and decrypts ct, which must have been produced
// by SecretboxSeal with the same key and nonce. Returns ErrOpenFailed on
// any authentication failure — it never distinguishes why.
func SecretboxOpen(key []byte, nonce []byte, ct []byte) ([]byte, error) {
	if len(key) != SecretboxKeySize {
		return nil, ErrInvalidKeyLength
	}
	if len(nonce) != SecretboxNonceSize {
		return nil, ErrInvalidNonceLength
	}
	var k [32]byte
	var n [24]byte
	copy(k[:], key)
	copy(n[:], nonce)
	pt, ok := secretbox.Open(nil, ct, &n, &k)
	if !ok {
		return nil, ErrOpenFailed
	}
	return pt, nil
}

package crypto

import (
	"crypto/ed25519"
	"crypto/rand"
)

// Ed25519 key and signature sizes, restated for callers that don't want to
// import crypto/ed25519 directly.
const (
	Ed25519PublicKeySize  = ed25519.PublicKeySize
	Ed25519PrivateKeySize = ed25519.PrivateKeySize
	Ed25519SignatureSize  = ed25519.SignatureSize
)

// EdKeyPair holds a generated Ed25519 signing key pair.
type EdKeyPair struct {
	Public  [Ed25519PublicKeySize]byte
	Private [Ed25519PrivateKeySize]byte
}

// EdKeypair generates a fresh Ed25519 key pair from the OS CSPRNG.
func EdKeypair() (EdKeyPair, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return EdKeyPair{}, err
	}
	var kp EdKeyPair
	copy(kp.Public[:], pub)
	copy(kp.Private[:], priv)
	return kp, nil
}

// EdSign signs msg with the given Ed25519 private key.
// sk must be exactly Ed25519PrivateKeySize bytes.
func EdSign(sk, msg []byte) ([]byte, error) {
	if len(sk) != Ed25519PrivateKeySize {
		return nil, ErrInvalidKeyLength
	}
	sig := ed25519.Sign(ed25519.PrivateKey(sk), msg)
	return sig, nil
}

// EdVerify reports whether sig is a valid Ed25519 signature of msg under pk.
// pk must be exactly Ed25519PublicKeySize bytes and sig exactly
// Ed25519SignatureSize bytes; mismatched lengths return false rather than
// panicking, matching the defensive posture the rest of the wrapper takes.
func EdVerify(pk, msg, sig []byte) bool {
	if len(pk) != Ed25519PublicKeySize {
		return false
	}
	if len(sig) != Ed25519SignatureSize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(pk), msg, sig)
}

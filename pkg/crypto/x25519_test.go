package crypto

import "testing"

func TestXECDHAgreement(t *testing.T) {
	a, err := XKeypair()
	if err != nil {
		t.Fatalf("XKeypair: %v", err)
	}
	b, err := XKeypair()
	if err != nil {
		t.Fatalf("XKeypair: %v", err)
	}

	sharedA, err := XECDH(a.Secret[:], b.Public[:])
	if err != nil {
		t.Fatalf("XECDH(a,b): %v", err)
	}
	sharedB, err := XECDH(b.Secret[:], a.Public[:])
	if err != nil {
		t.Fatalf("XECDH(b,a): %v", err)
	}

	if sharedA != sharedB {
		t.Fatalf("shared secrets disagree: %x vs %x", sharedA, sharedB)
	}
}

func TestXECDHInvalidKeyLength(t *testing.T) {
	if _, err := XECDH(make([]byte, 31), make([]byte, 32)); err != ErrInvalidKeyLength {
		t.Fatalf("short secret key: got %v, want ErrInvalidKeyLength", err)
	}
	if _, err := XECDH(make([]byte, 32), make([]byte, 31)); err != ErrInvalidKeyLength {
		t.Fatalf("short peer key: got %v, want ErrInvalidKeyLength", err)
	}
}

func TestXECDHRejectsZeroSharedSecret(t *testing.T) {
	// The all-zero public key is a low-order point on Curve25519; X25519
	// with any scalar against it yields an all-zero shared secret.
	kp, err := XKeypair()
	if err != nil {
		t.Fatalf("XKeypair: %v", err)
	}
	zeroPeer := make([]byte, 32)
	if _, err := XECDH(kp.Secret[:], zeroPeer); err != ErrZeroSharedSecret {
		t.Fatalf("XECDH with zero peer key: got %v, want ErrZeroSharedSecret", err)
	}
}

package crypto

import (
	"bytes"
	"testing"
)

func TestSecretboxRoundTrip(t *testing.T) {
	key, err := RandomBytes(SecretboxKeySize)
	if err != nil {
		t.Fatalf("RandomBytes: %v", err)
	}
	nonce, err := RandomBytes(SecretboxNonceSize)
	if err != nil {
		t.Fatalf("RandomBytes: %v", err)
	}
	pt := []byte("hello")

	ct, err := SecretboxSeal(key, nonce, pt)
	if err != nil {
		t.Fatalf("SecretboxSeal: %v", err)
	}
	if len(ct) != len(pt)+SecretboxOverhead {
		t.Fatalf("ciphertext length = %d, want %d", len(ct), len(pt)+SecretboxOverhead)
	}

	got, err := SecretboxOpen(key, nonce, ct)
	if err != nil {
		t.Fatalf("SecretboxOpen: %v", err)
	}
	if !bytes.Equal(got, pt) {
		t.Fatalf("round trip mismatch: got %q, want %q", got, pt)
	}
}

func TestSecretboxOpenRejectsTamperedCiphertext(t *testing.T) {
	key, _ := RandomBytes(SecretboxKeySize)
	nonce, _ := RandomBytes(SecretboxNonceSize)
	ct, err := SecretboxSeal(key, nonce, []byte("hello"))
	if err != nil {
		t.Fatalf("SecretboxSeal: %v", err)
	}

	tampered := bytes.Clone(ct)
	tampered[0] ^= 0xFF
	if _, err := SecretboxOpen(key, nonce, tampered); err != ErrOpenFailed {
		t.Fatalf("got %v, want ErrOpenFailed", err)
	}
}

func TestSecretboxInvalidLengths(t *testing.T) {
	key, _ := RandomBytes(SecretboxKeySize)
	nonce, _ := RandomBytes(SecretboxNonceSize)

	if _, err := SecretboxSeal(make([]byte, 10), nonce, []byte("x")); err != ErrInvalidKeyLength {
		t.Fatalf("short key: got %v, want ErrInvalidKeyLength", err)
	}
	if _, err := SecretboxSeal(key, make([]byte, 10), []byte("x")); err != ErrInvalidNonceLength {
		t.Fatalf("short nonce: got %v, want ErrInvalidNonceLength", err)
	}
}

package crypto

import (
	"bytes"
	"testing"
)

func TestEdKeypairRoundTrip(t *testing.T) {
	kp, err := EdKeypair()
	if err != nil {
		t.Fatalf("EdKeypair: %v", err)
	}

	msg := []byte("handshake transcript")
	sig, err := EdSign(kp.Private[:], msg)
	if err != nil {
		t.Fatalf("EdSign: %v", err)
	}
	if len(sig) != Ed25519SignatureSize {
		t.Fatalf("signature length = %d, want %d", len(sig), Ed25519SignatureSize)
	}
	if !EdVerify(kp.Public[:], msg, sig) {
		t.Fatal("EdVerify rejected a valid signature")
	}
}

func TestEdVerifyRejectsTamperedMessage(t *testing.T) {
	kp, err := EdKeypair()
	if err != nil {
		t.Fatalf("EdKeypair: %v", err)
	}
	msg := []byte("original")
	sig, err := EdSign(kp.Private[:], msg)
	if err != nil {
		t.Fatalf("EdSign: %v", err)
	}

	if EdVerify(kp.Public[:], []byte("tampered"), sig) {
		t.Fatal("EdVerify accepted a signature over the wrong message")
	}

	tamperedSig := bytes.Clone(sig)
	tamperedSig[0] ^= 0xFF
	if EdVerify(kp.Public[:], msg, tamperedSig) {
		t.Fatal("EdVerify accepted a tampered signature")
	}
}

func TestEdSignInvalidKeyLength(t *testing.T) {
	if _, err := EdSign(make([]byte, 10), []byte("msg")); err != ErrInvalidKeyLength {
		t.Fatalf("EdSign short key: got %v, want ErrInvalidKeyLength", err)
	}
}

func TestEdVerifyInvalidLengths(t *testing.T) {
	kp, err := EdKeypair()
	if err != nil {
		t.Fatalf("EdKeypair: %v", err)
	}
	sig, _ := EdSign(kp.Private[:], []byte("m"))

	if EdVerify(make([]byte, 10), []byte("m"), sig) {
		t.Fatal("EdVerify accepted a short public key")
	}
	if EdVerify(kp.Public[:], []byte("m"), make([]byte, 10)) {
		t.Fatal("EdVerify accepted a short signature")
	}
}

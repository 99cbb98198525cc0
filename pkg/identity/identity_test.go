package identity

import (
	"context"
	"testing"

	"github.com/pearpass/native-core/pkg/kvstore"
)

func TestGetOrCreateIdempotent(t *testing.T) {
	ctx := context.Background()
	s := New(kvstore.NewMemory(), nil)

	first, err := s.GetOrCreate(ctx)
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	second, err := s.GetOrCreate(ctx)
	if err != nil {
		t.Fatalf("GetOrCreate (2nd): %v", err)
	}

	if first.EdPub != second.EdPub || first.XPub != second.XPub {
		t.Fatal("GetOrCreate produced different public keys across calls")
	}
}

func TestGetOrCreatePersistsAcrossStores(t *testing.T) {
	ctx := context.Background()
	kv := kvstore.NewMemory()

	s1 := New(kv, nil)
	pub1, err := s1.GetOrCreate(ctx)
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}

	s2 := New(kv, nil)
	pub2, err := s2.GetOrCreate(ctx)
	if err != nil {
		t.Fatalf("GetOrCreate on fresh store over same kv: %v", err)
	}

	if pub1.EdPub != pub2.EdPub || pub1.XPub != pub2.XPub {
		t.Fatal("identity did not survive across Store instances sharing a KV store")
	}
}

func TestGetOrCreateFallsBackToMemoryWhenLocked(t *testing.T) {
	ctx := context.Background()
	s := New(kvstore.Locked{}, nil)

	pub1, err := s.GetOrCreate(ctx)
	if err != nil {
		t.Fatalf("GetOrCreate with locked KV: %v", err)
	}
	pub2, err := s.GetOrCreate(ctx)
	if err != nil {
		t.Fatalf("GetOrCreate (2nd) with locked KV: %v", err)
	}
	if pub1.EdPub != pub2.EdPub {
		t.Fatal("locked-KV identity was regenerated instead of served from memory cache")
	}
}

func TestSigningKeyFallsBackToMemory(t *testing.T) {
	ctx := context.Background()
	s := New(kvstore.Locked{}, nil)

	if _, err := s.SigningKey(ctx); err != ErrKeysUnavailable {
		t.Fatalf("SigningKey before GetOrCreate: got %v, want ErrKeysUnavailable", err)
	}

	if _, err := s.GetOrCreate(ctx); err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}

	if _, err := s.SigningKey(ctx); err != nil {
		t.Fatalf("SigningKey after GetOrCreate with locked KV: %v", err)
	}
}

func TestGetFingerprintDeterministic(t *testing.T) {
	var pk [32]byte
	for i := range pk {
		pk[i] = byte(i)
	}
	f1 := GetFingerprint(pk)
	f2 := GetFingerprint(pk)
	if f1 != f2 {
		t.Fatal("GetFingerprint not deterministic")
	}
	pk[0] ^= 1
	if GetFingerprint(pk) == f1 {
		t.Fatal("GetFingerprint did not change when input changed")
	}
}

func TestGetPairingSecretGeneratesAndPersists(t *testing.T) {
	ctx := context.Background()
	kv := kvstore.NewMemory()
	s := New(kv, nil)

	if _, err := s.GetOrCreate(ctx); err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	sec1, err := s.GetPairingSecret(ctx)
	if err != nil {
		t.Fatalf("GetPairingSecret: %v", err)
	}
	sec2, err := s.GetPairingSecret(ctx)
	if err != nil {
		t.Fatalf("GetPairingSecret (2nd): %v", err)
	}
	if sec1 != sec2 {
		t.Fatal("pairing secret changed across calls")
	}
}

func TestResetMintsNewIdentity(t *testing.T) {
	ctx := context.Background()
	kv := kvstore.NewMemory()
	s := New(kv, nil)

	before, err := s.GetOrCreate(ctx)
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}

	after, err := s.Reset(ctx)
	if err != nil {
		t.Fatalf("Reset: %v", err)
	}

	if before.EdPub == after.EdPub {
		t.Fatal("Reset did not produce a new Ed25519 key")
	}
	if before.XPub == after.XPub {
		t.Fatal("Reset did not produce a new X25519 key")
	}
}

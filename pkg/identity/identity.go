// Package identity manages the host's long-term Ed25519 + X25519 key pair
// and pairing secret: generation, persistence through pkg/kvstore, and an
// in-memory fallback so a locked vault never blocks first-run pairing.
package identity

import (
	"context"
	"encoding/base64"
	"encoding/hex"
	"time"

	"github.com/pearpass/native-core/pkg/crypto"
	"github.com/pearpass/native-core/pkg/kvstore"
	"github.com/pion/logging"
)

// Public is the subset of the identity safe to hand to callers and, in
// turn, to the extension: the two public keys and the creation time.
type Public struct {
	EdPub     [32]byte
	XPub      [32]byte
	CreatedAt time.Time
}

// secret holds the full identity, including both private keys and the
// pairing secret. It only ever lives inside Store: in the memory cache, or
// transiently while being written to/read from the KV store.
type secret struct {
	edPub         [32]byte
	edSk          [64]byte
	xPub          [32]byte
	xSk           [32]byte
	createdAt     time.Time
	pairingSecret [32]byte
}

func (s *secret) public() Public {
	return Public{EdPub: s.edPub, XPub: s.xPub, CreatedAt: s.createdAt}
}

// Store persists and loads the host's long-term identity. All five fields
// described in spec §3 (edPub, edSk, xPub, xSk, createdAt, pairingSecret)
// are treated as present-together-or-absent: partial KV state is never
// trusted and triggers regeneration.
type Store struct {
	kv  kvstore.Store
	log logging.LeveledLogger

	mem *secret // populated on generation; survives a locked KV store
}

// New constructs a Store over kv. loggerFactory may be nil to disable
// logging.
func New(kv kvstore.Store, loggerFactory logging.LoggerFactory) *Store {
	s := &Store{kv: kv}
	if loggerFactory != nil {
		s.log = loggerFactory.NewLogger("identity")
	}
	return s
}

// GetOrCreate ensures a long-term identity exists and returns its public
// fields. It is idempotent: a second call against the same store (or KV
// contents) returns identical public keys without generating a new pair.
func (s *Store) GetOrCreate(ctx context.Context) (Public, error) {
	// Best-effort init; "already initialized" is not an error to us.
	_ = s.kv.Init(ctx)

	if id, ok := s.loadPersisted(ctx); ok {
		s.mem = id
		return id.public(), nil
	}

	if s.mem != nil {
		return s.mem.public(), nil
	}

	id, err := s.generate()
	if err != nil {
		return Public{}, err
	}
	s.mem = id
	s.persistBestEffort(ctx, id)
	return id.public(), nil
}

// loadPersisted loads all five identity fields from the KV store. It
// returns ok=false if any field is missing, malformed, or the store
// errors — the invariant in spec §3 is all-five-or-absent.
func (s *Store) loadPersisted(ctx context.Context) (*secret, bool) {
	edBlob, ok, err := s.kv.Get(ctx, kvstore.KeyIdentityEd25519)
	if err != nil || !ok {
		return nil, false
	}
	xBlob, ok, err := s.kv.Get(ctx, kvstore.KeyIdentityX25519)
	if err != nil || !ok {
		return nil, false
	}
	createdBlob, ok, err := s.kv.Get(ctx, kvstore.KeyIdentityCreatedAt)
	if err != nil || !ok {
		return nil, false
	}
	secretBlob, ok, err := s.kv.Get(ctx, kvstore.KeyIdentityPairingSec)
	if err != nil || !ok {
		return nil, false
	}

	edRaw, err := base64.StdEncoding.DecodeString(edBlob)
	if err != nil || len(edRaw) != crypto.Ed25519PublicKeySize+crypto.Ed25519PrivateKeySize {
		return nil, false
	}
	xRaw, err := base64.StdEncoding.DecodeString(xBlob)
	if err != nil || len(xRaw) != 2*crypto.X25519KeySize {
		return nil, false
	}
	createdAt, err := time.Parse(time.RFC3339, createdBlob)
	if err != nil {
		return nil, false
	}
	secretRaw, err := base64.StdEncoding.DecodeString(secretBlob)
	if err != nil || len(secretRaw) != 32 {
		return nil, false
	}

	id := &secret{createdAt: createdAt}
	copy(id.edPub[:], edRaw[:32])
	copy(id.edSk[:], edRaw[32:])
	copy(id.xPub[:], xRaw[:32])
	copy(id.xSk[:], xRaw[32:])
	copy(id.pairingSecret[:], secretRaw)
	return id, true
}

// generate mints a brand-new identity from fresh key material.
func (s *Store) generate() (*secret, error) {
	edKP, err := crypto.EdKeypair()
	if err != nil {
		return nil, err
	}
	xKP, err := crypto.XKeypair()
	if err != nil {
		return nil, err
	}
	pairingSecret, err := crypto.RandomBytes(32)
	if err != nil {
		return nil, err
	}

	id := &secret{
		edPub:     edKP.Public,
		edSk:      edKP.Private,
		xPub:      xKP.Public,
		xSk:       xKP.Secret,
		createdAt: time.Now().UTC(),
	}
	copy(id.pairingSecret[:], pairingSecret)

	if s.log != nil {
		s.log.Info("generated new host identity")
	}
	return id, nil
}

// persistBestEffort writes all five fields independently. A failure on any
// one field is logged and swallowed — the caller still has a usable
// identity via the memory cache, per spec §4.2's failure semantics.
func (s *Store) persistBestEffort(ctx context.Context, id *secret) {
	edBlob := base64.StdEncoding.EncodeToString(append(append([]byte{}, id.edPub[:]...), id.edSk[:]...))
	xBlob := base64.StdEncoding.EncodeToString(append(append([]byte{}, id.xPub[:]...), id.xSk[:]...))
	createdBlob := id.createdAt.Format(time.RFC3339)
	secretBlob := base64.StdEncoding.EncodeToString(id.pairingSecret[:])

	s.putBestEffort(ctx, kvstore.KeyIdentityEd25519, edBlob)
	s.putBestEffort(ctx, kvstore.KeyIdentityX25519, xBlob)
	s.putBestEffort(ctx, kvstore.KeyIdentityCreatedAt, createdBlob)
	s.putBestEffort(ctx, kvstore.KeyIdentityPairingSec, secretBlob)
}

func (s *Store) putBestEffort(ctx context.Context, key, value string) {
	if err := s.kv.Put(ctx, key, value); err != nil && s.log != nil {
		s.log.Warnf("identity: failed to persist %s, relying on memory cache: %v", key, err)
	}
}

// GetPairingSecret returns the 32-byte pairing secret, generating and
// persisting one if none exists yet.
func (s *Store) GetPairingSecret(ctx context.Context) ([32]byte, error) {
	if blob, ok, err := s.kv.Get(ctx, kvstore.KeyIdentityPairingSec); err == nil && ok {
		raw, decErr := base64.StdEncoding.DecodeString(blob)
		if decErr == nil && len(raw) == 32 {
			var out [32]byte
			copy(out[:], raw)
			return out, nil
		}
		if s.log != nil {
			s.log.Warn("identity: persisted pairing secret has invalid length, regenerating")
		}
	}

	if s.mem != nil {
		return s.mem.pairingSecret, nil
	}

	raw, err := crypto.RandomBytes(32)
	if err != nil {
		return [32]byte{}, err
	}
	var out [32]byte
	copy(out[:], raw)
	s.putBestEffort(ctx, kvstore.KeyIdentityPairingSec, base64.StdEncoding.EncodeToString(out[:]))
	return out, nil
}

// GetFingerprint returns hex(sha256(edPub)), a stable short identifier for
// a long-term public key suitable for display or logging.
func GetFingerprint(edPub [32]byte) string {
	h := crypto.SHA256(edPub[:])
	return hex.EncodeToString(h[:])
}

// SigningKey returns the host's Ed25519 private key, trying the persisted
// identity first and falling back to the memory cache. It returns
// ErrKeysUnavailable if neither source has a key — the caller should
// surface this to the user as "unlock the vault and retry".
func (s *Store) SigningKey(ctx context.Context) ([64]byte, error) {
	if id, ok := s.loadPersisted(ctx); ok {
		return id.edSk, nil
	}
	if s.mem != nil {
		return s.mem.edSk, nil
	}
	return [64]byte{}, ErrKeysUnavailable
}

// EphemeralXKeypair generates a fresh X25519 key pair for a single
// handshake. It does not touch identity state.
func EphemeralXKeypair() (crypto.XKeyPair, error) {
	return crypto.XKeypair()
}

// Reset clears the identity's persisted and cached state, then mints a
// fresh identity. It does NOT clear sessions or the peer pairing record —
// those live in pkg/sessionstore and pkg/pairing respectively, one layer
// up from identity in the dependency graph (see DESIGN.md). The
// `resetPairing` RPC operation composes all three.
func (s *Store) Reset(ctx context.Context) (Public, error) {
	s.putBestEffort(ctx, kvstore.KeyIdentityEd25519, "")
	s.putBestEffort(ctx, kvstore.KeyIdentityX25519, "")
	s.putBestEffort(ctx, kvstore.KeyIdentityCreatedAt, "")
	s.putBestEffort(ctx, kvstore.KeyIdentityPairingSec, "")
	s.mem = nil

	if s.log != nil {
		s.log.Info("identity reset, minting fresh keys")
	}
	return s.GetOrCreate(ctx)
}

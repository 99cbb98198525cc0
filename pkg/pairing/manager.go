// Package pairing manages the single peer (browser extension) this host is
// paired, or pairing, with: pairing-code derivation and verification, the
// PENDING/CONFIRMED peer state machine, and an unprotected-cache mirror of
// the confirmed peer's key for use before the vault is unlocked.
package pairing

import (
	"context"
	"encoding/base64"
	"sync"

	"github.com/pearpass/native-core/pkg/crypto"
	"github.com/pearpass/native-core/pkg/identity"
	"github.com/pearpass/native-core/pkg/kvstore"
	"github.com/pion/logging"
)

// Manager owns the peer pairing record and the pairing-code derived from
// the host's long-term identity.
type Manager struct {
	kv       kvstore.Store
	identity *identity.Store
	cache    *UnprotectedCache
	log      logging.LeveledLogger

	mu  sync.Mutex // serializes PinPeer/ConfirmPeer/Reset read-modify-write
	mem *PeerRecord // survives a locked KV, mirroring pkg/identity's pattern
}

// NewManager constructs a Manager. loggerFactory may be nil to disable
// logging. cache may be nil, in which case ConfirmPeer does not mirror the
// confirmed key anywhere outside the KV store.
func NewManager(kv kvstore.Store, id *identity.Store, cache *UnprotectedCache, loggerFactory logging.LoggerFactory) *Manager {
	m := &Manager{kv: kv, identity: id, cache: cache}
	if loggerFactory != nil {
		m.log = loggerFactory.NewLogger("pairing")
	}
	return m
}

// PairingCode returns the pairing code derived from the host's identity,
// generating the identity and its pairing secret on first use.
func (m *Manager) PairingCode(ctx context.Context) (string, error) {
	pub, err := m.identity.GetOrCreate(ctx)
	if err != nil {
		return "", err
	}
	secret, err := m.identity.GetPairingSecret(ctx)
	if err != nil {
		return "", err
	}
	return DerivePairingCode(pub.EdPub, secret), nil
}

// VerifyPairingCode reports whether userInput matches this host's current
// pairing code.
func (m *Manager) VerifyPairingCode(ctx context.Context, userInput string) (bool, error) {
	pub, err := m.identity.GetOrCreate(ctx)
	if err != nil {
		return false, err
	}
	secret, err := m.identity.GetPairingSecret(ctx)
	if err != nil {
		return false, err
	}
	return VerifyPairingCode(pub.EdPub, secret, userInput), nil
}

func (m *Manager) load(ctx context.Context) (*PeerRecord, bool) {
	if rec, ok := loadPeerRecord(ctx, m.kv); ok {
		return rec, true
	}
	if m.mem != nil {
		return m.mem, true
	}
	return nil, false
}

func (m *Manager) persist(ctx context.Context, rec *PeerRecord) {
	m.mem = rec
	if err := savePeerRecord(ctx, m.kv, rec); err != nil && m.log != nil {
		m.log.Warnf("pairing: failed to persist peer record, relying on memory cache: %v", err)
	}
}

// PinPeer records peerEdPub as the PENDING peer to pair with. Pinning the
// same key that is already pinned (PENDING or CONFIRMED) is a no-op.
// Pinning a different key while one is already pinned is rejected with
// ErrPeerAlreadyPaired: a host pairs with exactly one peer at a time.
func (m *Manager) PinPeer(ctx context.Context, peerEdPub [32]byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, ok := m.load(ctx); ok {
		if existing.PublicKey == peerEdPub {
			return nil
		}
		return ErrPeerAlreadyPaired
	}

	m.persist(ctx, &PeerRecord{PublicKey: peerEdPub, State: StatePending})
	if m.log != nil {
		m.log.Infof("pinned pending peer %s", identity.GetFingerprint(peerEdPub))
	}
	return nil
}

// ConfirmPeer transitions the PENDING peer matching peerEdPub to CONFIRMED
// and mirrors its key into the unprotected cache. Confirming an
// already-CONFIRMED matching peer is a no-op. It returns ErrNoPendingPairing
// if no peer is pinned, or ErrPeerKeyMismatch if peerEdPub does not match
// the pinned key.
func (m *Manager) ConfirmPeer(ctx context.Context, peerEdPub [32]byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.load(ctx)
	if !ok {
		return ErrNoPendingPairing
	}
	if rec.PublicKey != peerEdPub {
		return ErrPeerKeyMismatch
	}

	if rec.State != StateConfirmed {
		m.persist(ctx, &PeerRecord{PublicKey: peerEdPub, State: StateConfirmed})
	}
	if m.cache != nil {
		m.cache.Set(peerEdPub)
	}
	if m.log != nil {
		m.log.Infof("confirmed peer %s", identity.GetFingerprint(peerEdPub))
	}
	return nil
}

// PeerPublicKey returns the pinned peer's public key, or ok=false if none
// is pinned.
func (m *Manager) PeerPublicKey(ctx context.Context) (peerEdPub [32]byte, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.load(ctx)
	if !ok {
		return [32]byte{}, false
	}
	return rec.PublicKey, true
}

// PeerState returns the pinned peer's state, or ok=false if none is pinned.
func (m *Manager) PeerState(ctx context.Context) (state State, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.load(ctx)
	if !ok {
		return "", false
	}
	return rec.State, true
}

// IsPaired reports whether peerEdPub equals the pinned peer's key,
// regardless of PENDING/CONFIRMED state.
func (m *Manager) IsPaired(ctx context.Context, peerEdPub [32]byte) bool {
	pinned, ok := m.PeerPublicKey(ctx)
	if !ok {
		return false
	}
	return crypto.CtEq(pinned[:], peerEdPub[:])
}

// DecodePeerKey base64-decodes a peer public key as received over the RPC
// surface, returning ErrInvalidPeerPublicKey if it is not exactly 32 bytes.
func DecodePeerKey(b64 string) ([32]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(b64)
	if err != nil || len(raw) != 32 {
		return [32]byte{}, ErrInvalidPeerPublicKey
	}
	var out [32]byte
	copy(out[:], raw)
	return out, nil
}

// Reset clears the peer pairing record and the unprotected cache. It does
// not touch the host identity or any open session — those are composed by
// the caller (the resetPairing RPC handler), matching pkg/identity.Reset's
// scoping.
func (m *Manager) Reset(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.mem = nil
	if err := clearPeerRecord(ctx, m.kv); err != nil && m.log != nil {
		m.log.Warnf("pairing: failed to clear persisted peer record: %v", err)
	}
	if m.cache != nil {
		m.cache.Clear()
	}
	if m.log != nil {
		m.log.Info("pairing reset, peer unpinned")
	}
}

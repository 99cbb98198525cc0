// Package handshake runs the ephemeral X25519/Ed25519 handshake that
// establishes a session, and the authenticated-encryption data phase that
// rides on top of it: sealing and opening frames with strictly monotonic
// sequence numbers for replay protection.
package handshake

import (
	"context"
	"encoding/base64"

	"github.com/pearpass/native-core/pkg/crypto"
	"github.com/pearpass/native-core/pkg/identity"
	"github.com/pearpass/native-core/pkg/pairing"
	"github.com/pearpass/native-core/pkg/sessionstore"
	"github.com/pion/logging"
)

// clientFinishTag domain-separates the client's finish-handshake signature
// from the host's transcript signature, and from every other signed
// preimage in this module.
const clientFinishTag = "pearpass/client-finish/v1"

// Manager runs BeginHandshake/FinishHandshake and the seal/open data
// phase. It composes the identity store, pairing manager, and session
// store; see DESIGN.md for the layering this preserves.
type Manager struct {
	identity *identity.Store
	pairing  *pairing.Manager
	sessions *sessionstore.Store
	log      logging.LeveledLogger
}

// NewManager constructs a Manager. loggerFactory may be nil to disable
// logging.
func NewManager(id *identity.Store, pm *pairing.Manager, sessions *sessionstore.Store, loggerFactory logging.LoggerFactory) *Manager {
	m := &Manager{identity: id, pairing: pm, sessions: sessions}
	if loggerFactory != nil {
		m.log = loggerFactory.NewLogger("handshake")
	}
	return m
}

// BeginResult is the response to BeginHandshake.
type BeginResult struct {
	HostEphPubB64 string
	SignatureB64  string
	SessionID     string
}

// BeginHandshake runs the host side of the handshake: generates a fresh
// ephemeral X25519 pair, computes the ECDH shared secret with the
// extension's ephemeral public key, signs the transcript with the host's
// long-term Ed25519 key, and creates a session keyed on the shared secret.
func (m *Manager) BeginHandshake(ctx context.Context, extEphPubB64 string) (BeginResult, error) {
	peerEdPub, ok := m.pairing.PeerPublicKey(ctx)
	if !ok {
		return BeginResult{}, ErrNotPaired
	}

	edSk, err := m.identity.SigningKey(ctx)
	if err != nil {
		return BeginResult{}, ErrIdentityKeysUnavailable
	}

	extEphPub, err := decodeKey32(extEphPubB64)
	if err != nil {
		return BeginResult{}, ErrInvalidPeerPublicKey
	}

	hostEph, err := crypto.XKeypair()
	if err != nil {
		return BeginResult{}, err
	}
	defer zero32(&hostEph.Secret)

	shared, err := crypto.XECDH(hostEph.Secret[:], extEphPub[:])
	if err != nil {
		return BeginResult{}, err
	}

	transcript := concatTranscript(hostEph.Public, extEphPub, peerEdPub)

	sig, err := crypto.EdSign(edSk[:], transcript)
	if err != nil {
		return BeginResult{}, err
	}

	sessionID, err := m.sessions.Create(shared, transcript)
	if err != nil {
		return BeginResult{}, err
	}

	if m.log != nil {
		m.log.Infof("handshake begun, session %s", sessionID)
	}

	return BeginResult{
		HostEphPubB64: base64.StdEncoding.EncodeToString(hostEph.Public[:]),
		SignatureB64:  base64.StdEncoding.EncodeToString(sig),
		SessionID:     sessionID,
	}, nil
}

// FinishHandshake verifies the extension's signature over
// clientFinishTag || sessionId || transcript, marking the session verified
// on success. It is idempotent: calling it again on an already-verified
// session returns nil without re-checking. Any failure closes the session.
func (m *Manager) FinishHandshake(ctx context.Context, sessionID, clientSigB64 string) error {
	sess, err := m.sessions.Get(sessionID)
	if err != nil {
		return err
	}
	if sess.PeerVerified() {
		return nil
	}

	peerEdPub, ok := m.pairing.PeerPublicKey(ctx)
	if !ok {
		m.sessions.Close(sessionID)
		return ErrPeerNotPaired
	}

	clientSig, err := base64.StdEncoding.DecodeString(clientSigB64)
	if err != nil || len(clientSig) != crypto.Ed25519SignatureSize {
		m.sessions.Close(sessionID)
		return ErrInvalidClientSignature
	}

	transcript := sess.Transcript()
	if len(transcript) == 0 {
		m.sessions.Close(sessionID)
		return ErrInvalidTranscript
	}

	clientTranscript := make([]byte, 0, len(clientFinishTag)+len(sessionID)+len(transcript))
	clientTranscript = append(clientTranscript, clientFinishTag...)
	clientTranscript = append(clientTranscript, sessionID...)
	clientTranscript = append(clientTranscript, transcript...)

	if !crypto.EdVerify(peerEdPub[:], clientTranscript, clientSig) {
		m.sessions.Close(sessionID)
		return ErrPeerSignatureInvalid
	}

	sess.SetPeerVerified()

	// A successful client-finish signature is, by construction, proof the
	// peer holds the private key behind peerEdPub — confirmation piggybacks
	// on it rather than requiring a separate step (spec §4.5/§9).
	if err := m.pairing.ConfirmPeer(ctx, peerEdPub); err != nil && m.log != nil {
		m.log.Warnf("handshake: could not confirm peer after verified finish: %v", err)
	}

	if m.log != nil {
		m.log.Infof("handshake finished, session %s verified", sessionID)
	}
	return nil
}

// SealResult is the response to Seal.
type SealResult struct {
	NonceB64      string
	CiphertextB64 string
	Seq           uint64
}

// Seal encrypts plaintext under the session key with a fresh random
// 24-byte nonce, and advances the session's outbound sequence counter.
func (m *Manager) Seal(ctx context.Context, sessionID string, plaintext []byte) (SealResult, error) {
	sess, err := m.sessions.Get(sessionID)
	if err != nil {
		return SealResult{}, err
	}

	nonce, err := crypto.RandomBytes(crypto.SecretboxNonceSize)
	if err != nil {
		return SealResult{}, err
	}

	key := sess.Key()
	ciphertext, err := crypto.SecretboxSeal(key[:], nonce, plaintext)
	if err != nil {
		return SealResult{}, err
	}

	seq := sess.NextSendSeq()
	return SealResult{
		NonceB64:      base64.StdEncoding.EncodeToString(nonce),
		CiphertextB64: base64.StdEncoding.EncodeToString(ciphertext),
		Seq:           seq,
	}, nil
}

// Open authenticates and decrypts ciphertext under the session key,
// enforcing that seq strictly exceeds every previously accepted sequence
// number for this session. On secretbox authentication failure or replay,
// the session is closed and the corresponding error returned.
func (m *Manager) Open(ctx context.Context, sessionID string, nonceB64, ciphertextB64 string, seq uint64) ([]byte, error) {
	sess, err := m.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}

	nonce, nErr := base64.StdEncoding.DecodeString(nonceB64)
	ciphertext, cErr := base64.StdEncoding.DecodeString(ciphertextB64)
	if nErr != nil || cErr != nil || len(nonce) != crypto.SecretboxNonceSize {
		m.sessions.Close(sessionID)
		return nil, ErrDecryptFailed
	}

	key := sess.Key()
	plaintext, err := crypto.SecretboxOpen(key[:], nonce, ciphertext)
	if err != nil {
		m.sessions.Close(sessionID)
		return nil, ErrDecryptFailed
	}

	if err := sess.RecordIncomingSeq(seq); err != nil {
		m.sessions.Close(sessionID)
		return nil, err
	}

	return plaintext, nil
}

// CloseSession removes a session. Closing an unknown session returns
// sessionstore.ErrSessionNotFound.
func (m *Manager) CloseSession(ctx context.Context, sessionID string) error {
	return m.sessions.Close(sessionID)
}

// ClearAllSessions removes every session and returns how many were
// removed, for use by the resetPairing operation.
func (m *Manager) ClearAllSessions(ctx context.Context) int {
	return m.sessions.ClearAll()
}

func decodeKey32(b64 string) ([32]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(b64)
	if err != nil || len(raw) != 32 {
		return [32]byte{}, ErrInvalidPeerPublicKey
	}
	var out [32]byte
	copy(out[:], raw)
	return out, nil
}

func concatTranscript(hostEphPub, extEphPub, peerEdPub [32]byte) []byte {
	out := make([]byte, 0, 96)
	out = append(out, hostEphPub[:]...)
	out = append(out, extEphPub[:]...)
	out = append(out, peerEdPub[:]...)
	return out
}

func zero32(b *[32]byte) {
	for i := range b {
		b[i] = 0
	}
}
